package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"flexwage/auth"
	"flexwage/ledger"
	"flexwage/middleware"
	"flexwage/notify"
	"flexwage/profile"
	"flexwage/ratelim"
	"flexwage/shifts"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/userpic/*filepath", http.Dir("static/userpic"))
}

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler) {
	router.POST("/api/auth/register", ratelim.RateLimit(h.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(h.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(h.Logout))
	router.POST("/api/auth/token/refresh", ratelim.RateLimit(h.Refresh))
	router.GET("/api/auth/whoami", middleware.Authenticate(h.Whoami))
}

func AddProfileRoutes(router *httprouter.Router, h *profile.Handler) {
	router.POST("/api/profile", ratelim.RateLimit(middleware.Authenticate(h.CreateUserProfile)))
	router.GET("/api/profile", middleware.Authenticate(h.GetMyProfile))
	router.PUT("/api/profile", ratelim.RateLimit(middleware.Authenticate(h.UpdateUserProfile)))

	router.POST("/api/profile/worker", ratelim.RateLimit(middleware.Authenticate(h.CreateWorkerProfile)))
	router.GET("/api/profile/worker/:userId", middleware.OptionalAuth(h.GetWorkerProfile))
	router.PUT("/api/profile/worker", ratelim.RateLimit(middleware.Authenticate(h.UpdateWorkerProfile)))
	router.POST("/api/profile/worker/photo", ratelim.RateLimit(middleware.Authenticate(h.UploadWorkerPhoto)))

	router.POST("/api/profile/business", ratelim.RateLimit(middleware.Authenticate(h.CreateBusinessProfile)))
	router.GET("/api/profile/business/:userId", middleware.OptionalAuth(h.GetBusinessProfile))
	router.PUT("/api/profile/business", ratelim.RateLimit(middleware.Authenticate(h.UpdateBusinessProfile)))
}

func AddShiftRoutes(router *httprouter.Router, h *shifts.Handler) {
	router.POST("/api/shifts", ratelim.RateLimit(middleware.Authenticate(h.CreateShift)))
	router.GET("/api/shifts/open", middleware.OptionalAuth(h.GetOpenShifts))
	router.GET("/api/shifts/business/:businessId", middleware.OptionalAuth(h.GetBusinessShifts))

	router.GET("/api/shift/:shiftId", middleware.OptionalAuth(h.GetShift))
	router.PUT("/api/shift/:shiftId", ratelim.RateLimit(middleware.Authenticate(h.UpdateShift)))
	router.DELETE("/api/shift/:shiftId", ratelim.RateLimit(middleware.Authenticate(h.DeleteShift)))

	router.POST("/api/shift/:shiftId/apply", ratelim.RateLimit(middleware.Authenticate(h.ApplyToShift)))
	router.GET("/api/shift/:shiftId/applications", middleware.Authenticate(h.GetShiftApplications))
	router.POST("/api/shift/:shiftId/approve/:workerId", ratelim.RateLimit(middleware.Authenticate(h.ApproveApplication)))
	router.POST("/api/shift/:shiftId/reject/:workerId", ratelim.RateLimit(middleware.Authenticate(h.RejectApplication)))
}

func AddLedgerRoutes(router *httprouter.Router, h *ledger.Handler) {
	router.POST("/api/workhistory", ratelim.RateLimit(middleware.Authenticate(h.CreateWorkHistory)))
	router.GET("/api/workhistory/:workerId", middleware.OptionalAuth(h.GetWorkerHistory))
	router.POST("/api/ratings", ratelim.RateLimit(middleware.Authenticate(h.CreateRating)))
	router.GET("/api/ratings/:workerId", middleware.OptionalAuth(h.GetWorkerRatings))

	router.GET("/api/did/:workerId", middleware.OptionalAuth(h.GetWorkerDID))
	router.GET("/api/did/:workerId/export", middleware.OptionalAuth(h.ExportWorkerDID))
	router.GET("/api/did/:workerId/print", middleware.OptionalAuth(h.PrintWorkerDID))
}

func AddNotificationRoutes(router *httprouter.Router, h *notify.Handler) {
	router.POST("/api/notifications", ratelim.RateLimit(middleware.Authenticate(h.CreateNotification)))
	router.GET("/api/notifications/:userid", middleware.Authenticate(h.GetUserNotifications))
	router.PUT("/api/notifications/:userid/read/:id", middleware.Authenticate(h.MarkNotificationRead))

	router.GET("/ws/notifications/:userid", middleware.Authenticate(notify.HandleWS))
}
