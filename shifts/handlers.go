package shifts

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"flexwage/apperr"
	"flexwage/models"
	"flexwage/mq"
	"flexwage/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var shift models.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid shift data")
		return
	}

	created, err := h.svc.Create(r.Context(), utils.GetUserIDFromRequest(r), shift)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}

	go mq.Emit(r.Context(), "shift-created", models.Index{
		EntityType: "shift", EntityId: created.ShiftID, Method: "POST",
	})
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shift, err := h.svc.Get(r.Context(), ps.ByName("shiftId"))
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var shift models.Shift
	if err := json.NewDecoder(r.Body).Decode(&shift); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid shift data")
		return
	}

	updated, err := h.svc.Update(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("shiftId"), shift)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}

	go mq.Emit(r.Context(), "shift-updated", models.Index{
		EntityType: "shift", EntityId: updated.ShiftID, Method: "PUT",
	})
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shiftID := ps.ByName("shiftId")
	if err := h.svc.Delete(r.Context(), utils.GetUserIDFromRequest(r), shiftID); err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}

	go mq.Emit(r.Context(), "shift-deleted", models.Index{
		EntityType: "shift", EntityId: shiftID, Method: "DELETE",
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) GetBusinessShifts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shifts, err := h.svc.ListByBusiness(r.Context(), ps.ByName("businessId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shifts")
		return
	}
	if len(shifts) == 0 {
		shifts = []models.Shift{}
	}
	utils.RespondWithJSON(w, http.StatusOK, shifts)
}

func (h *Handler) GetOpenShifts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	shifts, err := h.svc.ListOpen(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch shifts")
		return
	}
	skip, limit := utils.ParsePagination(r, 20, 100)
	utils.RespondWithJSON(w, http.StatusOK, utils.Paginate(shifts, skip, limit))
}

func (h *Handler) ApplyToShift(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var body struct {
		Message string `json:"message"`
	}
	// an empty body is a valid application with no message
	_ = json.NewDecoder(r.Body).Decode(&body)

	app, err := h.svc.Apply(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("shiftId"), body.Message)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, app)
}

func (h *Handler) GetShiftApplications(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	apps, err := h.svc.ListApplications(r.Context(), ps.ByName("shiftId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch applications")
		return
	}
	if len(apps) == 0 {
		apps = []models.ShiftApplication{}
	}
	utils.RespondWithJSON(w, http.StatusOK, apps)
}

func (h *Handler) ApproveApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shift, err := h.svc.Approve(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("shiftId"), ps.ByName("workerId"))
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, shift)
}

func (h *Handler) RejectApplication(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.svc.Reject(r.Context(), utils.GetUserIDFromRequest(r), ps.ByName("shiftId"), ps.ByName("workerId")); err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}
