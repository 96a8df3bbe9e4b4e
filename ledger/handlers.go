package ledger

import (
	"encoding/json"
	"errors"
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

func (h *Handler) CreateWorkHistory(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var entry models.WorkHistory
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid work history data")
		return
	}

	created, err := h.svc.RecordWorkHistory(r.Context(), utils.GetUserIDFromRequest(r), entry)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}

	go mq.Emit(r.Context(), "workhistory-created", models.Index{
		EntityType: "workhistory", EntityId: created.HistoryID, Method: "POST",
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"historyid": created.HistoryID,
	})
}

func (h *Handler) GetWorkerHistory(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	history, err := h.svc.ListWorkerHistory(r.Context(), ps.ByName("workerId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch work history")
		return
	}
	skip, limit := utils.ParsePagination(r, 20, 100)
	utils.RespondWithJSON(w, http.StatusOK, utils.Paginate(history, skip, limit))
}

func (h *Handler) CreateRating(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var rating models.Rating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid rating data")
		return
	}

	created, err := h.svc.RecordRating(r.Context(), utils.GetUserIDFromRequest(r), rating)
	if err != nil {
		if errors.Is(err, ErrInvalidRating) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}

	go mq.Emit(r.Context(), "rating-created", models.Index{
		EntityType: "rating", EntityId: created.RatingID, Method: "POST",
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"ratingid": created.RatingID,
	})
}

func (h *Handler) GetWorkerRatings(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ratings, err := h.svc.ListWorkerRatings(r.Context(), ps.ByName("workerId"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ratings")
		return
	}
	if len(ratings) == 0 {
		ratings = []models.Rating{}
	}
	utils.RespondWithJSON(w, http.StatusOK, ratings)
}

func (h *Handler) GetWorkerDID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doc, err := h.svc.GetCredential(r.Context(), ps.ByName("workerId"))
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

// ExportWorkerDID serves the same document as GetWorkerDID; the separate
// route signals that the copy is leaving the system.
func (h *Handler) ExportWorkerDID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.GetWorkerDID(w, r, ps)
}
