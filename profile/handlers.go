package profile

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"flexwage/apperr"
	"flexwage/filemgr"
	"flexwage/models"
	"flexwage/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) CreateUserProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile data")
		return
	}

	created, err := h.svc.CreateUserProfile(r.Context(), utils.GetUserIDFromRequest(r), profile)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	profile, err := h.svc.GetUserProfile(r.Context(), utils.GetUserIDFromRequest(r))
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateUserProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid profile data")
		return
	}

	updated, err := h.svc.UpdateUserProfile(r.Context(), utils.GetUserIDFromRequest(r), profile)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) CreateWorkerProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var wp models.WorkerProfile
	if err := json.NewDecoder(r.Body).Decode(&wp); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid worker profile data")
		return
	}

	created, err := h.svc.CreateWorkerProfile(r.Context(), utils.GetUserIDFromRequest(r), wp)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetWorkerProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	wp, err := h.svc.GetWorkerProfile(r.Context(), ps.ByName("userId"))
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, wp)
}

func (h *Handler) UpdateWorkerProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var wp models.WorkerProfile
	if err := json.NewDecoder(r.Body).Decode(&wp); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid worker profile data")
		return
	}

	updated, err := h.svc.UpdateWorkerProfile(r.Context(), utils.GetUserIDFromRequest(r), wp)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

// UploadWorkerPhoto stores a multipart "photo" upload and records its path on
// the caller's worker profile.
func (h *Handler) UploadWorkerPhoto(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	path, err := filemgr.SaveFormFile(r, "photo", "userpic")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.svc.SetWorkerPhoto(r.Context(), utils.GetUserIDFromRequest(r), path)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *Handler) CreateBusinessProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var bp models.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&bp); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid business profile data")
		return
	}

	created, err := h.svc.CreateBusinessProfile(r.Context(), utils.GetUserIDFromRequest(r), bp)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetBusinessProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bp, err := h.svc.GetBusinessProfile(r.Context(), ps.ByName("userId"))
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, bp)
}

func (h *Handler) UpdateBusinessProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var bp models.BusinessProfile
	if err := json.NewDecoder(r.Body).Decode(&bp); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid business profile data")
		return
	}

	updated, err := h.svc.UpdateBusinessProfile(r.Context(), utils.GetUserIDFromRequest(r), bp)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, updated)
}
