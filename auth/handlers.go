package auth

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"flexwage/apperr"
	"flexwage/utils"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Username == "" || creds.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid registration data")
		return
	}

	acct, err := h.svc.Register(r.Context(), creds.Username, creds.Email, creds.Password)
	if err != nil {
		utils.RespondWithError(w, apperr.Status(err), err.Error())
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"principalid": acct.PrincipalID,
		"username":    acct.Username,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid login data")
		return
	}

	access, refresh, err := h.svc.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"token":         access,
		"refresh_token": refresh,
	})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing refresh token")
		return
	}

	access, refresh, err := h.svc.Refresh(r.Context(), body.RefreshToken)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"token":         access,
		"refresh_token": refresh,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	if err := h.svc.Logout(r.Context(), body.RefreshToken); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Logout failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Whoami echoes the principal id resolved from the bearer token.
func (h *Handler) Whoami(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := utils.GetUserIDFromRequest(r)
	if principal == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"principal": principal})
}
