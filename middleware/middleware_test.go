package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flexwage/globals"
)

func signToken(t *testing.T, userID string) string {
	t.Helper()
	claims := Claims{
		Username: "tester",
		UserID:   userID,
		Role:     []string{"user"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestAuthenticateInjectsPrincipalAndRole(t *testing.T) {
	var gotID string
	var gotRole []string
	h := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).([]string)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "p123"))
	h(httptest.NewRecorder(), req, nil)

	assert.Equal(t, "p123", gotID)
	assert.Equal(t, []string{"user"}, gotRole)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	called := false
	h := Authenticate(func(http.ResponseWriter, *http.Request, httprouter.Params) {
		called = true
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/x", nil), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestOptionalAuth(t *testing.T) {
	var gotID string
	h := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID, _ = r.Context().Value(globals.UserIDKey).(string)
	})

	// anonymous requests pass through with no principal
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil), nil)
	assert.Empty(t, gotID)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "p456"))
	h(httptest.NewRecorder(), req, nil)
	assert.Equal(t, "p456", gotID)
}

func TestValidateJWT(t *testing.T) {
	claims, err := ValidateJWT("Bearer " + signToken(t, "p789"))
	require.NoError(t, err)
	assert.Equal(t, "p789", claims.UserID)

	_, err = ValidateJWT("")
	assert.Error(t, err)

	_, err = ValidateJWT("Bearer garbage")
	assert.Error(t, err)
}
