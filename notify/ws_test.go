package notify

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
	"flexwage/middleware"
)

func signToken(t *testing.T) string {
	t.Helper()
	claims := middleware.Claims{
		Username: "tester",
		UserID:   "p1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return token
}

func TestHandleWSRequiresToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/notifications/u1", nil)

	HandleWS(rec, req, httprouter.Params{{Key: "userid", Value: "u1"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// A valid token on a plain HTTP request still fails the upgrade; the upgrader
// writes the error response itself.
func TestHandleWSRejectsNonWebsocketRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws/notifications/u1?token="+signToken(t), nil)

	HandleWS(rec, req, httprouter.Params{{Key: "userid", Value: "u1"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
