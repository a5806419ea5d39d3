package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"propmart/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuthBuyerMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"buyerId": c.GetString("buyerID")})
	})
	return r
}

func whoami(t *testing.T, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	newAuthRouter().ServeHTTP(w, req)
	return w
}

func TestBuyerAuthAcceptsMintedToken(t *testing.T) {
	token, err := utils.GenerateToken("buyer-42", time.Hour)
	require.NoError(t, err)

	w := whoami(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buyer-42")
}

func TestBuyerAuthRejectsExpiredToken(t *testing.T) {
	token, err := utils.GenerateToken("buyer-42", -time.Hour)
	require.NoError(t, err)

	w := whoami(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuyerAuthRejectsMissingHeader(t *testing.T) {
	w := whoami(t, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBuyerAuthRejectsGarbageToken(t *testing.T) {
	w := whoami(t, "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
