package restapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	userID uuid.UUID
	err    error
}

func (f *fakeVerifier) VerifyToken(_ string) (uuid.UUID, error) {
	return f.userID, f.err
}

func authTestRouter(verifier TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/secured", AuthRequired(verifier), func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID.String()})
	})
	return router
}

func TestAuthRequiredMissingToken(t *testing.T) {
	router := authTestRouter(&fakeVerifier{userID: uuid.New()})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	router := authTestRouter(&fakeVerifier{err: errors.New("signature mismatch")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredValidToken(t *testing.T) {
	userID := uuid.New()
	router := authTestRouter(&fakeVerifier{userID: userID})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/secured", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}
