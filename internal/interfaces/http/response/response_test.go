package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	domainerrors "voltbay.backend/internal/domain/errors"
)

func record(fn func(c *gin.Context)) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestError_AppError(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, domainerrors.Conflict("email already registered"))
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "email already registered")
}

func TestError_SentinelMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainerrors.ErrNotFound, http.StatusNotFound},
		{domainerrors.ErrAlreadyExists, http.StatusConflict},
		{domainerrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainerrors.ErrForbidden, http.StatusForbidden},
		{domainerrors.ErrBidTooLow, http.StatusUnprocessableEntity},
		{domainerrors.ErrAuctionClosed, http.StatusUnprocessableEntity},
		{domainerrors.ErrOrderStateInvalid, http.StatusUnprocessableEntity},
		{domainerrors.ErrInsufficientFunds, http.StatusPaymentRequired},
	}
	for _, tc := range cases {
		w := record(func(c *gin.Context) { Error(c, tc.err) })
		require.Equal(t, tc.want, w.Code, tc.err.Error())
	}
}

func TestError_UnknownHidesDetail(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("pq: connection refused"))
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "pq:")
	require.Contains(t, w.Body.String(), "internal server error")
}

func TestSuccess(t *testing.T) {
	w := record(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"id": "abc"})
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "abc")
}
