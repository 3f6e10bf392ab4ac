package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Constructors(t *testing.T) {
	err := NewAppError(http.StatusBadRequest, "bad", ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "bad", err.Message)
	assert.Equal(t, ErrInvalidInput.Error(), err.Error())

	notFound := NotFound("missing")
	assert.Equal(t, http.StatusNotFound, notFound.Status)
	assert.Equal(t, "missing", notFound.Message)

	badReq := BadRequest("bad request")
	assert.Equal(t, http.StatusBadRequest, badReq.Status)

	unauth := Unauthorized("unauthorized")
	assert.Equal(t, http.StatusUnauthorized, unauth.Status)

	forbidden := Forbidden("forbidden")
	assert.Equal(t, http.StatusForbidden, forbidden.Status)

	conflict := Conflict("exists")
	assert.Equal(t, http.StatusConflict, conflict.Status)

	unprocessable := UnprocessableEntity("too low", ErrBidTooLow)
	assert.Equal(t, http.StatusUnprocessableEntity, unprocessable.Status)
	assert.Equal(t, "too low", unprocessable.Message)

	internal := InternalError(stderrors.New("db down"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "internal server error", internal.Message)
	assert.Equal(t, "db down", internal.Error())
}

func TestAppError_UnwrapSentinels(t *testing.T) {
	assert.ErrorIs(t, NotFound("gone"), ErrNotFound)
	assert.ErrorIs(t, BadRequest("bad"), ErrInvalidInput)
	assert.ErrorIs(t, Unauthorized("no"), ErrUnauthorized)
	assert.ErrorIs(t, Forbidden("no"), ErrForbidden)
	assert.ErrorIs(t, Conflict("dup"), ErrAlreadyExists)
	assert.ErrorIs(t, UnprocessableEntity("closed", ErrAuctionClosed), ErrAuctionClosed)
}

func TestAppError_ErrorFallsBackToMessage(t *testing.T) {
	err := &AppError{Status: http.StatusTeapot, Message: "just a message"}
	assert.Equal(t, "just a message", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestAppError_AsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handler context: %w", Forbidden("not the seller"))

	var appErr *AppError
	assert.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusForbidden, appErr.Status)
	assert.Equal(t, "not the seller", appErr.Message)
	assert.ErrorIs(t, wrapped, ErrForbidden)
}
