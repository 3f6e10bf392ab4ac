package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/interfaces/http/middleware"
	"voltbay.backend/internal/interfaces/http/response"
	"voltbay.backend/internal/usecases"
	"voltbay.backend/pkg/utils"
)

type paymentService interface {
	Config() *entities.PaymentConfig
	CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreatePaymentIntentInput) (*entities.CreatePaymentIntentResponse, error)
	ConfirmPayment(ctx context.Context, userID uuid.UUID, input *entities.ConfirmPaymentInput) (*entities.Payment, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Payment, int, error)
}

// PaymentHandler handles payment intent endpoints
type PaymentHandler struct {
	paymentUsecase paymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase *usecases.PaymentUsecase) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// Config returns the public gateway configuration
// GET /api/v1/payments/config
func (h *PaymentHandler) Config(c *gin.Context) {
	response.Success(c, http.StatusOK, h.paymentUsecase.Config())
}

// CreateIntent starts a payment
// POST /api/v1/payments/intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var input entities.CreatePaymentIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	resp, err := h.paymentUsecase.CreateIntent(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// ConfirmPayment verifies the intent with the gateway and settles the order
// POST /api/v1/payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	var input entities.ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	payment, err := h.paymentUsecase.ConfirmPayment(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// History returns the caller's payments, newest first
// GET /api/v1/payments
func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	payments, total, err := h.paymentUsecase.History(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}
