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

type orderService interface {
	GetOrder(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, orderID uuid.UUID) (*entities.Order, error)
	ListOrders(ctx context.Context, actorID uuid.UUID, asSeller bool, limit, offset int) ([]*entities.Order, int, error)
	UpdateStatus(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, orderID uuid.UUID, target entities.OrderStatus) (*entities.Order, error)
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderUsecase orderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase *usecases.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

// GetOrder returns one order visible to the caller
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid order id"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	order, err := h.orderUsecase.GetOrder(c.Request.Context(), userID, role, orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// ListOrders returns the caller's purchases, or sales with ?role=seller
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	asSeller := c.Query("role") == "seller"
	params := paginationFromQuery(c)
	orders, total, err := h.orderUsecase.ListOrders(c.Request.Context(), userID, asSeller, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// UpdateStatus applies a fulfillment transition
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid order id"))
		return
	}

	var input entities.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	order, err := h.orderUsecase.UpdateStatus(c.Request.Context(), userID, role, orderID, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}
