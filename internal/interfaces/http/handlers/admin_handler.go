package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/interfaces/http/response"
	"voltbay.backend/internal/usecases"
	"voltbay.backend/pkg/utils"
)

type adminService interface {
	Stats(ctx context.Context) (*usecases.PlatformStats, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*entities.User, int, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*entities.Order, int, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, role entities.Role) (*entities.User, error)
}

// AdminHandler handles platform administration endpoints
type AdminHandler struct {
	adminUsecase adminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// Stats returns the platform reporting snapshot
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminUsecase.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListUsers returns all users, paginated
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := paginationFromQuery(c)
	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// ListOrders returns all orders, paginated
// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	params := paginationFromQuery(c)
	orders, total, err := h.adminUsecase.ListOrders(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// UpdateUserRole changes a user's role
// PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user id"))
		return
	}

	var input entities.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.adminUsecase.UpdateUserRole(c.Request.Context(), userID, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
