package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/domain/repositories"
)

// PlatformStats is the admin reporting snapshot
type PlatformStats struct {
	TotalUsers     int64           `json:"totalUsers"`
	TotalProducts  int64           `json:"totalProducts"`
	TotalOrders    int64           `json:"totalOrders"`
	ActiveAuctions int64           `json:"activeAuctions"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	PlatformFees   decimal.Decimal `json:"platformFees"`
}

// AdminUsecase handles platform administration and reporting
type AdminUsecase struct {
	userRepo    repositories.UserRepository
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
}

// NewAdminUsecase creates a new admin usecase
func NewAdminUsecase(
	userRepo repositories.UserRepository,
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
) *AdminUsecase {
	return &AdminUsecase{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// Stats aggregates the platform reporting counters. Revenue sums only
// orders that reached at least the paid state.
func (u *AdminUsecase) Stats(ctx context.Context) (*PlatformStats, error) {
	users, err := u.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	products, err := u.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := u.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	auctions, err := u.productRepo.CountActiveAuctions(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	revenue, fees, err := u.orderRepo.SumPaidAmounts(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:     users,
		TotalProducts:  products,
		TotalOrders:    orders,
		ActiveAuctions: auctions,
		TotalRevenue:   revenue,
		PlatformFees:   fees,
	}, nil
}

// ListUsers returns all users, paginated
func (u *AdminUsecase) ListUsers(ctx context.Context, limit, offset int) ([]*entities.User, int, error) {
	return u.userRepo.List(ctx, limit, offset)
}

// ListOrders returns all orders, paginated
func (u *AdminUsecase) ListOrders(ctx context.Context, limit, offset int) ([]*entities.Order, int, error) {
	return u.orderRepo.List(ctx, limit, offset)
}

// UpdateUserRole changes a user's role
func (u *AdminUsecase) UpdateUserRole(ctx context.Context, userID uuid.UUID, role entities.Role) (*entities.User, error) {
	if !entities.ValidRole(role) {
		return nil, domainerrors.BadRequest("invalid role")
	}
	if err := u.userRepo.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}
