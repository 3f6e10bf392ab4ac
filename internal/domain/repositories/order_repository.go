package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"voltbay.backend/internal/domain/entities"
)

// OrderRepository defines order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	GetPendingByProductAndBuyer(ctx context.Context, productID, buyerID uuid.UUID) (*entities.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrderStatus) error
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Order, int, error)
	Count(ctx context.Context) (int64, error)

	// SumPaidAmounts returns total order revenue and total platform fees
	// across orders that reached at least the paid state.
	SumPaidAmounts(ctx context.Context) (revenue, fees decimal.Decimal, err error)
}
