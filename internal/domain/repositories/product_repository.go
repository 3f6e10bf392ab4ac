package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"voltbay.backend/internal/domain/entities"
)

// CategoryRepository defines category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entities.Category, error)
	List(ctx context.Context) ([]*entities.Category, error)
}

// ProductRepository defines product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProductStatus) error
	List(ctx context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error)
	Count(ctx context.Context) (int64, error)
	CountActiveAuctions(ctx context.Context, now time.Time) (int64, error)

	// CompareAndSetCurrentBid atomically raises the current bid. It only
	// touches rows that are still open auctions at the given time and
	// whose current bid (or minimum bid, when no bid exists) admits the
	// amount. Returns false when no row qualified.
	CompareAndSetCurrentBid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, now time.Time) (bool, error)

	// FindExpiredActiveAuctions returns active auctions whose end date
	// has passed, for the settlement sweep.
	FindExpiredActiveAuctions(ctx context.Context, now time.Time, limit int) ([]*entities.Product, error)

	// MarkAuctionEnded conditionally flips an active auction to ended.
	// Returns false when another sweep already claimed the row.
	MarkAuctionEnded(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

// BidRepository defines bid data operations. Bids are append-only.
type BidRepository interface {
	Create(ctx context.Context, bid *entities.Bid) error
	GetHighestByProduct(ctx context.Context, productID uuid.UUID) (*entities.Bid, error)
	ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error)
}
