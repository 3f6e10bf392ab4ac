package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"voltbay.backend/internal/domain/entities"
)

// EnterpriseListingRepository defines B2B listing data operations
type EnterpriseListingRepository interface {
	Create(ctx context.Context, listing *entities.EnterpriseListing) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.EnterpriseListing, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entities.EnterpriseListing, int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

// QuoteRequestRepository defines quote workflow data operations
type QuoteRequestRepository interface {
	Create(ctx context.Context, req *entities.QuoteRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.QuoteRequestStatus) (bool, error)
	CreateResponse(ctx context.Context, resp *entities.QuoteResponse) error
	ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entities.QuoteRequest, int, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.QuoteRequest, int, error)

	// GetExpiredOpen returns pending or responded requests whose expiry
	// has passed, for the expiry sweep.
	GetExpiredOpen(ctx context.Context, now time.Time, limit int) ([]*entities.QuoteRequest, error)
	ExpireRequests(ctx context.Context, ids []uuid.UUID) error
}
