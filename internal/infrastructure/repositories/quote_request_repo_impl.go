package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/infrastructure/models"
)

// QuoteRequestRepository implements quote workflow data operations
type QuoteRequestRepository struct {
	db *gorm.DB
}

// NewQuoteRequestRepository creates a new quote request repository
func NewQuoteRequestRepository(db *gorm.DB) *QuoteRequestRepository {
	return &QuoteRequestRepository{db: db}
}

// Create creates a new quote request
func (r *QuoteRequestRepository) Create(ctx context.Context, req *entities.QuoteRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now()
	m := &models.QuoteRequest{
		ID:        req.ID,
		BuyerID:   req.BuyerID,
		ListingID: req.ListingID,
		Quantity:  req.Quantity,
		Note:      req.Note,
		Status:    string(req.Status),
		ExpiresAt: req.ExpiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	req.CreatedAt = m.CreatedAt
	req.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a quote request with its response, if any
func (r *QuoteRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.QuoteRequest, error) {
	var m models.QuoteRequest
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Listing").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	req := r.toEntity(&m)

	var resp models.QuoteResponse
	err := db.WithContext(ctx).Where("quote_request_id = ?", id).First(&resp).Error
	if err == nil {
		req.Response = r.responseToEntity(&resp)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return req, nil
}

// UpdateStatus conditionally moves a request between workflow states.
// The from-state predicate makes the transition idempotent under
// concurrent responders.
func (r *QuoteRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entities.QuoteRequestStatus) (bool, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.QuoteRequest{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CreateResponse persists a vendor's quote response
func (r *QuoteRequestRepository) CreateResponse(ctx context.Context, resp *entities.QuoteResponse) error {
	if resp.ID == uuid.Nil {
		resp.ID = uuid.New()
	}
	m := &models.QuoteResponse{
		ID:             resp.ID,
		QuoteRequestID: resp.QuoteRequestID,
		VendorID:       resp.VendorID,
		LineItems:      resp.LineItems,
		Total:          resp.Total,
		ValidUntil:     resp.ValidUntil,
		CreatedAt:      time.Now(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	resp.CreatedAt = m.CreatedAt
	return nil
}

// ListByBuyer returns a buyer's quote requests
func (r *QuoteRequestRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entities.QuoteRequest, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.QuoteRequest{}).Where("buyer_id = ?", buyerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.QuoteRequest
	if err := db.WithContext(ctx).
		Preload("Listing").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), int(total), nil
}

// ListByVendor returns quote requests against a vendor's listings
func (r *QuoteRequestRepository) ListByVendor(ctx context.Context, vendorID uuid.UUID, limit, offset int) ([]*entities.QuoteRequest, int, error) {
	db := GetDB(ctx, r.db)
	sub := db.WithContext(ctx).Model(&models.EnterpriseListing{}).Select("id").Where("vendor_id = ?", vendorID)

	var total int64
	if err := db.WithContext(ctx).Model(&models.QuoteRequest{}).Where("listing_id IN (?)", sub).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.QuoteRequest
	if err := db.WithContext(ctx).
		Preload("Listing").
		Where("listing_id IN (?)", sub).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), int(total), nil
}

// GetExpiredOpen returns open requests past their expiry, for the sweep
func (r *QuoteRequestRepository) GetExpiredOpen(ctx context.Context, now time.Time, limit int) ([]*entities.QuoteRequest, error) {
	var ms []models.QuoteRequest
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("status IN ? AND expires_at <= ?", []string{
			string(entities.QuoteStatusPending),
			string(entities.QuoteStatusResponded),
		}, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return r.toEntities(ms), nil
}

// ExpireRequests marks the given requests expired
func (r *QuoteRequestRepository) ExpireRequests(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Model(&models.QuoteRequest{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entities.QuoteStatusExpired),
			"updated_at": time.Now(),
		}).Error
}

func (r *QuoteRequestRepository) toEntities(ms []models.QuoteRequest) []*entities.QuoteRequest {
	reqs := make([]*entities.QuoteRequest, 0, len(ms))
	for i := range ms {
		reqs = append(reqs, r.toEntity(&ms[i]))
	}
	return reqs
}

func (r *QuoteRequestRepository) toEntity(m *models.QuoteRequest) *entities.QuoteRequest {
	req := &entities.QuoteRequest{
		ID:        m.ID,
		BuyerID:   m.BuyerID,
		ListingID: m.ListingID,
		Quantity:  m.Quantity,
		Note:      m.Note,
		Status:    entities.QuoteRequestStatus(m.Status),
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Listing.ID != uuid.Nil {
		req.Listing = &entities.EnterpriseListing{
			ID:               m.Listing.ID,
			VendorID:         m.Listing.VendorID,
			Title:            m.Listing.Title,
			MinOrderQuantity: m.Listing.MinOrderQuantity,
			UnitPrice:        m.Listing.UnitPrice,
		}
	}
	return req
}

func (r *QuoteRequestRepository) responseToEntity(m *models.QuoteResponse) *entities.QuoteResponse {
	return &entities.QuoteResponse{
		ID:             m.ID,
		QuoteRequestID: m.QuoteRequestID,
		VendorID:       m.VendorID,
		LineItems:      m.LineItems,
		Total:          m.Total,
		ValidUntil:     m.ValidUntil,
		CreatedAt:      m.CreatedAt,
	}
}
