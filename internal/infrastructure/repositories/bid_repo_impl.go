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

// BidRepository implements bid data operations. Rows are append-only;
// no update or delete methods exist.
type BidRepository struct {
	db *gorm.DB
}

// NewBidRepository creates a new bid repository
func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create appends a bid row
func (r *BidRepository) Create(ctx context.Context, bid *entities.Bid) error {
	if bid.ID == uuid.Nil {
		bid.ID = uuid.New()
	}
	m := &models.Bid{
		ID:        bid.ID,
		ProductID: bid.ProductID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: time.Now(),
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	bid.CreatedAt = m.CreatedAt
	return nil
}

// GetHighestByProduct returns the top bid for a product, by amount then
// recency.
func (r *BidRepository) GetHighestByProduct(ctx context.Context, productID uuid.UUID) (*entities.Bid, error) {
	var m models.Bid
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("amount DESC, created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByProduct returns bids for a product, newest first
func (r *BidRepository) ListByProduct(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error) {
	return r.list(ctx, "product_id = ?", productID, limit, offset)
}

// ListByUser returns a user's bids, newest first
func (r *BidRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error) {
	return r.list(ctx, "user_id = ?", userID, limit, offset)
}

func (r *BidRepository) list(ctx context.Context, cond string, arg uuid.UUID, limit, offset int) ([]*entities.Bid, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Bid{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Bid
	if err := db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	bids := make([]*entities.Bid, 0, len(ms))
	for i := range ms {
		bids = append(bids, r.toEntity(&ms[i]))
	}
	return bids, int(total), nil
}

func (r *BidRepository) toEntity(m *models.Bid) *entities.Bid {
	return &entities.Bid{
		ID:        m.ID,
		ProductID: m.ProductID,
		UserID:    m.UserID,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt,
	}
}
