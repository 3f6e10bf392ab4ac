package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/infrastructure/models"
)

// ProductRepository implements product data operations
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create creates a new product
func (r *ProductRepository) Create(ctx context.Context, product *entities.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	specs, err := json.Marshal(product.Specs)
	if err != nil {
		return err
	}
	now := time.Now()
	m := &models.Product{
		ID:             product.ID,
		SellerID:       product.SellerID,
		CategoryID:     product.CategoryID,
		Title:          product.Title,
		Description:    product.Description,
		Specs:          string(specs),
		Price:          product.Price,
		Stock:          product.Stock,
		Status:         string(product.Status),
		IsAuction:      product.IsAuction,
		MinimumBid:     product.MinimumBid,
		CurrentBid:     product.CurrentBid,
		BidCount:       product.BidCount,
		AuctionEndDate: product.AuctionEndDate,
		BuyNowPrice:    product.BuyNowPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	product.CreatedAt = m.CreatedAt
	product.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	var m models.Product
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update persists mutable listing fields
func (r *ProductRepository) Update(ctx context.Context, product *entities.Product) error {
	specs, err := json.Marshal(product.Specs)
	if err != nil {
		return err
	}
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"title":       product.Title,
			"description": product.Description,
			"specs":       string(specs),
			"price":       product.Price,
			"stock":       product.Stock,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus flips the listing status
func (r *ProductRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProductStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns products matching the filter with pagination
func (r *ProductRepository) List(ctx context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.Product{})
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.SellerID != nil {
		q = q.Where("seller_id = ?", *filter.SellerID)
	}
	if filter.AuctionOnly {
		q = q.Where("is_auction = ?", true)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Product
	if err := q.Preload("Category").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	products := make([]*entities.Product, 0, len(ms))
	for i := range ms {
		products = append(products, r.toEntity(&ms[i]))
	}
	return products, int(total), nil
}

// Count returns the number of products
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

// CountActiveAuctions returns the number of auctions still open at now
func (r *ProductRepository) CountActiveAuctions(ctx context.Context, now time.Time) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Product{}).
		Where("is_auction = ? AND status = ? AND auction_end_date > ?",
			true, string(entities.ProductStatusActive), now).
		Count(&total).Error
	return total, err
}

// CompareAndSetCurrentBid atomically raises current_bid. The guard is
// embedded in the WHERE clause so two racing bids can never both win:
// only rows still open at `now` whose current bid is below the amount
// (or whose minimum bid admits it when no bid exists) are touched.
func (r *ProductRepository) CompareAndSetCurrentBid(ctx context.Context, id uuid.UUID, amount decimal.Decimal, now time.Time) (bool, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND is_auction = ? AND status = ? AND auction_end_date > ?",
			id, true, string(entities.ProductStatusActive), now).
		Where("(current_bid IS NULL AND minimum_bid <= ?) OR current_bid < ?", amount, amount).
		Updates(map[string]interface{}{
			"current_bid": amount,
			"bid_count":   gorm.Expr("bid_count + 1"),
			"updated_at":  now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindExpiredActiveAuctions returns active auctions past their end date
func (r *ProductRepository) FindExpiredActiveAuctions(ctx context.Context, now time.Time, limit int) ([]*entities.Product, error) {
	var ms []models.Product
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("is_auction = ? AND status = ? AND auction_end_date <= ?",
			true, string(entities.ProductStatusActive), now).
		Order("auction_end_date ASC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, err
	}
	products := make([]*entities.Product, 0, len(ms))
	for i := range ms {
		products = append(products, r.toEntity(&ms[i]))
	}
	return products, nil
}

// MarkAuctionEnded conditionally flips active -> ended, so concurrent
// sweeps settle each auction at most once.
func (r *ProductRepository) MarkAuctionEnded(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND status = ? AND auction_end_date <= ?",
			id, string(entities.ProductStatusActive), now).
		Updates(map[string]interface{}{
			"status":     string(entities.ProductStatusEnded),
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProductRepository) toEntity(m *models.Product) *entities.Product {
	p := &entities.Product{
		ID:             m.ID,
		SellerID:       m.SellerID,
		CategoryID:     m.CategoryID,
		Title:          m.Title,
		Description:    m.Description,
		Price:          m.Price,
		Stock:          m.Stock,
		Status:         entities.ProductStatus(m.Status),
		IsAuction:      m.IsAuction,
		MinimumBid:     m.MinimumBid,
		CurrentBid:     m.CurrentBid,
		BidCount:       m.BidCount,
		AuctionEndDate: m.AuctionEndDate,
		BuyNowPrice:    m.BuyNowPrice,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Specs != "" {
		_ = json.Unmarshal([]byte(m.Specs), &p.Specs)
	}
	if m.Category.ID != uuid.Nil {
		p.Category = &entities.Category{
			ID:   m.Category.ID,
			Name: m.Category.Name,
			Slug: m.Category.Slug,
		}
	}
	return p
}
