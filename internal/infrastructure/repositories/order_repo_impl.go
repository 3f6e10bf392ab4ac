package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/infrastructure/models"
)

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}
	now := time.Now()
	m := &models.Order{
		ID:              order.ID,
		BuyerID:         order.BuyerID,
		SellerID:        order.SellerID,
		ProductID:       order.ProductID,
		Quantity:        order.Quantity,
		Amount:          order.Amount,
		PlatformFee:     order.PlatformFee,
		SellerPayout:    order.SellerPayout,
		ShippingAddress: order.ShippingAddress,
		Status:          string(order.Status),
		FromAuction:     order.FromAuction,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	order.CreatedAt = m.CreatedAt
	order.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Preload("Product").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetPendingByProductAndBuyer finds an open order for a product/buyer
// pair, used to attach a payment intent to an auction-win order.
func (r *OrderRepository) GetPendingByProductAndBuyer(ctx context.Context, productID, buyerID uuid.UUID) (*entities.Order, error) {
	var m models.Order
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).
		Where("product_id = ? AND buyer_id = ? AND status = ?",
			productID, buyerID, string(entities.OrderStatusPending)).
		Order("created_at DESC").
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus flips the order status
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.OrderStatus) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Order{}).
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

// ListByBuyer returns a buyer's orders with pagination
func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	return r.listWhere(ctx, "buyer_id = ?", buyerID, limit, offset)
}

// ListBySeller returns a seller's orders with pagination
func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	return r.listWhere(ctx, "seller_id = ?", sellerID, limit, offset)
}

// List returns all orders with pagination
func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*entities.Order, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Order
	if err := db.WithContext(ctx).
		Preload("Product").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), int(total), nil
}

// Count returns the number of orders
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error
	return total, err
}

// SumPaidAmounts aggregates revenue and platform fees over orders that
// reached paid, shipped or delivered.
func (r *OrderRepository) SumPaidAmounts(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	type sums struct {
		Revenue decimal.Decimal
		Fees    decimal.Decimal
	}
	var s sums
	db := GetDB(ctx, r.db)
	err := db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(amount), 0) AS revenue, COALESCE(SUM(platform_fee), 0) AS fees").
		Where("status IN ?", []string{
			string(entities.OrderStatusPaid),
			string(entities.OrderStatusShipped),
			string(entities.OrderStatusDelivered),
		}).
		Scan(&s).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return s.Revenue, s.Fees, nil
}

func (r *OrderRepository) listWhere(ctx context.Context, cond string, arg uuid.UUID, limit, offset int) ([]*entities.Order, int, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.WithContext(ctx).Model(&models.Order{}).Where(cond, arg).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Order
	if err := db.WithContext(ctx).
		Preload("Product").
		Where(cond, arg).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return r.toEntities(ms), int(total), nil
}

func (r *OrderRepository) toEntities(ms []models.Order) []*entities.Order {
	orders := make([]*entities.Order, 0, len(ms))
	for i := range ms {
		orders = append(orders, r.toEntity(&ms[i]))
	}
	return orders
}

func (r *OrderRepository) toEntity(m *models.Order) *entities.Order {
	o := &entities.Order{
		ID:              m.ID,
		BuyerID:         m.BuyerID,
		SellerID:        m.SellerID,
		ProductID:       m.ProductID,
		Quantity:        m.Quantity,
		Amount:          m.Amount,
		PlatformFee:     m.PlatformFee,
		SellerPayout:    m.SellerPayout,
		ShippingAddress: m.ShippingAddress,
		Status:          entities.OrderStatus(m.Status),
		FromAuction:     m.FromAuction,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Product.ID != uuid.Nil {
		o.Product = &entities.Product{
			ID:        m.Product.ID,
			Title:     m.Product.Title,
			IsAuction: m.Product.IsAuction,
			Price:     m.Product.Price,
		}
	}
	return o
}
