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

// EnterpriseListingRepository implements B2B listing data operations
type EnterpriseListingRepository struct {
	db *gorm.DB
}

// NewEnterpriseListingRepository creates a new enterprise listing repository
func NewEnterpriseListingRepository(db *gorm.DB) *EnterpriseListingRepository {
	return &EnterpriseListingRepository{db: db}
}

// Create creates a new listing
func (r *EnterpriseListingRepository) Create(ctx context.Context, listing *entities.EnterpriseListing) error {
	if listing.ID == uuid.Nil {
		listing.ID = uuid.New()
	}
	now := time.Now()
	m := &models.EnterpriseListing{
		ID:               listing.ID,
		VendorID:         listing.VendorID,
		Title:            listing.Title,
		Description:      listing.Description,
		MinOrderQuantity: listing.MinOrderQuantity,
		UnitPrice:        listing.UnitPrice,
		LeadTimeDays:     listing.LeadTimeDays,
		IsActive:         listing.IsActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	listing.CreatedAt = m.CreatedAt
	listing.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a listing by ID
func (r *EnterpriseListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.EnterpriseListing, error) {
	var m models.EnterpriseListing
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// List returns listings with pagination
func (r *EnterpriseListingRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*entities.EnterpriseListing, int, error) {
	db := GetDB(ctx, r.db)
	q := db.WithContext(ctx).Model(&models.EnterpriseListing{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.EnterpriseListing
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	listings := make([]*entities.EnterpriseListing, 0, len(ms))
	for i := range ms {
		listings = append(listings, r.toEntity(&ms[i]))
	}
	return listings, int(total), nil
}

// SetActive toggles listing availability
func (r *EnterpriseListingRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.EnterpriseListing{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
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

func (r *EnterpriseListingRepository) toEntity(m *models.EnterpriseListing) *entities.EnterpriseListing {
	return &entities.EnterpriseListing{
		ID:               m.ID,
		VendorID:         m.VendorID,
		Title:            m.Title,
		Description:      m.Description,
		MinOrderQuantity: m.MinOrderQuantity,
		UnitPrice:        m.UnitPrice,
		LeadTimeDays:     m.LeadTimeDays,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
