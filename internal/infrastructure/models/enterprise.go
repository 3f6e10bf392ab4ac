package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"voltbay.backend/internal/domain/entities"
)

type EnterpriseListing struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	VendorID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Title            string          `gorm:"type:varchar(255);not null"`
	Description      string          `gorm:"type:text;not null"`
	MinOrderQuantity int             `gorm:"not null;default:1"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	LeadTimeDays     int             `gorm:"not null;default:0"`
	IsActive         bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Vendor User `gorm:"foreignKey:VendorID"`
}

type QuoteRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
	Note      string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(50);not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Listing EnterpriseListing `gorm:"foreignKey:ListingID"`
}

type QuoteResponse struct {
	ID             uuid.UUID               `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	QuoteRequestID uuid.UUID               `gorm:"type:uuid;uniqueIndex;not null"`
	VendorID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	LineItems      entities.QuoteLineItems `gorm:"type:jsonb;default:'[]'"`
	Total          decimal.Decimal         `gorm:"type:decimal(12,2);not null"`
	ValidUntil     time.Time               `gorm:"not null"`
	CreatedAt      time.Time

	QuoteRequest QuoteRequest `gorm:"foreignKey:QuoteRequestID"`
}
