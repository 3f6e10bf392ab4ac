package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity        int             `gorm:"not null;default:1"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PlatformFee     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SellerPayout    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ShippingAddress string          `gorm:"type:text"`
	Status          string          `gorm:"type:varchar(50);not null;index"`
	FromAuction     bool            `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Product Product `gorm:"foreignKey:ProductID"`
	Buyer   User    `gorm:"foreignKey:BuyerID"`
	Seller  User    `gorm:"foreignKey:SellerID"`
}
