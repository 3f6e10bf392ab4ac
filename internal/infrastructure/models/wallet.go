package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Currency  string          `gorm:"type:varchar(10);not null;default:'USD'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type WalletTransaction struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	WalletID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Type      string          `gorm:"type:varchar(50);not null"`
	Status    string          `gorm:"type:varchar(50);not null"`
	Reference string          `gorm:"type:varchar(255)"`
	CreatedAt time.Time

	Wallet Wallet `gorm:"foreignKey:WalletID"`
}
