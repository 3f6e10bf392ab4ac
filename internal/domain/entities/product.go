package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the lifecycle state of a listing
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusEnded    ProductStatus = "ENDED"
	ProductStatusSold     ProductStatus = "SOLD"
	ProductStatusDelisted ProductStatus = "DELISTED"
)

// ProductCondition represents equipment condition
type ProductCondition string

const (
	ConditionNew         ProductCondition = "NEW"
	ConditionUsed        ProductCondition = "USED"
	ConditionRefurbished ProductCondition = "REFURBISHED"
)

// Category represents a product category
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductSpecs holds the structured equipment attributes of a listing.
// Stored as a json column but always round-tripped through this record.
type ProductSpecs struct {
	Brand      string           `json:"brand"`
	Model      string           `json:"model"`
	PowerWatts int              `json:"powerWatts,omitempty"`
	Voltage    int              `json:"voltage,omitempty"`
	Condition  ProductCondition `json:"condition"`
}

// Product represents a marketplace listing. Auction fields are only
// meaningful when IsAuction is true.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	SellerID    uuid.UUID       `json:"sellerId"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Specs       ProductSpecs    `json:"specs"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      ProductStatus   `json:"status"`

	IsAuction      bool             `json:"isAuction"`
	MinimumBid     decimal.Decimal  `json:"minimumBid"`
	CurrentBid     *decimal.Decimal `json:"currentBid,omitempty"`
	BidCount       int              `json:"bidCount"`
	AuctionEndDate *time.Time       `json:"auctionEndDate,omitempty"`
	BuyNowPrice    *decimal.Decimal `json:"buyNowPrice,omitempty"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`

	// Joins
	Seller   *User     `json:"seller,omitempty"`
	Category *Category `json:"category,omitempty"`
}

// AcceptingBids reports whether the product can take a bid at the given time.
func (p *Product) AcceptingBids(now time.Time) bool {
	if !p.IsAuction || p.Status != ProductStatusActive {
		return false
	}
	return p.AuctionEndDate != nil && p.AuctionEndDate.After(now)
}

// CreateProductInput represents input for creating a listing
type CreateProductInput struct {
	CategoryID  string       `json:"categoryId" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description" binding:"required"`
	Specs       ProductSpecs `json:"specs"`
	Price       string       `json:"price" binding:"required"`
	Stock       int          `json:"stock"`

	IsAuction      bool       `json:"isAuction"`
	MinimumBid     string     `json:"minimumBid"`
	AuctionEndDate *time.Time `json:"auctionEndDate"`
	BuyNowPrice    string     `json:"buyNowPrice"`
}

// UpdateProductInput represents input for updating a listing
type UpdateProductInput struct {
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	Specs       *ProductSpecs `json:"specs"`
	Price       *string       `json:"price"`
	Stock       *int          `json:"stock"`
}

// ProductFilter narrows product list queries
type ProductFilter struct {
	CategoryID  *uuid.UUID
	SellerID    *uuid.UUID
	AuctionOnly bool
	Status      ProductStatus
}
