package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bid represents an immutable offer against an auction listing.
// Bids are append-only; they are never updated or deleted.
type Bid struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	UserID    uuid.UUID       `json:"userId"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`

	// Joins
	Bidder *User `json:"bidder,omitempty"`
}

// PlaceBidInput represents input for placing a bid
type PlaceBidInput struct {
	Amount string `json:"amount" binding:"required"`
}

// AuctionState is the snapshot returned after reads and successful bids.
type AuctionState struct {
	ProductID      uuid.UUID        `json:"productId"`
	Status         ProductStatus    `json:"status"`
	MinimumBid     decimal.Decimal  `json:"minimumBid"`
	CurrentBid     *decimal.Decimal `json:"currentBid,omitempty"`
	BidCount       int              `json:"bidCount"`
	AuctionEndDate *time.Time       `json:"auctionEndDate,omitempty"`
	BuyNowPrice    *decimal.Decimal `json:"buyNowPrice,omitempty"`
	HighestBid     *Bid             `json:"highestBid,omitempty"`
}
