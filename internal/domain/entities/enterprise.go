package entities

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteRequestStatus represents the B2B quote workflow state
type QuoteRequestStatus string

const (
	QuoteStatusPending   QuoteRequestStatus = "PENDING"
	QuoteStatusResponded QuoteRequestStatus = "RESPONDED"
	QuoteStatusAccepted  QuoteRequestStatus = "ACCEPTED"
	QuoteStatusRejected  QuoteRequestStatus = "REJECTED"
	QuoteStatusExpired   QuoteRequestStatus = "EXPIRED"
)

// EnterpriseListing represents a bulk/custom procurement listing.
type EnterpriseListing struct {
	ID               uuid.UUID       `json:"id"`
	VendorID         uuid.UUID       `json:"vendorId"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	MinOrderQuantity int             `json:"minOrderQuantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	LeadTimeDays     int             `json:"leadTimeDays"`
	IsActive         bool            `json:"isActive"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	DeletedAt        *time.Time      `json:"-"`

	// Joins
	Vendor *User `json:"vendor,omitempty"`
}

// QuoteLineItem is one priced line of a vendor's quote response.
type QuoteLineItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// QuoteLineItems is stored as a json column but always typed in code.
type QuoteLineItems []QuoteLineItem

// Value implements driver.Valuer
func (l QuoteLineItems) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *QuoteLineItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for QuoteLineItems")
}

// Total sums quantity * unit price across all lines.
func (l QuoteLineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// QuoteRequest represents a buyer's request against an enterprise listing.
type QuoteRequest struct {
	ID        uuid.UUID          `json:"id"`
	BuyerID   uuid.UUID          `json:"buyerId"`
	ListingID uuid.UUID          `json:"listingId"`
	Quantity  int                `json:"quantity"`
	Note      string             `json:"note,omitempty"`
	Status    QuoteRequestStatus `json:"status"`
	ExpiresAt time.Time          `json:"expiresAt"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
	DeletedAt *time.Time         `json:"-"`

	// Joins
	Listing  *EnterpriseListing `json:"listing,omitempty"`
	Response *QuoteResponse     `json:"response,omitempty"`
}

// QuoteResponse is the vendor's priced answer to a quote request.
type QuoteResponse struct {
	ID             uuid.UUID       `json:"id"`
	QuoteRequestID uuid.UUID       `json:"quoteRequestId"`
	VendorID       uuid.UUID       `json:"vendorId"`
	LineItems      QuoteLineItems  `json:"lineItems"`
	Total          decimal.Decimal `json:"total"`
	ValidUntil     time.Time       `json:"validUntil"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CreateEnterpriseListingInput represents input for a B2B listing
type CreateEnterpriseListingInput struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description" binding:"required"`
	MinOrderQuantity int    `json:"minOrderQuantity" binding:"required,min=1"`
	UnitPrice        string `json:"unitPrice" binding:"required"`
	LeadTimeDays     int    `json:"leadTimeDays"`
}

// CreateQuoteRequestInput represents input for requesting a quote
type CreateQuoteRequestInput struct {
	ListingID string `json:"listingId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Note      string `json:"note"`
}

// RespondQuoteInput represents a vendor's quote response
type RespondQuoteInput struct {
	LineItems  []QuoteLineItem `json:"lineItems" binding:"required,min=1"`
	ValidUntil time.Time       `json:"validUntil" binding:"required"`
}
