package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/domain/repositories"
)

// EnterpriseUsecase handles B2B listings and the quote workflow
type EnterpriseUsecase struct {
	listingRepo repositories.EnterpriseListingRepository
	quoteRepo   repositories.QuoteRequestRepository
	requestTTL  time.Duration
}

// NewEnterpriseUsecase creates a new enterprise usecase
func NewEnterpriseUsecase(
	listingRepo repositories.EnterpriseListingRepository,
	quoteRepo repositories.QuoteRequestRepository,
	requestTTL time.Duration,
) *EnterpriseUsecase {
	return &EnterpriseUsecase{
		listingRepo: listingRepo,
		quoteRepo:   quoteRepo,
		requestTTL:  requestTTL,
	}
}

// CreateListing creates a vendor's bulk listing
func (u *EnterpriseUsecase) CreateListing(ctx context.Context, vendorID uuid.UUID, input *entities.CreateEnterpriseListingInput) (*entities.EnterpriseListing, error) {
	unitPrice, err := decimal.NewFromString(input.UnitPrice)
	if err != nil || !unitPrice.IsPositive() {
		return nil, domainerrors.BadRequest("invalid unit price")
	}

	listing := &entities.EnterpriseListing{
		VendorID:         vendorID,
		Title:            input.Title,
		Description:      input.Description,
		MinOrderQuantity: input.MinOrderQuantity,
		UnitPrice:        unitPrice,
		LeadTimeDays:     input.LeadTimeDays,
		IsActive:         true,
	}
	if err := u.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// ListListings returns listings; non-owners only see active ones
func (u *EnterpriseUsecase) ListListings(ctx context.Context, activeOnly bool, limit, offset int) ([]*entities.EnterpriseListing, int, error) {
	return u.listingRepo.List(ctx, activeOnly, limit, offset)
}

// DeactivateListing removes a listing from the public list
func (u *EnterpriseUsecase) DeactivateListing(ctx context.Context, vendorID uuid.UUID, listingID uuid.UUID) error {
	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.VendorID != vendorID {
		return domainerrors.Forbidden("not the listing vendor")
	}
	return u.listingRepo.SetActive(ctx, listingID, false)
}

// CreateQuoteRequest opens a pending quote request against a listing
func (u *EnterpriseUsecase) CreateQuoteRequest(ctx context.Context, buyerID uuid.UUID, input *entities.CreateQuoteRequestInput) (*entities.QuoteRequest, error) {
	listingID, err := uuid.Parse(input.ListingID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid listing id")
	}

	listing, err := u.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !listing.IsActive {
		return nil, domainerrors.UnprocessableEntity("listing is not active", domainerrors.ErrInvalidInput)
	}
	if listing.VendorID == buyerID {
		return nil, domainerrors.Forbidden("cannot request a quote on own listing")
	}
	if input.Quantity < listing.MinOrderQuantity {
		return nil, domainerrors.BadRequest("quantity below the minimum order")
	}

	req := &entities.QuoteRequest{
		BuyerID:   buyerID,
		ListingID: listingID,
		Quantity:  input.Quantity,
		Note:      input.Note,
		Status:    entities.QuoteStatusPending,
		ExpiresAt: time.Now().Add(u.requestTTL),
	}
	if err := u.quoteRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// GetQuoteRequest returns a request visible to its buyer or the
// listing's vendor.
func (u *EnterpriseUsecase) GetQuoteRequest(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID) (*entities.QuoteRequest, error) {
	req, err := u.quoteRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.BuyerID != actorID && (req.Listing == nil || req.Listing.VendorID != actorID) {
		return nil, domainerrors.Forbidden("not a party to this quote request")
	}
	return req, nil
}

// ListQuoteRequests shows buyers their own requests and vendors the
// requests against their listings.
func (u *EnterpriseUsecase) ListQuoteRequests(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, limit, offset int) ([]*entities.QuoteRequest, int, error) {
	if actorRole == entities.RoleEnterpriseVendor {
		return u.quoteRepo.ListByVendor(ctx, actorID, limit, offset)
	}
	return u.quoteRepo.ListByBuyer(ctx, actorID, limit, offset)
}

// RespondToQuote records the vendor's priced response on a pending
// request. The pending->responded flip is conditional, so concurrent
// responses cannot double-write.
func (u *EnterpriseUsecase) RespondToQuote(ctx context.Context, vendorID uuid.UUID, requestID uuid.UUID, input *entities.RespondQuoteInput) (*entities.QuoteRequest, error) {
	req, err := u.quoteRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Listing == nil || req.Listing.VendorID != vendorID {
		return nil, domainerrors.Forbidden("not the listing vendor")
	}
	if !input.ValidUntil.After(time.Now()) {
		return nil, domainerrors.BadRequest("valid until must be in the future")
	}

	moved, err := u.quoteRepo.UpdateStatus(ctx, requestID, entities.QuoteStatusPending, entities.QuoteStatusResponded)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domainerrors.UnprocessableEntity("quote request is not pending", domainerrors.ErrQuoteStateInvalid)
	}

	lines := entities.QuoteLineItems(input.LineItems)
	if err := u.quoteRepo.CreateResponse(ctx, &entities.QuoteResponse{
		QuoteRequestID: requestID,
		VendorID:       vendorID,
		LineItems:      lines,
		Total:          lines.Total(),
		ValidUntil:     input.ValidUntil,
	}); err != nil {
		return nil, err
	}

	return u.quoteRepo.GetByID(ctx, requestID)
}

// ResolveQuote lets the owning buyer accept or reject a responded quote
func (u *EnterpriseUsecase) ResolveQuote(ctx context.Context, buyerID uuid.UUID, requestID uuid.UUID, accept bool) (*entities.QuoteRequest, error) {
	req, err := u.quoteRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.BuyerID != buyerID {
		return nil, domainerrors.Forbidden("not the requesting buyer")
	}

	target := entities.QuoteStatusRejected
	if accept {
		target = entities.QuoteStatusAccepted
	}

	moved, err := u.quoteRepo.UpdateStatus(ctx, requestID, entities.QuoteStatusResponded, target)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, domainerrors.UnprocessableEntity("quote request has no open response", domainerrors.ErrQuoteStateInvalid)
	}

	return u.quoteRepo.GetByID(ctx, requestID)
}
