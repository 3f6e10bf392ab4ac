package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/domain/repositories"
)

// AuctionUsecase handles bidding business logic
type AuctionUsecase struct {
	productRepo repositories.ProductRepository
	bidRepo     repositories.BidRepository
	uow         repositories.UnitOfWork
}

// NewAuctionUsecase creates a new auction usecase
func NewAuctionUsecase(
	productRepo repositories.ProductRepository,
	bidRepo repositories.BidRepository,
	uow repositories.UnitOfWork,
) *AuctionUsecase {
	return &AuctionUsecase{
		productRepo: productRepo,
		bidRepo:     bidRepo,
		uow:         uow,
	}
}

// PlaceBid places a bid on an open auction. The current-bid raise is a
// single conditional UPDATE, so two racing bids can never both win;
// the loser is re-classified by re-reading the row.
func (u *AuctionUsecase) PlaceBid(ctx context.Context, bidderID, productID uuid.UUID, input *entities.PlaceBidInput) (*entities.AuctionState, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, domainerrors.BadRequest("invalid bid amount")
	}

	now := time.Now()
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := u.checkBid(product, bidderID, amount, now); err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		raised, err := u.productRepo.CompareAndSetCurrentBid(ctx, productID, amount, now)
		if err != nil {
			return err
		}
		if !raised {
			// The precondition read passed but the conditional update
			// lost a race; re-read to report the exact reason.
			current, err := u.productRepo.GetByID(ctx, productID)
			if err != nil {
				return err
			}
			if err := u.checkBid(current, bidderID, amount, now); err != nil {
				return err
			}
			return domainerrors.ErrBidTooLow
		}

		return u.bidRepo.Create(ctx, &entities.Bid{
			ProductID: productID,
			UserID:    bidderID,
			Amount:    amount,
		})
	})
	if err != nil {
		return nil, err
	}

	return u.GetAuctionState(ctx, productID)
}

// GetAuctionState returns the auction snapshot including the leading bid
func (u *AuctionUsecase) GetAuctionState(ctx context.Context, productID uuid.UUID) (*entities.AuctionState, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAuction {
		return nil, domainerrors.ErrNotAuction
	}

	state := &entities.AuctionState{
		ProductID:      product.ID,
		Status:         product.Status,
		MinimumBid:     product.MinimumBid,
		CurrentBid:     product.CurrentBid,
		BidCount:       product.BidCount,
		AuctionEndDate: product.AuctionEndDate,
		BuyNowPrice:    product.BuyNowPrice,
	}

	highest, err := u.bidRepo.GetHighestByProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return state, nil
		}
		return nil, err
	}
	state.HighestBid = highest
	return state, nil
}

// ListBids returns the bid history for a product, newest first
func (u *AuctionUsecase) ListBids(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error) {
	if _, err := u.productRepo.GetByID(ctx, productID); err != nil {
		return nil, 0, err
	}
	return u.bidRepo.ListByProduct(ctx, productID, limit, offset)
}

func (u *AuctionUsecase) checkBid(product *entities.Product, bidderID uuid.UUID, amount decimal.Decimal, now time.Time) error {
	if !product.IsAuction {
		return domainerrors.ErrNotAuction
	}
	if product.SellerID == bidderID {
		return domainerrors.ErrSelfBid
	}
	if !product.AcceptingBids(now) {
		return domainerrors.ErrAuctionClosed
	}
	if product.CurrentBid != nil {
		if amount.LessThanOrEqual(*product.CurrentBid) {
			return domainerrors.ErrBidTooLow
		}
	} else if amount.LessThan(product.MinimumBid) {
		return domainerrors.ErrBidTooLow
	}
	return nil
}
