package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	domainRepos "voltbay.backend/internal/domain/repositories"
)

// AuctionSettlementJob sweeps expired auctions and settles them.
type AuctionSettlementJob struct {
	products   domainRepos.ProductRepository
	bids       domainRepos.BidRepository
	orders     domainRepos.OrderRepository
	uow        domainRepos.UnitOfWork
	feePercent decimal.Decimal
	interval   time.Duration
	batchSize  int
	stop       chan struct{}
}

func NewAuctionSettlementJob(
	products domainRepos.ProductRepository,
	bids domainRepos.BidRepository,
	orders domainRepos.OrderRepository,
	uow domainRepos.UnitOfWork,
	feePercent decimal.Decimal,
	interval time.Duration,
) *AuctionSettlementJob {
	return &AuctionSettlementJob{
		products:   products,
		bids:       bids,
		orders:     orders,
		uow:        uow,
		feePercent: feePercent,
		interval:   interval,
		batchSize:  100,
		stop:       make(chan struct{}),
	}
}

func (j *AuctionSettlementJob) Start(ctx context.Context) {
	log.Println("🕐 Starting auction settlement job...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Auction settlement job stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Auction settlement job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx)
		}
	}
}

func (j *AuctionSettlementJob) Stop() {
	close(j.stop)
}

// RunOnce performs a single sweep. Each auction settles in its own
// transaction so one failure does not block the rest of the batch.
func (j *AuctionSettlementJob) RunOnce(ctx context.Context) {
	now := time.Now()
	due, err := j.products.FindExpiredActiveAuctions(ctx, now, j.batchSize)
	if err != nil {
		log.Printf("❌ Error fetching expired auctions: %v", err)
		return
	}

	if len(due) == 0 {
		return
	}

	log.Printf("🔄 Settling %d expired auctions...", len(due))

	settled := 0
	for _, product := range due {
		if err := j.settle(ctx, product, now); err != nil {
			log.Printf("❌ Error settling auction %s: %v", product.ID, err)
			continue
		}
		settled++
	}

	log.Printf("✅ Settled %d auctions", settled)
}

func (j *AuctionSettlementJob) settle(ctx context.Context, product *entities.Product, now time.Time) error {
	return j.uow.Do(ctx, func(ctx context.Context) error {
		claimed, err := j.products.MarkAuctionEnded(ctx, product.ID, now)
		if err != nil {
			return err
		}
		if !claimed {
			// Another sweep already settled this auction.
			return nil
		}

		winner, err := j.bids.GetHighestByProduct(ctx, product.ID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				// No bids; the listing just ends.
				return nil
			}
			return err
		}

		split := entities.SplitFee(winner.Amount, j.feePercent)
		return j.orders.Create(ctx, &entities.Order{
			BuyerID:      winner.UserID,
			SellerID:     product.SellerID,
			ProductID:    product.ID,
			Quantity:     1,
			Amount:       split.Amount,
			PlatformFee:  split.PlatformFee,
			SellerPayout: split.SellerPayout,
			Status:       entities.OrderStatusPending,
			FromAuction:  true,
		})
	})
}
