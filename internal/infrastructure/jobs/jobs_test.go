package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
)

type productSweepStub struct {
	due         []*entities.Product
	findErr     error
	claimed     map[uuid.UUID]bool
	markCalls   int
	claimDenied bool
}

func (s *productSweepStub) FindExpiredActiveAuctions(_ context.Context, _ time.Time, _ int) ([]*entities.Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.due, nil
}

func (s *productSweepStub) MarkAuctionEnded(_ context.Context, id uuid.UUID, _ time.Time) (bool, error) {
	s.markCalls++
	if s.claimDenied {
		return false, nil
	}
	if s.claimed == nil {
		s.claimed = map[uuid.UUID]bool{}
	}
	s.claimed[id] = true
	return true, nil
}

func (s *productSweepStub) Create(context.Context, *entities.Product) error { return nil }
func (s *productSweepStub) GetByID(context.Context, uuid.UUID) (*entities.Product, error) {
	return nil, domainerrors.ErrNotFound
}
func (s *productSweepStub) Update(context.Context, *entities.Product) error { return nil }
func (s *productSweepStub) UpdateStatus(context.Context, uuid.UUID, entities.ProductStatus) error {
	return nil
}
func (s *productSweepStub) List(context.Context, entities.ProductFilter, int, int) ([]*entities.Product, int, error) {
	return nil, 0, nil
}
func (s *productSweepStub) Count(context.Context) (int64, error) { return 0, nil }
func (s *productSweepStub) CountActiveAuctions(context.Context, time.Time) (int64, error) {
	return 0, nil
}
func (s *productSweepStub) CompareAndSetCurrentBid(context.Context, uuid.UUID, decimal.Decimal, time.Time) (bool, error) {
	return false, nil
}

type bidSweepStub struct {
	highest map[uuid.UUID]*entities.Bid
}

func (s *bidSweepStub) Create(context.Context, *entities.Bid) error { return nil }
func (s *bidSweepStub) GetHighestByProduct(_ context.Context, productID uuid.UUID) (*entities.Bid, error) {
	if b, ok := s.highest[productID]; ok {
		return b, nil
	}
	return nil, domainerrors.ErrNotFound
}
func (s *bidSweepStub) ListByProduct(context.Context, uuid.UUID, int, int) ([]*entities.Bid, int, error) {
	return nil, 0, nil
}
func (s *bidSweepStub) ListByUser(context.Context, uuid.UUID, int, int) ([]*entities.Bid, int, error) {
	return nil, 0, nil
}

type orderSweepStub struct {
	created []*entities.Order
}

func (s *orderSweepStub) Create(_ context.Context, o *entities.Order) error {
	s.created = append(s.created, o)
	return nil
}
func (s *orderSweepStub) GetByID(context.Context, uuid.UUID) (*entities.Order, error) {
	return nil, domainerrors.ErrNotFound
}
func (s *orderSweepStub) GetPendingByProductAndBuyer(context.Context, uuid.UUID, uuid.UUID) (*entities.Order, error) {
	return nil, domainerrors.ErrNotFound
}
func (s *orderSweepStub) UpdateStatus(context.Context, uuid.UUID, entities.OrderStatus) error {
	return nil
}
func (s *orderSweepStub) ListByBuyer(context.Context, uuid.UUID, int, int) ([]*entities.Order, int, error) {
	return nil, 0, nil
}
func (s *orderSweepStub) ListBySeller(context.Context, uuid.UUID, int, int) ([]*entities.Order, int, error) {
	return nil, 0, nil
}
func (s *orderSweepStub) List(context.Context, int, int) ([]*entities.Order, int, error) {
	return nil, 0, nil
}
func (s *orderSweepStub) Count(context.Context) (int64, error) { return 0, nil }
func (s *orderSweepStub) SumPaidAmounts(context.Context) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, nil
}

type passthroughUoW struct{}

func (passthroughUoW) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestAuctionSettlement_WinnerCreatesOrder(t *testing.T) {
	productID := uuid.New()
	sellerID := uuid.New()
	winnerID := uuid.New()

	products := &productSweepStub{due: []*entities.Product{{ID: productID, SellerID: sellerID}}}
	bids := &bidSweepStub{highest: map[uuid.UUID]*entities.Bid{
		productID: {ProductID: productID, UserID: winnerID, Amount: decimal.NewFromInt(150)},
	}}
	orders := &orderSweepStub{}

	job := NewAuctionSettlementJob(products, bids, orders, passthroughUoW{}, decimal.NewFromInt(5), time.Minute)
	job.RunOnce(context.Background())

	require.Equal(t, 1, products.markCalls)
	require.Len(t, orders.created, 1)

	o := orders.created[0]
	require.Equal(t, winnerID, o.BuyerID)
	require.Equal(t, sellerID, o.SellerID)
	require.Equal(t, entities.OrderStatusPending, o.Status)
	require.True(t, o.FromAuction)
	require.True(t, o.Amount.Equal(decimal.NewFromInt(150)))
	require.True(t, o.PlatformFee.Equal(decimal.RequireFromString("7.5")))
	require.True(t, o.SellerPayout.Equal(decimal.RequireFromString("142.5")))
}

func TestAuctionSettlement_NoBidsJustEnds(t *testing.T) {
	products := &productSweepStub{due: []*entities.Product{{ID: uuid.New(), SellerID: uuid.New()}}}
	orders := &orderSweepStub{}

	job := NewAuctionSettlementJob(products, &bidSweepStub{}, orders, passthroughUoW{}, decimal.NewFromInt(5), time.Minute)
	job.RunOnce(context.Background())

	require.Equal(t, 1, products.markCalls)
	require.Empty(t, orders.created)
}

func TestAuctionSettlement_AlreadyClaimedSkips(t *testing.T) {
	products := &productSweepStub{
		due:         []*entities.Product{{ID: uuid.New(), SellerID: uuid.New()}},
		claimDenied: true,
	}
	orders := &orderSweepStub{}

	job := NewAuctionSettlementJob(products, &bidSweepStub{}, orders, passthroughUoW{}, decimal.NewFromInt(5), time.Minute)
	job.RunOnce(context.Background())

	require.Empty(t, orders.created)
}

func TestAuctionSettlement_FindError(t *testing.T) {
	products := &productSweepStub{findErr: errors.New("db down")}
	job := NewAuctionSettlementJob(products, &bidSweepStub{}, &orderSweepStub{}, passthroughUoW{}, decimal.NewFromInt(5), time.Minute)
	job.RunOnce(context.Background())
	require.Zero(t, products.markCalls)
}

type quoteExpiryStub struct {
	expired    []*entities.QuoteRequest
	getErr     error
	expireCall int
	lastIDs    []uuid.UUID
}

func (s *quoteExpiryStub) Create(context.Context, *entities.QuoteRequest) error { return nil }
func (s *quoteExpiryStub) GetByID(context.Context, uuid.UUID) (*entities.QuoteRequest, error) {
	return nil, domainerrors.ErrNotFound
}
func (s *quoteExpiryStub) UpdateStatus(context.Context, uuid.UUID, entities.QuoteRequestStatus, entities.QuoteRequestStatus) (bool, error) {
	return false, nil
}
func (s *quoteExpiryStub) CreateResponse(context.Context, *entities.QuoteResponse) error { return nil }
func (s *quoteExpiryStub) ListByBuyer(context.Context, uuid.UUID, int, int) ([]*entities.QuoteRequest, int, error) {
	return nil, 0, nil
}
func (s *quoteExpiryStub) ListByVendor(context.Context, uuid.UUID, int, int) ([]*entities.QuoteRequest, int, error) {
	return nil, 0, nil
}
func (s *quoteExpiryStub) GetExpiredOpen(context.Context, time.Time, int) ([]*entities.QuoteRequest, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.expired, nil
}
func (s *quoteExpiryStub) ExpireRequests(_ context.Context, ids []uuid.UUID) error {
	s.expireCall++
	s.lastIDs = ids
	return nil
}

func TestQuoteRequestExpiry_Success(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	repo := &quoteExpiryStub{expired: []*entities.QuoteRequest{{ID: id1}, {ID: id2}}}

	job := NewQuoteRequestExpiryJob(repo, time.Minute)
	job.RunOnce(context.Background())

	require.Equal(t, 1, repo.expireCall)
	require.ElementsMatch(t, []uuid.UUID{id1, id2}, repo.lastIDs)
}

func TestQuoteRequestExpiry_NoItems(t *testing.T) {
	repo := &quoteExpiryStub{}
	job := NewQuoteRequestExpiryJob(repo, time.Minute)
	job.RunOnce(context.Background())
	require.Equal(t, 0, repo.expireCall)
}

func TestQuoteRequestExpiry_GetError(t *testing.T) {
	repo := &quoteExpiryStub{getErr: errors.New("db down")}
	job := NewQuoteRequestExpiryJob(repo, time.Minute)
	job.RunOnce(context.Background())
	require.Equal(t, 0, repo.expireCall)
}
