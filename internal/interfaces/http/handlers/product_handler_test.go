package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
)

type productServiceStub struct {
	create     func(ctx context.Context, sellerID uuid.UUID, input *entities.CreateProductInput) (*entities.Product, error)
	get        func(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	update     func(ctx context.Context, actorID, productID uuid.UUID, input *entities.UpdateProductInput) (*entities.Product, error)
	delist     func(ctx context.Context, actorID uuid.UUID, role entities.Role, productID uuid.UUID) error
	list       func(ctx context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error)
	categories func(ctx context.Context) ([]*entities.Category, error)
}

func (s *productServiceStub) CreateProduct(ctx context.Context, sellerID uuid.UUID, input *entities.CreateProductInput) (*entities.Product, error) {
	return s.create(ctx, sellerID, input)
}
func (s *productServiceStub) GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return s.get(ctx, id)
}
func (s *productServiceStub) UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input *entities.UpdateProductInput) (*entities.Product, error) {
	return s.update(ctx, actorID, productID, input)
}
func (s *productServiceStub) DelistProduct(ctx context.Context, actorID uuid.UUID, role entities.Role, productID uuid.UUID) error {
	return s.delist(ctx, actorID, role, productID)
}
func (s *productServiceStub) ListProducts(ctx context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error) {
	return s.list(ctx, filter, limit, offset)
}
func (s *productServiceStub) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return s.categories(ctx)
}

type auctionServiceStub struct {
	placeBid func(ctx context.Context, bidderID, productID uuid.UUID, input *entities.PlaceBidInput) (*entities.AuctionState, error)
	state    func(ctx context.Context, productID uuid.UUID) (*entities.AuctionState, error)
	listBids func(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error)
}

func (s *auctionServiceStub) PlaceBid(ctx context.Context, bidderID, productID uuid.UUID, input *entities.PlaceBidInput) (*entities.AuctionState, error) {
	return s.placeBid(ctx, bidderID, productID, input)
}
func (s *auctionServiceStub) GetAuctionState(ctx context.Context, productID uuid.UUID) (*entities.AuctionState, error) {
	return s.state(ctx, productID)
}
func (s *auctionServiceStub) ListBids(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error) {
	return s.listBids(ctx, productID, limit, offset)
}

func TestProductHandler_Create(t *testing.T) {
	sellerID := uuid.New()
	stub := &productServiceStub{
		create: func(_ context.Context, sid uuid.UUID, input *entities.CreateProductInput) (*entities.Product, error) {
			require.Equal(t, sellerID, sid)
			require.Equal(t, "400W Panel", input.Title)
			return &entities.Product{ID: uuid.New(), SellerID: sid, Title: input.Title}, nil
		},
	}
	h := &ProductHandler{productUsecase: stub}
	r := newRouter()
	r.POST("/products", authAs(sellerID, entities.RoleSeller), h.CreateProduct)

	w := doJSON(t, r, http.MethodPost, "/products", map[string]interface{}{
		"categoryId":  uuid.New().String(),
		"title":       "400W Panel",
		"description": "Monocrystalline panel",
		"price":       "250.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "400W Panel")
}

func TestProductHandler_List_FilterAndPagination(t *testing.T) {
	categoryID := uuid.New()
	stub := &productServiceStub{
		list: func(_ context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error) {
			require.NotNil(t, filter.CategoryID)
			require.Equal(t, categoryID, *filter.CategoryID)
			require.True(t, filter.AuctionOnly)
			require.Equal(t, 10, limit)
			require.Equal(t, 10, offset)
			return []*entities.Product{{ID: uuid.New()}}, 21, nil
		},
	}
	h := &ProductHandler{productUsecase: stub}
	r := newRouter()
	r.GET("/products", h.ListProducts)

	w := doJSON(t, r, http.MethodGet, "/products?categoryId="+categoryID.String()+"&auction=true&page=2&limit=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	meta := body["pagination"].(map[string]interface{})
	require.EqualValues(t, 21, meta["totalCount"])
	require.EqualValues(t, 3, meta["totalPages"])
}

func TestProductHandler_List_BadCategoryID(t *testing.T) {
	h := &ProductHandler{productUsecase: &productServiceStub{}}
	r := newRouter()
	r.GET("/products", h.ListProducts)

	w := doJSON(t, r, http.MethodGet, "/products?categoryId=not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	stub := &productServiceStub{
		get: func(context.Context, uuid.UUID) (*entities.Product, error) {
			return nil, domainerrors.ErrNotFound
		},
	}
	h := &ProductHandler{productUsecase: stub}
	r := newRouter()
	r.GET("/products/:id", h.GetProduct)

	w := doJSON(t, r, http.MethodGet, "/products/"+uuid.New().String(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_Delist(t *testing.T) {
	sellerID := uuid.New()
	productID := uuid.New()
	stub := &productServiceStub{
		delist: func(_ context.Context, actorID uuid.UUID, role entities.Role, pid uuid.UUID) error {
			require.Equal(t, sellerID, actorID)
			require.Equal(t, entities.RoleSeller, role)
			require.Equal(t, productID, pid)
			return nil
		},
	}
	h := &ProductHandler{productUsecase: stub}
	r := newRouter()
	r.DELETE("/products/:id", authAs(sellerID, entities.RoleSeller), h.DelistProduct)

	w := doJSON(t, r, http.MethodDelete, "/products/"+productID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestProductHandler_PlaceBid(t *testing.T) {
	bidderID := uuid.New()
	productID := uuid.New()
	current := decimal.RequireFromString("150.00")
	stub := &auctionServiceStub{
		placeBid: func(_ context.Context, bid, pid uuid.UUID, input *entities.PlaceBidInput) (*entities.AuctionState, error) {
			require.Equal(t, bidderID, bid)
			require.Equal(t, productID, pid)
			require.Equal(t, "150.00", input.Amount)
			return &entities.AuctionState{ProductID: pid, CurrentBid: &current, BidCount: 3}, nil
		},
	}
	h := &ProductHandler{auctionUsecase: stub}
	r := newRouter()
	r.POST("/products/:id/bids", authAs(bidderID, entities.RoleBuyer), h.PlaceBid)

	w := doJSON(t, r, http.MethodPost, "/products/"+productID.String()+"/bids", map[string]string{"amount": "150.00"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), "150")
}

func TestProductHandler_PlaceBid_TooLow(t *testing.T) {
	stub := &auctionServiceStub{
		placeBid: func(context.Context, uuid.UUID, uuid.UUID, *entities.PlaceBidInput) (*entities.AuctionState, error) {
			return nil, domainerrors.ErrBidTooLow
		},
	}
	h := &ProductHandler{auctionUsecase: stub}
	r := newRouter()
	r.POST("/products/:id/bids", authAs(uuid.New(), entities.RoleBuyer), h.PlaceBid)

	w := doJSON(t, r, http.MethodPost, "/products/"+uuid.New().String()+"/bids", map[string]string{"amount": "1.00"})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProductHandler_GetAuctionState(t *testing.T) {
	productID := uuid.New()
	stub := &auctionServiceStub{
		state: func(_ context.Context, pid uuid.UUID) (*entities.AuctionState, error) {
			return &entities.AuctionState{ProductID: pid, BidCount: 2}, nil
		},
	}
	h := &ProductHandler{auctionUsecase: stub}
	r := newRouter()
	r.GET("/products/:id/auction", h.GetAuctionState)

	w := doJSON(t, r, http.MethodGet, "/products/"+productID.String()+"/auction", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), productID.String())
}

func TestProductHandler_ListCategories(t *testing.T) {
	stub := &productServiceStub{
		categories: func(context.Context) ([]*entities.Category, error) {
			return []*entities.Category{{ID: uuid.New(), Name: "Solar Panels", Slug: "solar-panels"}}, nil
		},
	}
	h := &ProductHandler{productUsecase: stub}
	r := newRouter()
	r.GET("/categories", h.ListCategories)

	w := doJSON(t, r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "solar-panels")
}
