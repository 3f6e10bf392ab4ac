package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/interfaces/http/middleware"
	"voltbay.backend/internal/interfaces/http/response"
	"voltbay.backend/internal/usecases"
	"voltbay.backend/pkg/utils"
)

type productService interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input *entities.CreateProductInput) (*entities.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input *entities.UpdateProductInput) (*entities.Product, error)
	DelistProduct(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, productID uuid.UUID) error
	ListProducts(ctx context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error)
	ListCategories(ctx context.Context) ([]*entities.Category, error)
}

type auctionService interface {
	PlaceBid(ctx context.Context, bidderID, productID uuid.UUID, input *entities.PlaceBidInput) (*entities.AuctionState, error)
	GetAuctionState(ctx context.Context, productID uuid.UUID) (*entities.AuctionState, error)
	ListBids(ctx context.Context, productID uuid.UUID, limit, offset int) ([]*entities.Bid, int, error)
}

// ProductHandler handles catalog and auction endpoints
type ProductHandler struct {
	productUsecase productService
	auctionUsecase auctionService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productUsecase *usecases.ProductUsecase, auctionUsecase *usecases.AuctionUsecase) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		auctionUsecase: auctionUsecase,
	}
}

// CreateProduct creates a listing
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input entities.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	product, err := h.productUsecase.CreateProduct(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"product": product})
}

// GetProduct returns one listing
// GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	product, err := h.productUsecase.GetProduct(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// ListProducts returns listings matching query filters
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := entities.ProductFilter{
		AuctionOnly: c.Query("auction") == "true",
		Status:      entities.ProductStatus(c.Query("status")),
	}
	if raw := c.Query("categoryId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid category id"))
			return
		}
		filter.CategoryID = &id
	}
	if raw := c.Query("sellerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("invalid seller id"))
			return
		}
		filter.SellerID = &id
	}

	params := paginationFromQuery(c)
	products, total, err := h.productUsecase.ListProducts(c.Request.Context(), filter, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// UpdateProduct edits the caller's own listing
// PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	var input entities.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	product, err := h.productUsecase.UpdateProduct(c.Request.Context(), userID, productID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// DelistProduct removes a listing from the catalog
// DELETE /api/v1/products/:id
func (h *ProductHandler) DelistProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	if err := h.productUsecase.DelistProduct(c.Request.Context(), userID, role, productID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "product delisted"})
}

// ListCategories returns all categories
// GET /api/v1/categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productUsecase.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

// PlaceBid places a bid on an auction listing
// POST /api/v1/products/:id/bids
func (h *ProductHandler) PlaceBid(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	var input entities.PlaceBidInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	state, err := h.auctionUsecase.PlaceBid(c.Request.Context(), userID, productID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"auction": state})
}

// GetAuctionState returns the auction snapshot
// GET /api/v1/products/:id/auction
func (h *ProductHandler) GetAuctionState(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	state, err := h.auctionUsecase.GetAuctionState(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"auction": state})
}

// ListBids returns the bid history for a listing
// GET /api/v1/products/:id/bids
func (h *ProductHandler) ListBids(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid product id"))
		return
	}

	params := paginationFromQuery(c)
	bids, total, err := h.auctionUsecase.ListBids(c.Request.Context(), productID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"bids":       bids,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// paginationFromQuery reads page/limit query params with a default page
// size of 20.
func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(utils.DefaultLimit)))
	return utils.GetPaginationParams(page, limit)
}
