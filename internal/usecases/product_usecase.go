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

// ProductUsecase handles catalog business logic
type ProductUsecase struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewProductUsecase creates a new product usecase
func NewProductUsecase(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProduct creates a listing owned by the seller
func (u *ProductUsecase) CreateProduct(ctx context.Context, sellerID uuid.UUID, input *entities.CreateProductInput) (*entities.Product, error) {
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid category id")
	}
	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, domainerrors.NotFound("category not found")
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		return nil, domainerrors.BadRequest("invalid price")
	}

	stock := input.Stock
	if stock <= 0 {
		stock = 1
	}

	product := &entities.Product{
		SellerID:    sellerID,
		CategoryID:  categoryID,
		Title:       input.Title,
		Description: input.Description,
		Specs:       input.Specs,
		Price:       price,
		Stock:       stock,
		Status:      entities.ProductStatusActive,
	}

	if input.IsAuction {
		minimumBid, err := decimal.NewFromString(input.MinimumBid)
		if err != nil || !minimumBid.IsPositive() {
			return nil, domainerrors.BadRequest("auction requires a positive minimum bid")
		}
		if input.AuctionEndDate == nil || !input.AuctionEndDate.After(time.Now()) {
			return nil, domainerrors.BadRequest("auction end date must be in the future")
		}
		product.IsAuction = true
		product.MinimumBid = minimumBid
		product.AuctionEndDate = input.AuctionEndDate

		if input.BuyNowPrice != "" {
			buyNow, err := decimal.NewFromString(input.BuyNowPrice)
			if err != nil || buyNow.LessThan(minimumBid) {
				return nil, domainerrors.BadRequest("buy now price must be at least the minimum bid")
			}
			product.BuyNowPrice = &buyNow
		}
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct gets a single listing
func (u *ProductUsecase) GetProduct(ctx context.Context, id uuid.UUID) (*entities.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// UpdateProduct applies partial edits to the seller's own listing.
// Auction terms are immutable once bids exist.
func (u *ProductUsecase) UpdateProduct(ctx context.Context, actorID, productID uuid.UUID, input *entities.UpdateProductInput) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != actorID {
		return nil, domainerrors.Forbidden("not the listing owner")
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Specs != nil {
		product.Specs = *input.Specs
	}
	if input.Price != nil {
		if product.IsAuction && product.BidCount > 0 {
			return nil, domainerrors.Conflict("cannot reprice an auction with bids")
		}
		price, err := decimal.NewFromString(*input.Price)
		if err != nil || price.IsNegative() {
			return nil, domainerrors.BadRequest("invalid price")
		}
		product.Price = price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, domainerrors.BadRequest("invalid stock")
		}
		product.Stock = *input.Stock
	}

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DelistProduct soft-removes a listing from the catalog
func (u *ProductUsecase) DelistProduct(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, productID uuid.UUID) error {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product.SellerID != actorID && actorRole != entities.RoleAdmin {
		return domainerrors.Forbidden("not the listing owner")
	}
	return u.productRepo.UpdateStatus(ctx, productID, entities.ProductStatusDelisted)
}

// ListProducts returns listings matching the filter
func (u *ProductUsecase) ListProducts(ctx context.Context, filter entities.ProductFilter, limit, offset int) ([]*entities.Product, int, error) {
	return u.productRepo.List(ctx, filter, limit, offset)
}

// ListCategories returns all categories
func (u *ProductUsecase) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	return u.categoryRepo.List(ctx)
}
