package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"voltbay.backend/internal/domain/entities"
	domainerrors "voltbay.backend/internal/domain/errors"
	"voltbay.backend/internal/interfaces/http/middleware"
	"voltbay.backend/internal/interfaces/http/response"
	"voltbay.backend/internal/usecases"
	"voltbay.backend/pkg/utils"
)

type enterpriseService interface {
	CreateListing(ctx context.Context, vendorID uuid.UUID, input *entities.CreateEnterpriseListingInput) (*entities.EnterpriseListing, error)
	ListListings(ctx context.Context, activeOnly bool, limit, offset int) ([]*entities.EnterpriseListing, int, error)
	DeactivateListing(ctx context.Context, vendorID uuid.UUID, listingID uuid.UUID) error
	CreateQuoteRequest(ctx context.Context, buyerID uuid.UUID, input *entities.CreateQuoteRequestInput) (*entities.QuoteRequest, error)
	GetQuoteRequest(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID) (*entities.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context, actorID uuid.UUID, actorRole entities.Role, limit, offset int) ([]*entities.QuoteRequest, int, error)
	RespondToQuote(ctx context.Context, vendorID uuid.UUID, requestID uuid.UUID, input *entities.RespondQuoteInput) (*entities.QuoteRequest, error)
	ResolveQuote(ctx context.Context, buyerID uuid.UUID, requestID uuid.UUID, accept bool) (*entities.QuoteRequest, error)
}

// EnterpriseHandler handles B2B listing and quote endpoints
type EnterpriseHandler struct {
	enterpriseUsecase enterpriseService
}

// NewEnterpriseHandler creates a new enterprise handler
func NewEnterpriseHandler(enterpriseUsecase *usecases.EnterpriseUsecase) *EnterpriseHandler {
	return &EnterpriseHandler{enterpriseUsecase: enterpriseUsecase}
}

// CreateListing creates a vendor's bulk listing
// POST /api/v1/enterprise/listings
func (h *EnterpriseHandler) CreateListing(c *gin.Context) {
	var input entities.CreateEnterpriseListingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	listing, err := h.enterpriseUsecase.CreateListing(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"listing": listing})
}

// ListListings returns active bulk listings
// GET /api/v1/enterprise/listings
func (h *EnterpriseHandler) ListListings(c *gin.Context) {
	activeOnly := c.Query("all") != "true"
	params := paginationFromQuery(c)

	listings, total, err := h.enterpriseUsecase.ListListings(c.Request.Context(), activeOnly, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"listings":   listings,
		"pagination": utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// DeactivateListing removes a listing from the public list
// DELETE /api/v1/enterprise/listings/:id
func (h *EnterpriseHandler) DeactivateListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid listing id"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	if err := h.enterpriseUsecase.DeactivateListing(c.Request.Context(), userID, listingID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "listing deactivated"})
}

// CreateQuoteRequest opens a quote request against a listing
// POST /api/v1/enterprise/quotes
func (h *EnterpriseHandler) CreateQuoteRequest(c *gin.Context) {
	var input entities.CreateQuoteRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	req, err := h.enterpriseUsecase.CreateQuoteRequest(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"quoteRequest": req})
}

// GetQuoteRequest returns one quote request visible to the caller
// GET /api/v1/enterprise/quotes/:id
func (h *EnterpriseHandler) GetQuoteRequest(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid quote request id"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	req, err := h.enterpriseUsecase.GetQuoteRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quoteRequest": req})
}

// ListQuoteRequests lists the caller's quote requests
// GET /api/v1/enterprise/quotes
func (h *EnterpriseHandler) ListQuoteRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}
	role, _ := middleware.GetUserRole(c)

	params := paginationFromQuery(c)
	reqs, total, err := h.enterpriseUsecase.ListQuoteRequests(c.Request.Context(), userID, role, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"quoteRequests": reqs,
		"pagination":    utils.CalculateMeta(int64(total), params.Page, params.Limit),
	})
}

// RespondToQuote records the vendor's priced response
// POST /api/v1/enterprise/quotes/:id/respond
func (h *EnterpriseHandler) RespondToQuote(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid quote request id"))
		return
	}

	var input entities.RespondQuoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	req, err := h.enterpriseUsecase.RespondToQuote(c.Request.Context(), userID, requestID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quoteRequest": req})
}

// ResolveQuote lets the buyer accept or reject a responded quote
// POST /api/v1/enterprise/quotes/:id/resolve
func (h *EnterpriseHandler) ResolveQuote(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid quote request id"))
		return
	}

	var input struct {
		Accept bool `json:"accept"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("user not authenticated"))
		return
	}

	req, err := h.enterpriseUsecase.ResolveQuote(c.Request.Context(), userID, requestID, input.Accept)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quoteRequest": req})
}
