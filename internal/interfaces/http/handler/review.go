package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
)

// ReviewHandler handles product review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *catalogapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *catalogapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// List returns the approved reviews for a product
func (h *ReviewHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	reviews, err := h.reviewService.ListForProduct(c.Request.Context(), c.Param("slug"), page, pageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reviews)
}

// Create files a review for a product the caller has bought
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req catalogapp.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.InvalidRequest(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), userID, c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, review)
}

// Approve publishes a pending review
func (h *ReviewHandler) Approve(c *gin.Context) {
	reviewID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Approve(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}

// Reject hides a review
func (h *ReviewHandler) Reject(c *gin.Context) {
	reviewID, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	review, err := h.reviewService.Reject(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, review)
}
