package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/middleware"
	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

// ReviewController handles product reviews.
type ReviewController struct {
	products repository.ProductRepository
	reviews  repository.ReviewRepository
	users    repository.UserRepository
}

// NewReviewController creates a new ReviewController.
func NewReviewController(products repository.ProductRepository, reviews repository.ReviewRepository, users repository.UserRepository) *ReviewController {
	return &ReviewController{products: products, reviews: reviews, users: users}
}

// LeaveReview stores a review, attaches it to the product and recomputes the
// product's rating and review count.
func (rc *ReviewController) LeaveReview(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	var req struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, ok := middleware.ClaimsFromRequest(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Authentication Error", "Missing credentials")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	product, err := rc.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	user, err := findUserByHexID(ctx, rc.users, claims.ID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}

	review := &models.Review{
		UserID:   user.ID,
		UserName: user.Name,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Date:     time.Now(),
	}
	if err := rc.reviews.Create(ctx, review); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	rating, count, err := rc.recomputeRating(ctx, product, review)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := rc.products.AttachReview(ctx, product.ID, review.ID, rating, count); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, review)
}

// GetProductReviews lists all reviews of a product.
func (rc *ReviewController) GetProductReviews(w http.ResponseWriter, r *http.Request) {
	productID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	product, err := rc.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	reviews, err := rc.reviews.FindByIDs(ctx, product.Reviews)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}

// recomputeRating averages the existing reviews plus the new one, rounded to
// one decimal place.
func (rc *ReviewController) recomputeRating(ctx context.Context, product *models.Product, newReview *models.Review) (float64, int, error) {
	existing, err := rc.reviews.FindByIDs(ctx, product.Reviews)
	if err != nil {
		return 0, 0, err
	}

	total := newReview.Rating
	for _, rev := range existing {
		total += rev.Rating
	}
	count := len(existing) + 1
	rating := math.Round(total/float64(count)*10) / 10
	return rating, count, nil
}
