package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

const (
	newArrivalsWindow = 14 * 24 * time.Hour
	popularMinRating  = 4.5
)

// ProductController handles public catalog reads.
type ProductController struct {
	products repository.ProductRepository
}

// NewProductController creates a new ProductController.
func NewProductController(products repository.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

// GetProducts lists products with pagination and the optional criteria and
// category filters. Gallery, reviews and sizes are stripped from the listing.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := repository.ProductQuery{
		Page: pageParam(r),
		Omit: []string{"images", "reviews", "sizes"},
	}
	if category := r.URL.Query().Get("category"); category != "" {
		id, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			utils.WriteMessage(w, http.StatusBadRequest, "Invalid category")
			return
		}
		query.Category = &id
	}
	switch r.URL.Query().Get("criteria") {
	case "newArrivals":
		since := time.Now().Add(-newArrivalsWindow)
		query.AddedSince = &since
	case "popular":
		query.MinRating = popularMinRating
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	products, err := pc.products.List(ctx, query)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// SearchProducts runs a text search with optional category and
// gender/age-category filters.
func (pc *ProductController) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := repository.ProductQuery{
		Page:              pageParam(r),
		Search:            r.URL.Query().Get("q"),
		GenderAgeCategory: strings.ToLower(r.URL.Query().Get("genderAgeCategory")),
	}
	if category := r.URL.Query().Get("category"); category != "" {
		id, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			utils.WriteMessage(w, http.StatusBadRequest, "Invalid category")
			return
		}
		query.Category = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	products, err := pc.products.List(ctx, query)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// GetProductByID returns a single product, reviews stripped.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	product, err := pc.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	product.Reviews = nil
	utils.WriteJSON(w, http.StatusOK, product)
}

// pageParam reads the 1-based page query parameter.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
