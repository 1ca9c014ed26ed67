package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

// CategoryController handles public category reads.
type CategoryController struct {
	categories repository.CategoryRepository
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(categories repository.CategoryRepository) *CategoryController {
	return &CategoryController{categories: categories}
}

// GetCategories lists all categories.
func (cc *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := cc.categories.List(ctx)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}

// GetCategoryByID returns a single category.
func (cc *CategoryController) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Category Not Found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	category, err := cc.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Category Not Found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, category)
}
