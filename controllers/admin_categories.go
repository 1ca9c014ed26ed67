package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

// AdminCategoryController handles admin category CRUD.
type AdminCategoryController struct {
	categories repository.CategoryRepository
	media      *utils.MediaStore
}

// NewAdminCategoryController creates a new AdminCategoryController.
func NewAdminCategoryController(categories repository.CategoryRepository, media *utils.MediaStore) *AdminCategoryController {
	return &AdminCategoryController{categories: categories, media: media}
}

// CreateCategory stores a new category; its image arrives as the multipart
// field "image".
func (ac *AdminCategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	imageURL, err := ac.media.SaveImage(r, "image")
	if err != nil {
		if errors.Is(err, utils.ErrNoFile) {
			utils.WriteMessage(w, http.StatusNotFound, "No File Found")
			return
		}
		writeUploadError(w, err)
		return
	}

	category := &models.Category{
		Name:   r.FormValue("name"),
		Colour: r.FormValue("colour"),
		Image:  imageURL,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := ac.categories.Create(ctx, category); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to add Category")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category Added Successfully",
		"category": category,
	})
}

// UpdateCategory replaces the mutable category fields.
func (ac *AdminCategoryController) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Category Not Found")
		return
	}

	var req struct {
		Name   string `json:"name"`
		Colour string `json:"colour"`
		Image  string `json:"image"`
	}
	if err := decodeJSON(r, &req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	category, err := ac.categories.Update(ctx, id, req.Name, req.Colour, req.Image)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Category Not Found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category Updated Successfully",
		"category": category,
	})
}

// DeleteCategory soft-deletes: the category is only flagged, and the nightly
// sweep removes it once no products reference it.
func (ac *AdminCategoryController) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Category Not Found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := ac.categories.MarkForDeletion(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Category Not Found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
