package controllers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

const maxGalleryImages = 10

// AdminProductController handles admin product CRUD including media.
type AdminProductController struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	reviews    repository.ReviewRepository
	media      *utils.MediaStore
}

// NewAdminProductController creates a new AdminProductController.
func NewAdminProductController(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	reviews repository.ReviewRepository,
	media *utils.MediaStore,
) *AdminProductController {
	return &AdminProductController{
		products:   products,
		categories: categories,
		reviews:    reviews,
		media:      media,
	}
}

// GetProductsCount returns the total number of products.
func (ac *AdminProductController) GetProductsCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := ac.products.Count(ctx)
	if err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Could not count products!")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// GetProducts lists products for the admin dashboard: paginated, with
// reviews and rating stripped, plus paging metadata.
func (ac *AdminProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	products, err := ac.products.List(ctx, repository.ProductQuery{
		Page: page,
		Omit: []string{"reviews", "rating"},
	})
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if len(products) == 0 {
		utils.WriteMessage(w, http.StatusNotFound, "Products not found")
		return
	}

	total, err := ac.products.Count(ctx)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products":      products,
		"currentPage":   page,
		"totalPages":    int(math.Ceil(float64(total) / float64(repository.PageSize))),
		"totalProducts": total,
	})
}

// AddProduct creates a product from a multipart form: one required "image",
// up to ten gallery "images", and the product fields as form values. The
// target category must exist and must not be flagged for deletion.
func (ac *AdminProductController) AddProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	categoryID, err := primitive.ObjectIDFromHex(r.FormValue("category"))
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	category, err := ac.categories.FindByID(ctx, categoryID)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Category not found")
		return
	}
	if category.MarkedForDeletion {
		utils.WriteMessage(w, http.StatusNotFound, "Category marked for deletion, you can not add product to it")
		return
	}

	imageURL, err := ac.media.SaveImage(r, "image")
	if err != nil {
		if errors.Is(err, utils.ErrNoFile) {
			utils.WriteMessage(w, http.StatusNotFound, "No File Found")
			return
		}
		writeUploadError(w, err)
		return
	}
	gallery, err := ac.media.SaveImages(r, "images", maxGalleryImages)
	if err != nil {
		writeUploadError(w, err)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	countInStock, _ := strconv.Atoi(r.FormValue("countInStock"))

	product := &models.Product{
		Name:              r.FormValue("name"),
		Description:       r.FormValue("description"),
		Price:             price,
		Image:             imageURL,
		Images:            gallery,
		Colours:           r.MultipartForm.Value["colours"],
		Sizes:             r.MultipartForm.Value["sizes"],
		CategoryID:        categoryID,
		GenderAgeCategory: strings.ToLower(r.FormValue("genderAgeCategory")),
		CountInStock:      countInStock,
		DateAdded:         time.Now(),
	}
	if err := ac.products.Create(ctx, product); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Could not create product!")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, product)
}

// EditProduct updates product fields. A multipart request may replace the
// main image and append gallery images, capped at ten in total; a category
// change is checked against the same category rules as creation.
func (ac *AdminProductController) EditProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	product, err := ac.products.FindByID(ctx, id)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Product not found")
		return
	}

	update := *product
	if rawCategory := r.FormValue("category"); rawCategory != "" {
		categoryID, err := primitive.ObjectIDFromHex(rawCategory)
		if err != nil {
			utils.WriteMessage(w, http.StatusNotFound, "Category not found")
			return
		}
		category, err := ac.categories.FindByID(ctx, categoryID)
		if err != nil {
			utils.WriteMessage(w, http.StatusNotFound, "Category not found")
			return
		}
		if category.MarkedForDeletion {
			utils.WriteMessage(w, http.StatusNotFound, "Category marked for deletion, you can not add product to it")
			return
		}
		update.CategoryID = categoryID
	}

	if name := r.FormValue("name"); name != "" {
		update.Name = name
	}
	if description := r.FormValue("description"); description != "" {
		update.Description = description
	}
	if raw := r.FormValue("price"); raw != "" {
		if price, err := strconv.ParseFloat(raw, 64); err == nil {
			update.Price = price
		}
	}
	if raw := r.FormValue("countInStock"); raw != "" {
		if count, err := strconv.Atoi(raw); err == nil {
			update.CountInStock = count
		}
	}
	if gender := r.FormValue("genderAgeCategory"); gender != "" {
		update.GenderAgeCategory = strings.ToLower(gender)
	}

	if isMultipart(r) {
		// A full gallery rejects further uploads rather than dropping them.
		limit := maxGalleryImages - len(product.Images)
		if limit < 0 {
			limit = 0
		}
		gallery, err := ac.media.SaveImages(r, "images", limit)
		if err != nil {
			writeUploadError(w, err)
			return
		}
		update.Images = append(update.Images, gallery...)
		imageURL, err := ac.media.SaveImage(r, "image")
		if err != nil && !errors.Is(err, utils.ErrNoFile) {
			writeUploadError(w, err)
			return
		}
		if imageURL != "" {
			update.Image = imageURL
		}
	}

	updated, err := ac.products.Update(ctx, id, &update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

// DeleteProductImages removes gallery images by URL, tolerating files that
// are already gone, and pulls the URLs off the product document.
func (ac *AdminProductController) DeleteProductImages(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	var req struct {
		DeletedImageURLs []string `json:"deletedImageUrls"`
	}
	if err := decodeJSON(r, &req); err != nil || req.DeletedImageURLs == nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// Confirm the product exists before touching any files on disk.
	if _, err := ac.products.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	if err := ac.media.DeleteImages(req.DeletedImageURLs, true); err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Failed to delete images")
		return
	}

	product, err := ac.products.PullImages(ctx, id, req.DeletedImageURLs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":         "Images deleted successfully",
		"remainingImages": product.Images,
	})
}

// DeleteProduct removes a product, its uploaded image files and its reviews.
func (ac *AdminProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid Product")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()
	product, err := ac.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Product not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	if product.Image != "" || len(product.Images) > 0 {
		if err := ac.media.DeleteImages(append(product.Images, product.Image), false); err != nil {
			utils.WriteMessage(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if err := ac.reviews.DeleteByIDs(ctx, product.Reviews); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.products.Delete(ctx, id); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	utils.WriteMessage(w, http.StatusOK, "Product deleted successfully")
}

// isMultipart reports whether the request carries a multipart form.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
