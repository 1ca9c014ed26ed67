package routes

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"github.com/zohaib089/shooper-be/controllers"
)

// Controllers bundles everything the router needs.
type Controllers struct {
	Auth            *controllers.AuthController
	Users           *controllers.UserController
	Categories      *controllers.CategoryController
	Products        *controllers.ProductController
	Reviews         *controllers.ReviewController
	AdminUsers      *controllers.AdminUserController
	AdminCategories *controllers.AdminCategoryController
	AdminProducts   *controllers.AdminProductController
	AdminOrders     *controllers.AdminOrderController
}

// RegisterRoutes sets up all the routes for the application under the API
// prefix, plus static serving of the uploads directory. The static mount
// mirrors uploadsDir so the URLs built by the media store resolve whatever
// directory is configured.
func RegisterRoutes(router *mux.Router, prefix, uploadsDir string, c Controllers) {
	api := router.PathPrefix(prefix).Subrouter()

	// Auth routes
	api.HandleFunc("/register", c.Auth.Register).Methods("POST")
	api.HandleFunc("/login", c.Auth.Login).Methods("POST")
	api.HandleFunc("/verify-token", c.Auth.VerifyToken).Methods("GET")
	api.HandleFunc("/logout", c.Auth.Logout).Methods("POST")
	api.HandleFunc("/forgot-password", c.Auth.ForgotPassword).Methods("POST")
	api.HandleFunc("/verify-otp", c.Auth.VerifyPasswordResetOTP).Methods("POST")
	api.HandleFunc("/reset-password", c.Auth.ResetPassword).Methods("POST")

	// User routes
	api.HandleFunc("/users", c.Users.GetUsers).Methods("GET")
	api.HandleFunc("/users/{id}", c.Users.GetUserByID).Methods("GET")
	api.HandleFunc("/users/{id}", c.Users.UpdateUser).Methods("PUT")

	// Category routes
	api.HandleFunc("/categories", c.Categories.GetCategories).Methods("GET")
	api.HandleFunc("/categories/{id}", c.Categories.GetCategoryByID).Methods("GET")

	// Product routes
	api.HandleFunc("/products", c.Products.GetProducts).Methods("GET")
	api.HandleFunc("/products/search", c.Products.SearchProducts).Methods("GET")
	api.HandleFunc("/products/{id}", c.Products.GetProductByID).Methods("GET")
	api.HandleFunc("/products/{id}/reviews", c.Reviews.LeaveReview).Methods("POST")
	api.HandleFunc("/products/{id}/reviews", c.Reviews.GetProductReviews).Methods("GET")

	// Admin routes; the auth guard enforces the admin claim on this prefix.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/users/count", c.AdminUsers.GetUsersCount).Methods("GET")
	admin.HandleFunc("/users/{id}", c.AdminUsers.DeleteUser).Methods("DELETE")

	admin.HandleFunc("/categories", c.AdminCategories.CreateCategory).Methods("POST")
	admin.HandleFunc("/categories/{id}", c.AdminCategories.UpdateCategory).Methods("PUT")
	admin.HandleFunc("/categories/{id}", c.AdminCategories.DeleteCategory).Methods("DELETE")

	admin.HandleFunc("/products/count", c.AdminProducts.GetProductsCount).Methods("GET")
	admin.HandleFunc("/products", c.AdminProducts.GetProducts).Methods("GET")
	admin.HandleFunc("/products", c.AdminProducts.AddProduct).Methods("POST")
	admin.HandleFunc("/products/{id}/images", c.AdminProducts.DeleteProductImages).Methods("DELETE")
	admin.HandleFunc("/products/{id}", c.AdminProducts.EditProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", c.AdminProducts.DeleteProduct).Methods("DELETE")

	admin.HandleFunc("/orders", c.AdminOrders.GetOrders).Methods("GET")
	admin.HandleFunc("/orders/count", c.AdminOrders.GetOrdersCount).Methods("GET")
	admin.HandleFunc("/orders/{id}", c.AdminOrders.ChangeOrderStatus).Methods("PUT")
	admin.HandleFunc("/orders/{id}", c.AdminOrders.DeleteOrder).Methods("DELETE")

	// Uploaded images are served straight off disk, mounted at the same
	// path the media store puts into their URLs.
	mount := "/" + strings.Trim(filepath.ToSlash(uploadsDir), "/") + "/"
	router.PathPrefix(mount).Handler(
		http.StripPrefix(mount, http.FileServer(http.Dir(uploadsDir))))
}
