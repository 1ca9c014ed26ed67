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

// AdminUserController handles the admin user endpoints.
type AdminUserController struct {
	users        repository.UserRepository
	orders       repository.OrderRepository
	orderItems   repository.OrderItemRepository
	cartProducts repository.CartProductRepository
	tokens       repository.TokenRepository
}

// NewAdminUserController creates a new AdminUserController.
func NewAdminUserController(
	users repository.UserRepository,
	orders repository.OrderRepository,
	orderItems repository.OrderItemRepository,
	cartProducts repository.CartProductRepository,
	tokens repository.TokenRepository,
) *AdminUserController {
	return &AdminUserController{
		users:        users,
		orders:       orders,
		orderItems:   orderItems,
		cartProducts: cartProducts,
		tokens:       tokens,
	}
}

// GetUsersCount returns the total number of users.
func (ac *AdminUserController) GetUsersCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := ac.users.Count(ctx)
	if err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Could not get user count")
		return
	}
	utils.WriteJSON(w, http.StatusOK, count)
}

// DeleteUser removes a user and everything attached to them: their orders,
// those orders' items, their cart items and their token pair. The steps are
// not atomic; a failing step aborts and may leave earlier deletions in place.
func (ac *AdminUserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	user, err := ac.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	orders, err := ac.orders.FindByUser(ctx, userID)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	var orderItemIDs []primitive.ObjectID
	for _, order := range orders {
		orderItemIDs = append(orderItemIDs, order.OrderItems...)
	}

	if err := ac.orders.DeleteByUser(ctx, userID); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.orderItems.DeleteByIDs(ctx, orderItemIDs); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.cartProducts.DeleteByIDs(ctx, user.Cart); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.users.ClearCart(ctx, userID); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.tokens.DeleteByUserID(ctx, userID); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.users.Delete(ctx, userID); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
