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

// AdminOrderController handles the admin order endpoints.
type AdminOrderController struct {
	orders     repository.OrderRepository
	orderItems repository.OrderItemRepository
}

// NewAdminOrderController creates a new AdminOrderController.
func NewAdminOrderController(orders repository.OrderRepository, orderItems repository.OrderItemRepository) *AdminOrderController {
	return &AdminOrderController{orders: orders, orderItems: orderItems}
}

// GetOrders lists all orders, newest first, without status history.
func (ac *AdminOrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	orders, err := ac.orders.List(ctx)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

// GetOrdersCount returns the total number of orders.
func (ac *AdminOrderController) GetOrdersCount(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := ac.orders.Count(ctx)
	if err != nil {
		utils.WriteMessage(w, http.StatusInternalServerError, "Could not count orders!")
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// ChangeOrderStatus moves an order to a new status. An order may never jump
// straight from pending to delivered; every other transition is allowed and
// records the prior status in the history once per distinct state.
func (ac *AdminOrderController) ChangeOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil || !req.Status.Valid() {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	order, err := ac.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	if order.Status == models.StatusPending && req.Status == models.StatusDelivered {
		utils.WriteMessage(w, http.StatusBadRequest, "Order cannot be changed directly from pending to delivered")
		return
	}

	history := order.StatusHistory
	if !containsStatus(history, order.Status) {
		history = append(history, order.Status)
	}

	if err := ac.orders.SetStatus(ctx, id, req.Status, history); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	order.Status = req.Status
	order.StatusHistory = history
	utils.WriteJSON(w, http.StatusOK, order)
}

// DeleteOrder removes an order together with its order items.
func (ac *AdminOrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "Order not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	order, err := ac.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "Order not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	if err := ac.orders.Delete(ctx, id); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.orderItems.DeleteByIDs(ctx, order.OrderItems); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func containsStatus(history []models.OrderStatus, status models.OrderStatus) bool {
	for _, s := range history {
		if s == status {
			return true
		}
	}
	return false
}
