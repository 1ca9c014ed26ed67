package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/models"
)

func newOrderRouter(orders *fakeOrderRepo, orderItems *fakeIDSetRepo) *mux.Router {
	ctrl := NewAdminOrderController(orders, orderItems)
	router := mux.NewRouter()
	router.HandleFunc("/admin/orders", ctrl.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/admin/orders/count", ctrl.GetOrdersCount).Methods(http.MethodGet)
	router.HandleFunc("/admin/orders/{id}", ctrl.ChangeOrderStatus).Methods(http.MethodPut)
	router.HandleFunc("/admin/orders/{id}", ctrl.DeleteOrder).Methods(http.MethodDelete)
	return router
}

func putStatus(router *mux.Router, id string, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"status": status})
	req := httptest.NewRequest(http.MethodPut, "/admin/orders/"+id, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestChangeOrderStatusRejectsPendingToDelivered(t *testing.T) {
	orders := newFakeOrderRepo()
	id := orders.add(models.Order{Status: models.StatusPending})
	router := newOrderRouter(orders, newFakeIDSetRepo())

	rec := putStatus(router, id.Hex(), string(models.StatusDelivered))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "pending to delivered")

	stored, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestChangeOrderStatusRejectsUnknownStatus(t *testing.T) {
	orders := newFakeOrderRepo()
	id := orders.add(models.Order{Status: models.StatusPending})
	router := newOrderRouter(orders, newFakeIDSetRepo())

	rec := putStatus(router, id.Hex(), "teleported")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChangeOrderStatusUnknownOrder(t *testing.T) {
	router := newOrderRouter(newFakeOrderRepo(), newFakeIDSetRepo())

	rec := putStatus(router, primitive.NewObjectID().Hex(), string(models.StatusShipped))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChangeOrderStatusRecordsHistoryOncePerState(t *testing.T) {
	orders := newFakeOrderRepo()
	id := orders.add(models.Order{Status: models.StatusPending})
	router := newOrderRouter(orders, newFakeIDSetRepo())

	rec := putStatus(router, id.Hex(), string(models.StatusProcessing))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = putStatus(router, id.Hex(), string(models.StatusShipped))
	require.Equal(t, http.StatusOK, rec.Code)

	// Back and forth between two states must not duplicate history entries.
	rec = putStatus(router, id.Hex(), string(models.StatusProcessing))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = putStatus(router, id.Hex(), string(models.StatusShipped))
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := orders.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.Equal(t, []models.OrderStatus{
		models.StatusPending,
		models.StatusProcessing,
		models.StatusShipped,
	}, stored.StatusHistory)
}

func TestDeleteOrderRemovesOrderItems(t *testing.T) {
	orders := newFakeOrderRepo()
	orderItems := newFakeIDSetRepo()
	itemA, itemB := orderItems.add(), orderItems.add()
	id := orders.add(models.Order{
		Status:     models.StatusPending,
		OrderItems: []primitive.ObjectID{itemA, itemB},
	})
	router := newOrderRouter(orders, orderItems)

	req := httptest.NewRequest(http.MethodDelete, "/admin/orders/"+id.Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	_, err := orders.FindByID(context.Background(), id)
	assert.Error(t, err)
	assert.Empty(t, orderItems.ids)
}

func TestDeleteOrderUnknownOrder(t *testing.T) {
	router := newOrderRouter(newFakeOrderRepo(), newFakeIDSetRepo())

	req := httptest.NewRequest(http.MethodDelete, "/admin/orders/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
