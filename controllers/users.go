package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

// UserController handles the public user endpoints.
type UserController struct {
	users repository.UserRepository
}

// NewUserController creates a new UserController.
func NewUserController(users repository.UserRepository) *UserController {
	return &UserController{users: users}
}

// GetUsers lists all users with the directory projection.
func (uc *UserController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	users, err := uc.users.List(ctx)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

// GetUserByID returns a single user with sensitive fields stripped.
func (uc *UserController) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	user.PasswordHash = ""
	user.Cart = nil
	utils.WriteJSON(w, http.StatusOK, user)
}

// UpdateUser updates the profile fields a user may change themselves.
func (uc *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User not found")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := uc.users.UpdateProfile(ctx, id, req.Name, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.WriteMessage(w, http.StatusNotFound, "User not found")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	user.PasswordHash = ""
	user.Cart = nil
	utils.WriteJSON(w, http.StatusOK, user)
}
