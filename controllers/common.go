package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

// decodeJSON decodes a JSON request body into v.
func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeUploadError surfaces a media intake failure with the upload library's
// error code and field name; anything else is an internal error.
func writeUploadError(w http.ResponseWriter, err error) {
	var ue *utils.UploadError
	if errors.As(err, &ue) {
		utils.WriteError(w, http.StatusInternalServerError, ue.Code, ue.Error())
		return
	}
	utils.WriteInternalError(w, err)
}

// findUserByHexID resolves a hex object id string to a user document.
func findUserByHexID(ctx context.Context, users repository.UserRepository, hexID string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, err
	}
	return users.FindByID(ctx, id)
}
