package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/zohaib089/shooper-be/config"
	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
	"github.com/zohaib089/shooper-be/utils"
)

const otpTTL = 10 * time.Minute

// Mailer delivers the password-reset OTP. Satisfied by utils.EmailService.
type Mailer interface {
	SendPasswordResetOTP(toEmail string, otp int) error
}

// AuthController handles registration, login, logout and the password-reset
// OTP flow.
type AuthController struct {
	users         repository.UserRepository
	tokens        repository.TokenRepository
	email         Mailer
	accessSecret  []byte
	refreshSecret []byte
	validate      *validator.Validate
}

// NewAuthController creates a new AuthController.
func NewAuthController(cfg *config.Config, users repository.UserRepository, tokens repository.TokenRepository, email Mailer) *AuthController {
	v := validator.New()
	v.RegisterValidation("strongpassword", validateStrongPassword)
	return &AuthController{
		users:         users,
		tokens:        tokens,
		email:         email,
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		validate:      v,
	}
}

type registerRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8,strongpassword"`
	Phone      string `json:"phone" validate:"required,e164"`
	Street     string `json:"street"`
	Apartment  string `json:"apartment"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Register handles user registration; duplicate emails yield a conflict.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if messages := ac.validationMessages(req); len(messages) > 0 {
		utils.WriteValidationErrors(w, messages)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "user",
		Phone:        req.Phone,
		Street:       req.Street,
		Apartment:    req.Apartment,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := ac.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.WriteError(w, http.StatusConflict, "Authentication Error", "User with this Email already exists")
			return
		}
		utils.WriteInternalError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, user)
}

type loginResponse struct {
	models.User
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login verifies credentials, issues a token pair and upserts it, keeping at
// most one live pair per user.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := ac.users.FindByEmail(ctx, creds.Email)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User not found. Check your email and try again.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Incorrect password")
		return
	}

	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.IsAdmin, ac.accessSecret)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex(), user.IsAdmin, ac.refreshSecret)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.tokens.Upsert(ctx, user.ID, accessToken, refreshToken); err != nil {
		utils.WriteInternalError(w, err)
		return
	}

	user.PasswordHash = ""
	utils.WriteJSON(w, http.StatusOK, loginResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// VerifyToken reports whether the presented access token still maps to a
// stored pair with a live refresh token. The body is a bare boolean.
func (ac *AuthController) VerifyToken(w http.ResponseWriter, r *http.Request) {
	accessToken := bearerToken(r)
	if accessToken == "" {
		utils.WriteJSON(w, http.StatusOK, false)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	record, err := ac.tokens.FindByAccessToken(ctx, accessToken)
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, false)
		return
	}

	claims, err := utils.ParseToken(record.RefreshToken, ac.refreshSecret)
	if err != nil {
		utils.WriteJSON(w, http.StatusOK, false)
		return
	}
	if _, err := findUserByHexID(ctx, ac.users, claims.ID); err != nil {
		utils.WriteJSON(w, http.StatusOK, false)
		return
	}
	utils.WriteJSON(w, http.StatusOK, true)
}

// Logout deletes the stored token pair matching the presented access token.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	accessToken := bearerToken(r)
	if accessToken == "" {
		utils.WriteMessage(w, http.StatusUnauthorized, "No token provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	if err := ac.tokens.DeleteByAccessToken(ctx, accessToken); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Logged out successfully")
}

// ForgotPassword generates a 4-digit OTP valid for ten minutes and mails it.
func (ac *AuthController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User with this email does NOT exist!")
		return
	}

	otp := 1000 + rand.Intn(9000)
	if err := ac.users.SetResetOTP(ctx, user.ID, otp, time.Now().Add(otpTTL)); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.email.SendPasswordResetOTP(user.Email, otp); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Password reset OTP sent to your email")
}

// VerifyPasswordResetOTP checks the submitted OTP against the stored value
// and expiry, then replaces it with the confirmed sentinel.
func (ac *AuthController) VerifyPasswordResetOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string      `json:"email"`
		OTP   json.Number `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User with this email does NOT exist!")
		return
	}

	otp, err := req.OTP.Int64()
	if err != nil ||
		user.ResetPasswordOTP == nil || int64(*user.ResetPasswordOTP) != otp ||
		user.ResetPasswordOTPExpires == nil || time.Now().After(*user.ResetPasswordOTPExpires) {
		utils.WriteMessage(w, http.StatusUnauthorized, "Invalid or Expired OTP")
		return
	}

	if err := ac.users.ConfirmResetOTP(ctx, user.ID); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "OTP Verified")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword" validate:"required,min=8,strongpassword"`
}

// ResetPassword replaces the password, but only after OTP verification has
// stored the confirmed sentinel.
func (ac *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if messages := ac.validationMessages(req); len(messages) > 0 {
		utils.WriteValidationErrors(w, messages)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	user, err := ac.users.FindByEmail(ctx, req.Email)
	if err != nil {
		utils.WriteMessage(w, http.StatusNotFound, "User with this email does NOT exist!")
		return
	}

	if user.ResetPasswordOTP == nil || *user.ResetPasswordOTP != models.OTPConfirmedSentinel {
		utils.WriteMessage(w, http.StatusUnauthorized, "Confirm OTP before resetting password")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	if err := ac.users.ResetPassword(ctx, user.ID, string(hash)); err != nil {
		utils.WriteInternalError(w, err)
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Password reset successfully")
}

// validationMessages runs the validator and maps failures to the field-level
// messages the API returns.
func (ac *AuthController) validationMessages(req interface{}) []string {
	err := ac.validate.Struct(req)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return []string{err.Error()}
	}

	var messages []string
	for _, fe := range invalid {
		switch fe.Field() {
		case "Name":
			messages = append(messages, "Name is required")
		case "Email":
			messages = append(messages, "Please enter a valid email")
		case "Password", "NewPassword":
			if fe.Tag() == "min" || fe.Tag() == "required" {
				messages = append(messages, "Password must be at least 8 characters")
			} else {
				messages = append(messages, "Password must contain at least one uppercase, one lowercase, one number and one symbol")
			}
		case "Phone":
			messages = append(messages, "Please enter a valid phone number")
		default:
			messages = append(messages, fe.Error())
		}
	}
	return messages
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, symbol bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
