package controllers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
)

// In-memory repository fakes backing the controller tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, models.User{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin})
	}
	return out, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name, email, phone string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Name, u.Email, u.Phone = name, email, phone
	clone := *u
	return &clone, nil
}

func (f *fakeUserRepo) SetResetOTP(_ context.Context, id primitive.ObjectID, otp int, expires time.Time) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetPasswordOTP = &otp
	u.ResetPasswordOTPExpires = &expires
	return nil
}

func (f *fakeUserRepo) ConfirmResetOTP(_ context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	sentinel := models.OTPConfirmedSentinel
	u.ResetPasswordOTP = &sentinel
	u.ResetPasswordOTPExpires = nil
	return nil
}

func (f *fakeUserRepo) ResetPassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetPasswordOTP = nil
	u.ResetPasswordOTPExpires = nil
	return nil
}

func (f *fakeUserRepo) ClearCart(_ context.Context, id primitive.ObjectID) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Cart = nil
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeTokenRepo struct {
	tokens map[primitive.ObjectID]*models.Token // keyed by user id
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[primitive.ObjectID]*models.Token)}
}

func (f *fakeTokenRepo) Upsert(_ context.Context, userID primitive.ObjectID, accessToken, refreshToken string) error {
	if t, ok := f.tokens[userID]; ok {
		t.AccessToken, t.RefreshToken = accessToken, refreshToken
		return nil
	}
	f.tokens[userID] = &models.Token{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		CreatedAt:    time.Now(),
	}
	return nil
}

func (f *fakeTokenRepo) FindByAccessToken(_ context.Context, accessToken string) (*models.Token, error) {
	for _, t := range f.tokens {
		if t.AccessToken == accessToken && t.RefreshToken != "" {
			clone := *t
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTokenRepo) UpdateAccessToken(_ context.Context, id primitive.ObjectID, accessToken string) error {
	for _, t := range f.tokens {
		if t.ID == id {
			t.AccessToken = accessToken
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeTokenRepo) DeleteByAccessToken(_ context.Context, accessToken string) error {
	for userID, t := range f.tokens {
		if t.AccessToken == accessToken {
			delete(f.tokens, userID)
			return nil
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	delete(f.tokens, userID)
	return nil
}

type fakeCategoryRepo struct {
	categories map[primitive.ObjectID]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[primitive.ObjectID]*models.Category)}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if category.Colour == "" {
		category.Colour = models.DefaultCategoryColour
	}
	category.ID = primitive.NewObjectID()
	clone := *category
	f.categories[category.ID] = &clone
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	if c, ok := f.categories[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCategoryRepo) List(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, id primitive.ObjectID, name, colour, image string) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Name, c.Colour = name, colour
	if image != "" {
		c.Image = image
	}
	clone := *c
	return &clone, nil
}

func (f *fakeCategoryRepo) MarkForDeletion(_ context.Context, id primitive.ObjectID) error {
	c, ok := f.categories[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.MarkedForDeletion = true
	return nil
}

func (f *fakeCategoryRepo) ListMarkedForDeletion(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.MarkedForDeletion {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.categories, id)
	return nil
}

type fakeProductRepo struct {
	products  map[primitive.ObjectID]*models.Product
	lastQuery repository.ProductQuery
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*models.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.DateAdded.IsZero() {
		product.DateAdded = time.Now()
	}
	product.ID = primitive.NewObjectID()
	clone := *product
	f.products[product.ID] = &clone
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context, q repository.ProductQuery) ([]models.Product, error) {
	f.lastQuery = q
	var out []models.Product
	for _, p := range f.products {
		if q.Category != nil && p.CategoryID != *q.Category {
			continue
		}
		if q.AddedSince != nil && p.DateAdded.Before(*q.AddedSince) {
			continue
		}
		if q.MinRating > 0 && p.Rating <= q.MinRating {
			continue
		}
		if q.GenderAgeCategory != "" && p.GenderAgeCategory != q.GenderAgeCategory {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) CountInCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id primitive.ObjectID, update *models.Product) (*models.Product, error) {
	if _, ok := f.products[id]; !ok {
		return nil, repository.ErrNotFound
	}
	clone := *update
	clone.ID = id
	f.products[id] = &clone
	result := clone
	return &result, nil
}

func (f *fakeProductRepo) AttachReview(_ context.Context, id, reviewID primitive.ObjectID, rating float64, numberOfReviews int) error {
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Reviews = append(p.Reviews, reviewID)
	p.Rating = rating
	p.NumberOfReviews = numberOfReviews
	return nil
}

func (f *fakeProductRepo) PullImages(_ context.Context, id primitive.ObjectID, urls []string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	remove := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		remove[u] = struct{}{}
	}
	var kept []string
	for _, img := range p.Images {
		if _, gone := remove[img]; !gone {
			kept = append(kept, img)
		}
	}
	p.Images = kept
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

type fakeReviewRepo struct {
	reviews map[primitive.ObjectID]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[primitive.ObjectID]*models.Review)}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	if review.Date.IsZero() {
		review.Date = time.Now()
	}
	review.ID = primitive.NewObjectID()
	clone := *review
	f.reviews[review.ID] = &clone
	return nil
}

func (f *fakeReviewRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Review, error) {
	out := []models.Review{}
	for _, id := range ids {
		if r, ok := f.reviews[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		delete(f.reviews, id)
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[primitive.ObjectID]*models.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (f *fakeOrderRepo) add(order models.Order) primitive.ObjectID {
	order.ID = primitive.NewObjectID()
	f.orders[order.ID] = &order
	return order.ID
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	if o, ok := f.orders[id]; ok {
		clone := *o
		return &clone, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeOrderRepo) List(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		clone := *o
		clone.StatusHistory = nil
		out = append(out, clone)
	}
	return out, nil
}

func (f *fakeOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) SetStatus(_ context.Context, id primitive.ObjectID, status models.OrderStatus, history []models.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	o.Status = status
	o.StatusHistory = history
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	for id, o := range f.orders {
		if o.UserID == userID {
			delete(f.orders, id)
		}
	}
	return nil
}

type fakeIDSetRepo struct {
	ids map[primitive.ObjectID]struct{}
}

func newFakeIDSetRepo() *fakeIDSetRepo {
	return &fakeIDSetRepo{ids: make(map[primitive.ObjectID]struct{})}
}

func (f *fakeIDSetRepo) add() primitive.ObjectID {
	id := primitive.NewObjectID()
	f.ids[id] = struct{}{}
	return id
}

func (f *fakeIDSetRepo) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) error {
	for _, id := range ids {
		delete(f.ids, id)
	}
	return nil
}

type fakeMailer struct {
	lastTo  string
	lastOTP int
	sent    int
}

func (f *fakeMailer) SendPasswordResetOTP(toEmail string, otp int) error {
	f.lastTo = toEmail
	f.lastOTP = otp
	f.sent++
	return nil
}
