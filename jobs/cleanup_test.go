package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/zohaib089/shooper-be/models"
	"github.com/zohaib089/shooper-be/repository"
)

type stubCategoryRepo struct {
	categories map[primitive.ObjectID]*models.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[primitive.ObjectID]*models.Category)}
}

func (s *stubCategoryRepo) add(markedForDeletion bool) primitive.ObjectID {
	id := primitive.NewObjectID()
	s.categories[id] = &models.Category{ID: id, MarkedForDeletion: markedForDeletion}
	return id
}

func (s *stubCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.ID = primitive.NewObjectID()
	s.categories[category.ID] = category
	return nil
}

func (s *stubCategoryRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Category, error) {
	if c, ok := s.categories[id]; ok {
		return c, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubCategoryRepo) List(_ context.Context) ([]models.Category, error) { return nil, nil }

func (s *stubCategoryRepo) Update(_ context.Context, _ primitive.ObjectID, _, _, _ string) (*models.Category, error) {
	return nil, repository.ErrNotFound
}

func (s *stubCategoryRepo) MarkForDeletion(_ context.Context, id primitive.ObjectID) error {
	c, ok := s.categories[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.MarkedForDeletion = true
	return nil
}

func (s *stubCategoryRepo) ListMarkedForDeletion(_ context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, c := range s.categories {
		if c.MarkedForDeletion {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCategoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.categories, id)
	return nil
}

type stubProductRepo struct {
	countsByCategory map[primitive.ObjectID]int64
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{countsByCategory: make(map[primitive.ObjectID]int64)}
}

func (s *stubProductRepo) Create(_ context.Context, _ *models.Product) error { return nil }
func (s *stubProductRepo) FindByID(_ context.Context, _ primitive.ObjectID) (*models.Product, error) {
	return nil, repository.ErrNotFound
}
func (s *stubProductRepo) List(_ context.Context, _ repository.ProductQuery) ([]models.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Count(_ context.Context) (int64, error) { return 0, nil }
func (s *stubProductRepo) CountInCategory(_ context.Context, categoryID primitive.ObjectID) (int64, error) {
	return s.countsByCategory[categoryID], nil
}
func (s *stubProductRepo) Update(_ context.Context, _ primitive.ObjectID, _ *models.Product) (*models.Product, error) {
	return nil, repository.ErrNotFound
}
func (s *stubProductRepo) AttachReview(_ context.Context, _, _ primitive.ObjectID, _ float64, _ int) error {
	return nil
}
func (s *stubProductRepo) PullImages(_ context.Context, _ primitive.ObjectID, _ []string) (*models.Product, error) {
	return nil, repository.ErrNotFound
}
func (s *stubProductRepo) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }

func TestSweepDeletesOnlyEmptyFlaggedCategories(t *testing.T) {
	categories := newStubCategoryRepo()
	products := newStubProductRepo()

	emptyFlagged := categories.add(true)
	busyFlagged := categories.add(true)
	unflagged := categories.add(false)
	products.countsByCategory[busyFlagged] = 3

	NewCategoryCleanup(categories, products).Sweep(context.Background())

	_, err := categories.FindByID(context.Background(), emptyFlagged)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = categories.FindByID(context.Background(), busyFlagged)
	assert.NoError(t, err)
	_, err = categories.FindByID(context.Background(), unflagged)
	assert.NoError(t, err)
}

func TestSweepPurgesCategoryOnceProductsAreGone(t *testing.T) {
	categories := newStubCategoryRepo()
	products := newStubProductRepo()

	flagged := categories.add(true)
	products.countsByCategory[flagged] = 1

	job := NewCategoryCleanup(categories, products)
	job.Sweep(context.Background())
	_, err := categories.FindByID(context.Background(), flagged)
	require.NoError(t, err)

	// Next night, the last product has been removed.
	products.countsByCategory[flagged] = 0
	job.Sweep(context.Background())
	_, err = categories.FindByID(context.Background(), flagged)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSweepWithNothingFlagged(t *testing.T) {
	categories := newStubCategoryRepo()
	categories.add(false)

	NewCategoryCleanup(categories, newStubProductRepo()).Sweep(context.Background())

	assert.Len(t, categories.categories, 1)
}
