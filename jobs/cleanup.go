// Package jobs holds the scheduled background work.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zohaib089/shooper-be/repository"
)

// CleanupSchedule runs the sweep nightly at midnight.
const CleanupSchedule = "0 0 * * *"

// CategoryCleanup permanently removes categories that were flagged for
// deletion once no products reference them. Single-process and best-effort:
// per-category failures are logged and skipped.
type CategoryCleanup struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryCleanup creates the sweep job.
func NewCategoryCleanup(categories repository.CategoryRepository, products repository.ProductRepository) *CategoryCleanup {
	return &CategoryCleanup{categories: categories, products: products}
}

// Run implements cron.Job.
func (j *CategoryCleanup) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	j.Sweep(ctx)
}

// Sweep executes a single pass.
func (j *CategoryCleanup) Sweep(ctx context.Context) {
	categories, err := j.categories.ListMarkedForDeletion(ctx)
	if err != nil {
		log.Printf("category cleanup: listing flagged categories: %v", err)
		return
	}

	for _, category := range categories {
		count, err := j.products.CountInCategory(ctx, category.ID)
		if err != nil {
			log.Printf("category cleanup: counting products of %s: %v", category.ID.Hex(), err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := j.categories.Delete(ctx, category.ID); err != nil {
			log.Printf("category cleanup: deleting %s: %v", category.ID.Hex(), err)
		}
	}
}

// Schedule registers the job on the given cron runner.
func Schedule(c *cron.Cron, job *CategoryCleanup) error {
	_, err := c.AddJob(CleanupSchedule, job)
	return err
}
