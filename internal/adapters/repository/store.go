// Package repository defines the saved tariff store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/tariff/internal/domain/tariff"
)

// Record is a saved tariff sheet with its evaluation at save time.
type Record struct {
	ID         string            `json:"id"`
	Athlete    string            `json:"athlete"`
	Sheet      tariff.Sheet      `json:"sheet"`
	Evaluation tariff.Evaluation `json:"evaluation"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Store provides read/write access to saved tariffs.
type Store interface {
	// Save inserts rec when rec.ID is empty and returns it with a fresh id.
	// Otherwise it replaces the stored record (last write wins).
	// Returns ErrNotFound if rec.ID is unknown.
	Save(ctx context.Context, rec Record) (Record, error)

	// Get returns the record stored under id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (Record, error)

	// List returns records of athlete, newest first. An empty athlete lists all.
	List(ctx context.Context, athlete string) ([]Record, error)

	// Delete removes the record stored under id.
	Delete(ctx context.Context, id string) error

	// Count returns the number of saved records.
	Count(ctx context.Context) int
}
