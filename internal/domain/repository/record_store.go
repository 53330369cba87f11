// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"
)

var (
	// ErrRecordNotFound is returned when no record exists under the requested key.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordExists is returned by Create when the key is already taken.
	ErrRecordExists = errors.New("record already exists")
)

// Record is a stored document: its key within a collection and its top-level fields.
type Record struct {
	ID     string
	Fields map[string]any
}

// RecordStore is key/value document access by collection and document id.
// It carries no business rules.
type RecordStore interface {
	// NewID allocates a fresh document id in collection without writing anything.
	NewID(collection string) string

	// Create writes a new record. An empty id lets the store allocate one.
	// It returns the key the record was written under.
	Create(ctx context.Context, collection, id string, fields map[string]any) (string, error)

	// Get returns the record or ErrRecordNotFound.
	Get(ctx context.Context, collection, id string) (*Record, error)

	// Query returns every record whose field equals value, in no particular order.
	Query(ctx context.Context, collection, field string, value any) ([]*Record, error)

	// List returns every record of a collection, in no particular order.
	List(ctx context.Context, collection string) ([]*Record, error)

	// Merge shallow-merges partial into an existing record. Keys absent from
	// partial are left untouched. Returns ErrRecordNotFound for a missing record.
	Merge(ctx context.Context, collection, id string, partial map[string]any) error

	// RunInTransaction runs fn atomically. Every read inside fn must happen
	// before the first write. If fn returns an error nothing is written.
	RunInTransaction(ctx context.Context, fn func(tx RecordTx) error) error
}

// RecordTx is the view of the store inside a transaction.
type RecordTx interface {
	Get(collection, id string) (*Record, error)
	Create(collection, id string, fields map[string]any) error
}
