// Package store provides persistence for built diagram graphs.
//
// The HTTP API stores every successfully built graph so clients can
// retrieve it later by ID. Two backends are provided: an in-memory
// store for tests and single-process deployments, and a MongoDB store
// for durable server deployments.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/docgraph/docgraph/pkg/diagram"
)

// Record is a stored graph with its build metadata.
type Record struct {
	ID        string               `json:"id" bson:"_id"`
	Kind      string               `json:"kind" bson:"kind"`
	GraphHash string               `json:"graph_hash" bson:"graph_hash"`
	Graph     *diagram.DiagramData `json:"graph" bson:"graph"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record with a fresh UUID and creation timestamp.
func NewRecord(kind, graphHash string, g *diagram.DiagramData) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		GraphHash: graphHash,
		Graph:     g,
		CreatedAt: time.Now().UTC(),
	}
}

// Store is the interface implemented by all graph stores.
type Store interface {
	// Put stores a record. An existing record with the same ID is replaced.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns an error with code
	// GRAPH_NOT_FOUND when the ID is unknown.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns the most recent records, newest first, up to limit.
	// A non-positive limit returns all records.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
