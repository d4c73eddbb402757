// Package store is the catalog and order data access layer. It owns the
// collection handles, translates flat filter parameters into Mongo queries,
// paginates list reads, maintains the dense slider ordering, and maps raw
// documents into transport-safe records.
package store

import (
	"sync"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	db     *mongo.Database
	logger zerolog.Logger

	// Serializes the multi-write slider ordering operations. The store has
	// no transaction around them, so two concurrent reorders could
	// interleave and corrupt the sequence.
	sliderMu sync.Mutex
}

// New builds a store around an already connected database. The caller owns
// the client lifecycle; the store is plain state and is safe for concurrent
// use.
func New(db *mongo.Database, logger zerolog.Logger) *Store {
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}
}

func (s *Store) products() *mongo.Collection   { return s.db.Collection("products") }
func (s *Store) categories() *mongo.Collection { return s.db.Collection("categories") }
func (s *Store) orders() *mongo.Collection     { return s.db.Collection("orders") }
func (s *Store) payments() *mongo.Collection   { return s.db.Collection("payments") }
func (s *Store) carts() *mongo.Collection      { return s.db.Collection("carts") }
func (s *Store) wishlists() *mongo.Collection  { return s.db.Collection("wishlists") }
func (s *Store) addresses() *mongo.Collection  { return s.db.Collection("addresses") }
func (s *Store) sliders() *mongo.Collection    { return s.db.Collection("sliders") }
func (s *Store) faqs() *mongo.Collection       { return s.db.Collection("faqs") }
func (s *Store) users() *mongo.Collection      { return s.db.Collection("users") }
