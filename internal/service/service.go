// Package service is the in-process boundary API: the operations a
// presentation layer calls to manage listings and run reports.
//
// A Service wraps one store handle, passed in explicitly. There is no
// package-level connection. Every call re-reads current state.
package service

import (
	"context"
	"log/slog"

	"github.com/roach88/foodwaste/internal/model"
	"github.com/roach88/foodwaste/internal/report"
	"github.com/roach88/foodwaste/internal/seed"
	"github.com/roach88/foodwaste/internal/store"
)

// Service exposes the boundary operations over a single store.
type Service struct {
	store  *store.Store
	runner *report.Runner
	log    *slog.Logger
}

// New creates a service over st. A nil logger uses slog.Default().
func New(st *store.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:  st,
		runner: report.NewRunner(st),
		log:    logger,
	}
}

// Open opens the store at path and wraps it. The caller owns Close.
func Open(path string, logger *slog.Logger) (*Service, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return New(st, logger), nil
}

// Close closes the underlying store.
func (s *Service) Close() error {
	return s.store.Close()
}

// EnsureSchema creates the owned tables if missing.
func (s *Service) EnsureSchema(ctx context.Context) error {
	if err := s.store.EnsureSchema(ctx); err != nil {
		return err
	}
	s.log.Debug("schema ensured", "path", s.store.Path())
	return nil
}

// CreateListing inserts a listing and returns its Food_ID.
func (s *Service) CreateListing(ctx context.Context, n model.NewListing) (int64, error) {
	id, err := s.store.CreateListing(ctx, n)
	if err != nil {
		s.log.Debug("create listing rejected", "error", err)
		return 0, err
	}
	s.log.Info("listing created", "food_id", id, "quantity", n.Quantity)
	return id, nil
}

// ListListings returns every listing ordered by Food_ID.
func (s *Service) ListListings(ctx context.Context) ([]model.FoodListing, error) {
	return s.store.ListListings(ctx)
}

// FilterListings returns listings matching f, ordered by Food_ID.
func (s *Service) FilterListings(ctx context.Context, f model.ListingFilter) ([]model.FoodListing, error) {
	return s.store.FilterListings(ctx, f)
}

// UpdateListing sets the quantity, and the location when city is non-empty.
func (s *Service) UpdateListing(ctx context.Context, id, quantity int64, city string) error {
	err := s.store.UpdateListing(ctx, model.ListingUpdate{ID: id, Quantity: quantity, City: city})
	if err != nil {
		s.log.Debug("update listing failed", "food_id", id, "error", err)
		return err
	}
	s.log.Info("listing updated", "food_id", id, "quantity", quantity, "city", city)
	return nil
}

// DeleteListing removes a listing. Claims pointing at it are kept.
func (s *Service) DeleteListing(ctx context.Context, id int64) error {
	if err := s.store.DeleteListing(ctx, id); err != nil {
		s.log.Debug("delete listing failed", "food_id", id, "error", err)
		return err
	}
	s.log.Info("listing deleted", "food_id", id)
	return nil
}

// Summary returns the dashboard KPIs.
func (s *Service) Summary(ctx context.Context) (model.Summary, error) {
	return s.store.Summary(ctx)
}

// CreateContact inserts a directory contact.
func (s *Service) CreateContact(ctx context.Context, c model.Contact) (int64, error) {
	id, err := s.store.CreateContact(ctx, c)
	if err != nil {
		return 0, err
	}
	s.log.Info("contact created", "contact_id", id)
	return id, nil
}

// ListContacts returns every directory contact.
func (s *Service) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return s.store.ListContacts(ctx)
}

// Seed loads a dataset file and imports it.
func (s *Service) Seed(ctx context.Context, path string) (store.ImportResult, error) {
	d, err := seed.LoadFile(path)
	if err != nil {
		return store.ImportResult{}, err
	}
	res, err := seed.Apply(ctx, s.store, d)
	if err != nil {
		return store.ImportResult{}, err
	}
	s.log.Info("dataset imported", "file", path,
		"providers", res.Providers, "receivers", res.Receivers, "claims", res.Claims,
		"listings", res.Listings, "contacts", res.Contacts)
	return res, nil
}
