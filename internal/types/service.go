package types

import (
	"context"
	"errors"
	"fmt"

	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service encapsulates type business logic. Every error it returns is an *apperr.Error.
type Service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(r Repository, log *logger.Logger) *Service {
	return &Service{repo: r, log: log}
}

// List returns all types sorted by name.
func (s *Service) List(ctx context.Context) ([]models.Type, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap("failed to list types", err)
	}
	return list, nil
}

// Get returns one type; any lookup failure is a NotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Type, error) {
	msg := fmt.Sprintf("Failed to get the type (Id: %s) from the database.", id)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid(fmt.Sprintf("Invalid type Id %s.", id))
	}
	t, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Errorf("Failed to get the type (Id: %s): %v", id, err)
		}
		return nil, apperr.MissingCause(msg, err)
	}
	return t, nil
}

// Create stores a new type. Persistence failures are reported as validation errors.
func (s *Service) Create(ctx context.Context, name string) (*models.Type, error) {
	t := &models.Type{Name: name}
	if err := s.repo.Insert(ctx, t); err != nil {
		s.log.Errorf("Failed to create the type: %v", err)
		return nil, apperr.InvalidCause("Failed to save the type on the database.", err)
	}
	return t, nil
}

// Update replaces the name of an existing type.
func (s *Service) Update(ctx context.Context, id, name string) (*models.Type, error) {
	msg := fmt.Sprintf("Failed to update the type (Id: %s) on the database.", id)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid(fmt.Sprintf("Invalid type Id %s.", id))
	}
	t, err := s.repo.Update(ctx, oid, name)
	if err != nil {
		s.log.Errorf("Failed to update the type (Id: %s): %v", id, err)
		return nil, apperr.InvalidCause(msg, err)
	}
	return t, nil
}

// Delete removes a type and returns it. Blogs keep their snapshot of it.
func (s *Service) Delete(ctx context.Context, id string) (*models.Type, error) {
	msg := fmt.Sprintf("Failed to delete the type (Id: %s) from the database.", id)
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid(fmt.Sprintf("Invalid type Id %s.", id))
	}
	t, err := s.repo.Delete(ctx, oid)
	if err != nil {
		s.log.Errorf("Failed to delete the type (Id: %s): %v", id, err)
		return nil, apperr.InvalidCause(msg, err)
	}
	return t, nil
}

// Lookup returns the type referenced by a blog body.
func (s *Service) Lookup(ctx context.Context, id string) (*models.Type, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid(fmt.Sprintf("Invalid type Id %s.", id))
	}
	t, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.InvalidCause(fmt.Sprintf("Type not found (Id: %s) on the database.", id), err)
		}
		return nil, apperr.Wrap("type lookup", err)
	}
	return t, nil
}
