package blogs

import (
	"context"
	"errors"
	"fmt"

	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TypeLookup resolves the type a blog refers to.
type TypeLookup interface {
	Lookup(ctx context.Context, id string) (*models.Type, error)
}

// Service encapsulates blog business logic. Every error it returns is an *apperr.Error.
type Service struct {
	repo  Repository
	types TypeLookup
	log   *logger.Logger
}

func NewService(r Repository, types TypeLookup, log *logger.Logger) *Service {
	return &Service{repo: r, types: types, log: log}
}

// List returns all blogs sorted by title.
func (s *Service) List(ctx context.Context) ([]models.Blog, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Wrap("failed to list blogs", err)
	}
	return list, nil
}

// Get returns one blog; any lookup failure is a NotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Errorf("Failed to get the blog (Id: %s): %v", id, err)
		}
		return nil, apperr.MissingCause(fmt.Sprintf("Failed to get the blog (Id: %s) from the database.", id), err)
	}
	return b, nil
}

// Create resolves the referenced type, snapshots it into the blog and stores the blog.
func (s *Service) Create(ctx context.Context, req validation.BlogRequest) (*models.Blog, error) {
	t, err := s.types.Lookup(ctx, req.TypeID)
	if err != nil {
		return nil, err
	}
	b := &models.Blog{
		Title:   req.Title,
		Type:    t.Snapshot(),
		Content: req.Content,
		Author:  req.Author,
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		s.log.Errorf("Failed to create the blog: %v", err)
		return nil, apperr.InvalidCause("Failed to save the blog on the database.", err)
	}
	return b, nil
}

// Update replaces every field of an existing blog, re-snapshotting its type.
func (s *Service) Update(ctx context.Context, id string, req validation.BlogRequest) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.types.Lookup(ctx, req.TypeID)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.Update(ctx, &models.Blog{
		ID:      oid,
		Title:   req.Title,
		Type:    t.Snapshot(),
		Content: req.Content,
		Author:  req.Author,
	})
	if err != nil {
		s.log.Errorf("Failed to update the blog (Id: %s): %v", id, err)
		return nil, apperr.InvalidCause(fmt.Sprintf("Failed to update the blog (Id: %s) on the database.", id), err)
	}
	return b, nil
}

// Delete removes a blog and returns it.
func (s *Service) Delete(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.Delete(ctx, oid)
	if err != nil {
		s.log.Errorf("Failed to delete the blog (Id: %s): %v", id, err)
		return nil, apperr.InvalidCause(fmt.Sprintf("Failed to delete the blog (Id: %s) from the database.", id), err)
	}
	return b, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid(fmt.Sprintf("Invalid blog Id %s.", id))
	}
	return oid, nil
}
