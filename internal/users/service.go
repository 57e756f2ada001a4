package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/grandshipper/grandshipper-api/internal/apperr"
	"github.com/grandshipper/grandshipper-api/internal/models"
	"github.com/grandshipper/grandshipper-api/internal/validation"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgAlreadyRegistered = "User already registered."
	msgBadCredentials    = "Invalid email or password."
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	log  *logger.Logger
	cost int
}

// Option configures a Service.
type Option func(*Service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

func NewService(r UserRepository, log *logger.Logger, opts ...Option) *Service {
	s := &Service{repo: r, log: log, cost: bcrypt.DefaultCost}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Register creates a non-admin account with a hashed password.
func (s *Service) Register(ctx context.Context, req validation.UserRequest) (*models.User, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Invalid(msgAlreadyRegistered)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, apperr.Wrap("user lookup", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, apperr.Wrap("hash password", err)
	}
	u := &models.User{Name: req.Name, Email: req.Email, Password: string(hash)}
	if err := s.repo.Insert(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return nil, apperr.Invalid(msgAlreadyRegistered)
		}
		s.log.Errorf("Failed to save user %s: %v", req.Email, err)
		return nil, apperr.InvalidCause("Failed to save the user on the database.", err)
	}
	s.log.Infof("registered user %s", u.ID.Hex())
	return u, nil
}

// Authenticate checks credentials. Unknown email and wrong password give the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.Invalid(msgBadCredentials)
		}
		return nil, apperr.Wrap("user lookup", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apperr.Invalid(msgBadCredentials)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.Invalid(fmt.Sprintf("Invalid user Id %s.", id))
	}
	u, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.MissingCause(fmt.Sprintf("User not found (Id: %s).", id), err)
		}
		return nil, apperr.Wrap("user lookup", err)
	}
	return u, nil
}

// SetAdmin grants or revokes the admin flag for the account with the given email.
func (s *Service) SetAdmin(ctx context.Context, email string, admin bool) (*models.User, error) {
	u, err := s.repo.SetAdmin(ctx, email, admin)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.MissingCause(fmt.Sprintf("User not found (Email: %s).", email), err)
		}
		return nil, apperr.Wrap("set admin", err)
	}
	s.log.Infof("user %s isAdmin=%t", u.ID.Hex(), admin)
	return u, nil
}
