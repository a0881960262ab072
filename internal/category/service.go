package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// repository is the persistence surface the service needs. *Repository
// satisfies it; tests substitute a mock.
type repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, name string) (*Category, error)
	Create(ctx context.Context, name string, description *string) (*Category, error)
	Rename(ctx context.Context, oldName, newName string) error
	UpdateDescription(ctx context.Context, name, description string) error
}

// Service contains business logic for category management.
type Service struct {
	repo repository
}

// NewService creates a new category Service.
func NewService(repo repository) *Service {
	return &Service{repo: repo}
}

// List returns all categories ordered by name ascending.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// ListNames returns all category names, sorted ascending.
func (s *Service) ListNames(ctx context.Context) ([]string, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names, nil
}

// ListDescriptions returns all category descriptions in the same order as
// ListNames. Both derive from the same paired query, so the two can never
// drift apart between calls.
func (s *Service) ListDescriptions(ctx context.Context) ([]string, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	descriptions := make([]string, len(cats))
	for i, c := range cats {
		if c.Description != nil {
			descriptions[i] = *c.Description
		}
	}
	return descriptions, nil
}

// GetDescription returns the description of the named category, or ErrNotFound
// when no such category exists. A category without a description yields "".
func (s *Service) GetDescription(ctx context.Context, name string) (string, error) {
	c, err := s.repo.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if c.Description == nil {
		return "", nil
	}
	return *c.Description, nil
}

// Exists reports whether a category with the given name exists, compared
// case-insensitively.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.ListNames(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true, nil
		}
	}
	return false, nil
}

// Create adds a new category. Names that differ from an existing category
// only by case are rejected with ErrAlreadyExists.
func (s *Service) Create(ctx context.Context, name string, description *string) (*Category, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check category existence: %w", err)
	}
	if exists {
		return nil, ErrAlreadyExists
	}
	return s.repo.Create(ctx, name, description)
}

// Rename changes a category's name and moves its images along. The old name
// must match exactly, including case.
func (s *Service) Rename(ctx context.Context, oldName, newName string) error {
	return s.repo.Rename(ctx, oldName, newName)
}

// UpdateDescription replaces the named category's description. The name must
// match exactly, including case.
func (s *Service) UpdateDescription(ctx context.Context, name, description string) error {
	return s.repo.UpdateDescription(ctx, name, description)
}

// IsNotFound returns true when the error indicates a category was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
