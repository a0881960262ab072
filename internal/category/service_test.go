package category

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements the repository interface for testing.
type mockRepository struct {
	listFunc              func(ctx context.Context) ([]Category, error)
	getFunc               func(ctx context.Context, name string) (*Category, error)
	createFunc            func(ctx context.Context, name string, description *string) (*Category, error)
	renameFunc            func(ctx context.Context, oldName, newName string) error
	updateDescriptionFunc func(ctx context.Context, name, description string) error
}

func (m *mockRepository) List(ctx context.Context) ([]Category, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Get(ctx context.Context, name string) (*Category, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Create(ctx context.Context, name string, description *string) (*Category, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name, description)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) Rename(ctx context.Context, oldName, newName string) error {
	if m.renameFunc != nil {
		return m.renameFunc(ctx, oldName, newName)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) UpdateDescription(ctx context.Context, name, description string) error {
	if m.updateDescriptionFunc != nil {
		return m.updateDescriptionFunc(ctx, name, description)
	}
	return errors.New("not implemented")
}

func strPtr(s string) *string { return &s }

func TestCreateRejectsCaseVariantDuplicate(t *testing.T) {
	createCalled := false
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) {
			return []Category{{Name: "Cats", Description: strPtr("Feline pics")}}, nil
		},
		createFunc: func(ctx context.Context, name string, description *string) (*Category, error) {
			createCalled = true
			return &Category{Name: name, Description: description}, nil
		},
	}
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "cAtS", nil)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	assert.False(t, createCalled, "duplicate must be rejected before the insert")
}

func TestCreateInsertsNewCategory(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) {
			return []Category{{Name: "Cats"}}, nil
		},
		createFunc: func(ctx context.Context, name string, description *string) (*Category, error) {
			return &Category{Name: name, Description: description}, nil
		},
	}
	svc := NewService(repo)

	c, err := svc.Create(context.Background(), "Dogs", strPtr("Canine pics"))
	require.NoError(t, err)
	assert.Equal(t, "Dogs", c.Name)
	require.NotNil(t, c.Description)
	assert.Equal(t, "Canine pics", *c.Description)
}

func TestExistsIsCaseInsensitive(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) {
			return []Category{{Name: "Cats"}, {Name: "Dogs"}}, nil
		},
	}
	svc := NewService(repo)

	tests := []struct {
		name string
		want bool
	}{
		{"Cats", true},
		{"cats", true},
		{"DOGS", true},
		{"Birds", false},
	}
	for _, tt := range tests {
		got, err := svc.Exists(context.Background(), tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Exists(%q)", tt.name)
	}
}

func TestGetDescriptionNotFound(t *testing.T) {
	repo := &mockRepository{
		getFunc: func(ctx context.Context, name string) (*Category, error) {
			return nil, ErrNotFound
		},
	}
	svc := NewService(repo)

	_, err := svc.GetDescription(context.Background(), "Ghosts")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, svc.IsNotFound(err))
}

func TestGetDescriptionMissingIsEmpty(t *testing.T) {
	repo := &mockRepository{
		getFunc: func(ctx context.Context, name string) (*Category, error) {
			return &Category{Name: name}, nil
		},
	}
	svc := NewService(repo)

	desc, err := svc.GetDescription(context.Background(), "Cats")
	require.NoError(t, err)
	assert.Empty(t, desc)
}

func TestNamesAndDescriptionsStayAligned(t *testing.T) {
	repo := &mockRepository{
		listFunc: func(ctx context.Context) ([]Category, error) {
			return []Category{
				{Name: "Cats", Description: strPtr("Feline pics")},
				{Name: "Dogs"},
				{Name: "Goats", Description: strPtr("Bahh")},
			}, nil
		},
	}
	svc := NewService(repo)

	names, err := svc.ListNames(context.Background())
	require.NoError(t, err)
	descriptions, err := svc.ListDescriptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Cats", "Dogs", "Goats"}, names)
	assert.Equal(t, []string{"Feline pics", "", "Bahh"}, descriptions)
}

func TestRenameDelegatesExactMatch(t *testing.T) {
	var gotOld, gotNew string
	repo := &mockRepository{
		renameFunc: func(ctx context.Context, oldName, newName string) error {
			gotOld, gotNew = oldName, newName
			return nil
		},
	}
	svc := NewService(repo)

	require.NoError(t, svc.Rename(context.Background(), "Cats", "Kitties"))
	assert.Equal(t, "Cats", gotOld)
	assert.Equal(t, "Kitties", gotNew)
}
