package bot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smerfmc/gallery/internal/category"
)

func strPtr(s string) *string { return &s }

func TestFilterChoices(t *testing.T) {
	names := []string{"Cats", "Dogs", "Goats", "Scattered"}

	tests := []struct {
		current string
		want    []string
	}{
		{"", []string{"Cats", "Dogs", "Goats", "Scattered"}},
		{"cat", []string{"Cats", "Scattered"}},
		{"OAT", []string{"Goats"}},
		{"zebra", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filterChoices(names, tt.current), "filterChoices(%q)", tt.current)
	}
}

func TestFilterChoicesCapsAtDiscordLimit(t *testing.T) {
	var names []string
	for i := 0; i < 40; i++ {
		names = append(names, fmt.Sprintf("Category %d", i))
	}
	assert.Len(t, filterChoices(names, "category"), maxAutocompleteChoices)
}

func TestFormatCategoryList(t *testing.T) {
	cats := []category.Category{
		{Name: "Cats", Description: strPtr("Feline pics")},
		{Name: "Dogs"},
	}
	got := formatCategoryList(cats)
	assert.Equal(t, "• **Cats** - Feline pics\n• **Dogs** - ", got)
}

func TestFormatCategoryListEmpty(t *testing.T) {
	assert.Equal(t, "No categories found.", formatCategoryList(nil))
}
