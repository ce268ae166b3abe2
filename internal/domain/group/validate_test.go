package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		input    GroupInput
		expected ValidationErrors
	}{
		{
			name: "valid_input_returns_nil",
			input: GroupInput{
				Shop:  "acme-demo.myshopify.com",
				Title: "Summer picks",
				Items: []ItemInput{
					{Handle: "summer-sandal", Title: "Summer Sandal"},
					{Handle: "straw-hat", Title: "Straw Hat"},
				},
			},
			expected: nil,
		},
		{
			name: "missing_title_only",
			input: GroupInput{
				Shop: "acme-demo.myshopify.com",
				Items: []ItemInput{
					{Handle: "summer-sandal", Title: "Summer Sandal"},
				},
			},
			expected: ValidationErrors{
				"title": "Title is required",
			},
		},
		{
			name:  "missing_everything",
			input: GroupInput{},
			expected: ValidationErrors{
				"shop":  "Shop is required",
				"title": "Title is required",
				"items": "At least one product is required",
			},
		},
		{
			name: "item_errors_are_keyed_by_index",
			input: GroupInput{
				Shop:  "acme-demo.myshopify.com",
				Title: "Summer picks",
				Items: []ItemInput{
					{Handle: "", Title: "Summer Sandal"},
					{Handle: "straw-hat", Title: ""},
				},
			},
			expected: ValidationErrors{
				"items.0.handle": "Product handle is required",
				"items.1.title":  "Product title is required",
			},
		},
		{
			name: "item_missing_both_fields",
			input: GroupInput{
				Shop:  "acme-demo.myshopify.com",
				Title: "Summer picks",
				Items: []ItemInput{
					{Handle: "summer-sandal", Title: "Summer Sandal"},
					{},
				},
			},
			expected: ValidationErrors{
				"items.1.handle": "Product handle is required",
				"items.1.title":  "Product title is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.input)
			assert.Equal(t, tt.expected, errs)
		})
	}
}

func TestNewGroupItems(t *testing.T) {
	items := NewGroupItems("pg_123", []ItemInput{
		{Handle: "summer-sandal", Title: "Summer Sandal"},
		{Handle: "straw-hat", Title: "Straw Hat"},
		{Handle: "beach-towel", Title: "Beach Towel"},
	})

	assert.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, "pg_123", item.GroupID)
		assert.NotEmpty(t, item.ID)
		if i > 0 {
			assert.True(t, items[i-1].CreatedAt.Before(item.CreatedAt),
				"item timestamps must be strictly increasing")
		}
	}
}
