package group

import "fmt"

// ValidationErrors maps a field path to a human-readable message.
// Item errors are keyed items.<index>.handle / items.<index>.title.
type ValidationErrors map[string]string

// Validate checks a group input without touching storage. It returns nil
// when the input is fully valid, never an empty map.
func Validate(input GroupInput) ValidationErrors {
	errs := ValidationErrors{}

	if input.Shop == "" {
		errs["shop"] = "Shop is required"
	}

	if input.Title == "" {
		errs["title"] = "Title is required"
	}

	if len(input.Items) == 0 {
		errs["items"] = "At least one product is required"
	}

	for i, item := range input.Items {
		if item.Handle == "" {
			errs[fmt.Sprintf("items.%d.handle", i)] = "Product handle is required"
		}
		if item.Title == "" {
			errs[fmt.Sprintf("items.%d.title", i)] = "Product title is required"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToDetails converts validation errors to the reportable details shape
func (v ValidationErrors) ToDetails() map[string]any {
	details := make(map[string]any, len(v))
	for field, message := range v {
		details[field] = message
	}
	return details
}
