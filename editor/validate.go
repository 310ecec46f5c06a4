package editor

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	msgInvalidURL    = "Please enter a valid URL"
	msgInvalidRating = "Rating must be between 1 and 5"
)

var formValidator = validator.New()

// ValidationResult maps error keys such as "title" or "images_2_url" to a message
type ValidationResult struct {
	Valid  bool              `json:"is_valid"`
	Errors map[string]string `json:"errors"`
}

var requiredFields = []struct {
	field Field
	label string
}{
	{FieldTitle, "Title"},
	{FieldCategory, "Category"},
	{FieldType, "Type"},
	{FieldDescription, "Description"},
}

// Validate runs every rule over data and collects all failures
func Validate(data ProjectFormData) ValidationResult {
	errors := make(map[string]string)

	for _, r := range requiredFields {
		if strings.TrimSpace(*r.field.ptr(&data)) == "" {
			errors[string(r.field)] = r.label + " is required"
		}
	}

	if !optionalURL(data.CoverImageURL) {
		errors[string(FieldCoverImageURL)] = msgInvalidURL
	}

	for _, kind := range LinkKinds {
		if !optionalURL(*kind.ptr(&data.Links)) {
			errors["links_"+string(kind)] = msgInvalidURL
		}
	}

	for i, img := range data.Images {
		if !optionalURL(img.URL) {
			errors[fmt.Sprintf("images_%d_url", i)] = msgInvalidURL
		}
	}

	for i, t := range data.Testimonials {
		if !validRating(t.Rating) {
			errors[fmt.Sprintf("testimonials_%d_rating", i)] = msgInvalidRating
		}
	}

	return ValidationResult{Valid: len(errors) == 0, Errors: errors}
}

// optionalURL reports whether value is blank or an absolute http(s) URL with a host
func optionalURL(value string) bool {
	if strings.TrimSpace(value) == "" {
		return true
	}
	return formValidator.Var(value, "http_url") == nil
}

func validRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
