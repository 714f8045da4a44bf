// Package picture assembles four-option image-choice sets for
// picture-description exercises: one image for the target concept and
// three decoys, resolved through a chain of image-search providers with
// a generated placeholder as the final fallback.
package picture

import "context"

// SearchResult is one image candidate from a search provider.
type SearchResult struct {
	ImageURL    string
	Description string
}

// SearchProvider finds candidate images for a query. Implementations
// return an empty slice, not an error, when nothing matched.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
	Name() string
}

// PictureChoice is one option in an assembled choice set.
type PictureChoice struct {
	ID        string `json:"id"`
	ImageURL  string `json:"image_url"`
	IsCorrect bool   `json:"is_correct"`
}
