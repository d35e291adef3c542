package content

import "errors"

var (
	// ErrNotFound indicates there is no content for the requested category.
	ErrNotFound = errors.New("no content for this category")
	// ErrMissingCategory indicates a required category title was absent.
	ErrMissingCategory = errors.New("category is required")
	// ErrPageOutOfRange indicates a page index outside the category's pages.
	ErrPageOutOfRange = errors.New("page index out of range")
)
