package favorite

import "errors"

// Domain errors cho favorite
var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrAlreadyFavorited = errors.New("property already favorited")
)
