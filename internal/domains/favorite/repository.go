package favorite

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access layer contract
type Repository interface {
	// Create trả về ErrAlreadyFavorited khi cặp (user, property) đã tồn tại
	Create(ctx context.Context, f *Favorite) error
	Delete(ctx context.Context, userID, propertyID uuid.UUID) error

	// ListByUser join với properties để trả về listing summary
	ListByUser(ctx context.Context, userID uuid.UUID, req ListFavoritesRequest) ([]FavoriteDTO, int, error)

	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
}
