package favorite

import (
	"context"

	"github.com/google/uuid"
)

// Service định nghĩa business logic layer contract
type Service interface {
	Add(ctx context.Context, userID uuid.UUID, req AddFavoriteRequest) (*Favorite, error)
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	ListMine(ctx context.Context, userID uuid.UUID, req ListFavoritesRequest) (*ListFavoritesResponse, error)
	IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	CountForProperty(ctx context.Context, propertyID uuid.UUID) (int, error)
}
