package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"batdongsan-backend/internal/domains/favorite"
	"batdongsan-backend/internal/domains/property"
)

// favoriteService implement favorite.Service interface
type favoriteService struct {
	repo       favorite.Repository
	properties property.Repository
}

func NewFavoriteService(repo favorite.Repository, properties property.Repository) favorite.Service {
	return &favoriteService{
		repo:       repo,
		properties: properties,
	}
}

// Add lưu tin vào danh sách yêu thích.
// Tin phải tồn tại và còn active; tin đã gỡ coi như không tồn tại.
func (s *favoriteService) Add(ctx context.Context, userID uuid.UUID, req favorite.AddFavoriteRequest) (*favorite.Favorite, error) {
	p, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, property.ErrPropertyNotFound
	}

	f := &favorite.Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		PropertyID: req.PropertyID,
		CreatedAt:  time.Now(),
	}

	// Duplicate được chặn ở DB level, không check-then-insert
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	return f, nil
}

// Remove bỏ lưu tin
func (s *favoriteService) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, propertyID)
}

// ListMine danh sách tin đã lưu của user, kèm listing summary
func (s *favoriteService) ListMine(ctx context.Context, userID uuid.UUID, req favorite.ListFavoritesRequest) (*favorite.ListFavoritesResponse, error) {
	favorites, total, err := s.repo.ListByUser(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	return &favorite.ListFavoritesResponse{
		Favorites:  favorites,
		Pagination: property.NewPaginationMeta(total, req.Page, req.Limit),
	}, nil
}

// IsFavorited kiểm tra user đã lưu tin này chưa
func (s *favoriteService) IsFavorited(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, userID, propertyID)
}

// CountForProperty đếm số người đã lưu một tin
func (s *favoriteService) CountForProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	return s.repo.CountByProperty(ctx, propertyID)
}
