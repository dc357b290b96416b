package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"batdongsan-backend/internal/domains/favorite"
)

// postgresRepository là concrete implementation của favorite.Repository interface
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) favorite.Repository {
	return &postgresRepository{pool: pool}
}

// Create insert favorite mới.
// Unique index trên (user_id, property_id) bảo đảm không bao giờ có
// row trùng, kể cả khi hai request chạy song song - request thứ hai
// nhận 23505 và được map thành ErrAlreadyFavorited.
func (r *postgresRepository) Create(ctx context.Context, f *favorite.Favorite) error {
	query := `
		INSERT INTO favorites (id, user_id, property_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, f.ID, f.UserID, f.PropertyID, f.CreatedAt)
	if err != nil {
		// 23505 = unique_violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return favorite.ErrAlreadyFavorited
		}
		return fmt.Errorf("create favorite: %w", err)
	}

	return nil
}

// Delete bỏ lưu tin
func (r *postgresRepository) Delete(ctx context.Context, userID, propertyID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`

	result, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if result.RowsAffected() == 0 {
		return favorite.ErrFavoriteNotFound
	}

	return nil
}

// ListByUser join với properties để lấy listing summary cho trang yêu thích
func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, req favorite.ListFavoritesRequest) ([]favorite.FavoriteDTO, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM favorites WHERE user_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count favorites: %w", err)
	}

	query := `
		SELECT
			f.id, f.property_id, f.created_at,
			p.title, p.price, p.area, p.city, p.district,
			p.type, p.listing_type, p.status, p.images[1], p.is_active
		FROM favorites f
		JOIN properties p ON p.id = f.property_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, req.Limit, (req.Page-1)*req.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]favorite.FavoriteDTO, 0, req.Limit)
	for rows.Next() {
		var dto favorite.FavoriteDTO
		err := rows.Scan(
			&dto.ID,
			&dto.PropertyID,
			&dto.CreatedAt,
			&dto.Property.Title,
			&dto.Property.Price,
			&dto.Property.Area,
			&dto.Property.City,
			&dto.Property.District,
			&dto.Property.Type,
			&dto.Property.ListingType,
			&dto.Property.Status,
			&dto.Property.Image,
			&dto.Property.IsActive,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, dto)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return favorites, total, nil
}

// Exists kiểm tra user đã lưu tin này chưa
func (r *postgresRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, propertyID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check favorite exists: %w", err)
	}
	return exists, nil
}

// CountByProperty đếm số lượt lưu của một tin
func (r *postgresRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE property_id = $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, propertyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count by property: %w", err)
	}
	return count, nil
}
