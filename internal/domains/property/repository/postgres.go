package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"batdongsan-backend/internal/domains/property"
	"batdongsan-backend/internal/shared/utils"
	"batdongsan-backend/pkg/cache"
)

// postgresRepository là concrete implementation của property.Repository interface
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) property.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const propertyColumns = `
	id, title, description, price, price_negotiable, area,
	street, ward, district, city, latitude, longitude,
	type, listing_type, status, direction,
	bedrooms, bathrooms, floors, furniture, parking, balcony, elevator, front_width,
	images, video_url, contact_phone, contact_zalo, show_phone,
	owner_id, views, is_active, priority, is_verified, verified_by,
	expires_at, created_at, updated_at
`

func scanProperty(row pgx.Row) (*property.Property, error) {
	var p property.Property
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Price,
		&p.PriceNegotiable,
		&p.Area,
		&p.Address.Street,
		&p.Address.Ward,
		&p.Address.District,
		&p.Address.City,
		&p.Address.Latitude,
		&p.Address.Longitude,
		&p.Type,
		&p.ListingType,
		&p.Status,
		&p.Direction,
		&p.Features.Bedrooms,
		&p.Features.Bathrooms,
		&p.Features.Floors,
		&p.Features.Furniture,
		&p.Features.Parking,
		&p.Features.Balcony,
		&p.Features.Elevator,
		&p.Features.FrontWidth,
		pq.Array(&p.Images),
		&p.VideoURL,
		&p.Contact.Phone,
		&p.Contact.Zalo,
		&p.Contact.ShowPhone,
		&p.OwnerID,
		&p.Views,
		&p.IsActive,
		&p.Priority,
		&p.IsVerified,
		&p.VerifiedBy,
		&p.ExpiresAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ========================================
// BASIC CRUD
// ========================================

// Create đăng tin mới
func (r *postgresRepository) Create(ctx context.Context, p *property.Property) error {
	query := `
		INSERT INTO properties (
			id, title, description, price, price_negotiable, area,
			street, ward, district, city, latitude, longitude,
			type, listing_type, status, direction,
			bedrooms, bathrooms, floors, furniture, parking, balcony, elevator, front_width,
			images, video_url, contact_phone, contact_zalo, show_phone,
			owner_id, views, is_active, priority, is_verified,
			expires_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24,
			$25, $26, $27, $28, $29,
			$30, $31, $32, $33, $34,
			$35, $36, $37
		)
	`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.Title, p.Description, p.Price, p.PriceNegotiable, p.Area,
		p.Address.Street, p.Address.Ward, p.Address.District, p.Address.City,
		p.Address.Latitude, p.Address.Longitude,
		p.Type, p.ListingType, p.Status, p.Direction,
		p.Features.Bedrooms, p.Features.Bathrooms, p.Features.Floors,
		p.Features.Furniture, p.Features.Parking, p.Features.Balcony,
		p.Features.Elevator, p.Features.FrontWidth,
		pq.Array(p.Images), p.VideoURL,
		p.Contact.Phone, p.Contact.Zalo, p.Contact.ShowPhone,
		p.OwnerID, p.Views, p.IsActive, p.Priority, p.IsVerified,
		p.ExpiresAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create property: %w", err)
	}

	return nil
}

// FindByID tìm tin theo UUID với Redis caching (Cache-Aside Pattern)
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	cacheKey := fmt.Sprintf("property:%s", id.String())

	var cached property.Property
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, property.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property by id: %w", err)
	}

	// TTL 15 phút; cache set failure không fail request
	_ = r.cache.Set(ctx, cacheKey, p, 15*time.Minute)

	return p, nil
}

// Update ghi đè toàn bộ mutable fields (service đã merge patch vào entity)
func (r *postgresRepository) Update(ctx context.Context, p *property.Property) error {
	query := `
		UPDATE properties SET
			title = $2, description = $3, price = $4, price_negotiable = $5, area = $6,
			street = $7, ward = $8, district = $9, city = $10, latitude = $11, longitude = $12,
			type = $13, listing_type = $14, status = $15, direction = $16,
			bedrooms = $17, bathrooms = $18, floors = $19, furniture = $20,
			parking = $21, balcony = $22, elevator = $23, front_width = $24,
			images = $25, video_url = $26, contact_phone = $27, contact_zalo = $28, show_phone = $29,
			is_active = $30, priority = $31, expires_at = $32, updated_at = $33
		WHERE id = $1
	`

	p.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Title, p.Description, p.Price, p.PriceNegotiable, p.Area,
		p.Address.Street, p.Address.Ward, p.Address.District, p.Address.City,
		p.Address.Latitude, p.Address.Longitude,
		p.Type, p.ListingType, p.Status, p.Direction,
		p.Features.Bedrooms, p.Features.Bathrooms, p.Features.Floors, p.Features.Furniture,
		p.Features.Parking, p.Features.Balcony, p.Features.Elevator, p.Features.FrontWidth,
		pq.Array(p.Images), p.VideoURL,
		p.Contact.Phone, p.Contact.Zalo, p.Contact.ShowPhone,
		p.IsActive, p.Priority, p.ExpiresAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update property: %w", err)
	}

	if result.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}

	r.invalidate(ctx, p.ID)
	return nil
}

// SoftDelete gỡ tin khỏi public listing, giữ lại data
func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE properties SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete property: %w", err)
	}
	if result.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// HardDelete xóa hẳn row - chỉ admin
func (r *postgresRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("hard delete property: %w", err)
	}
	if result.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// ========================================
// QUERY BUILDER
// ========================================

// buildWhereClause dựng dynamic WHERE từ filter struct.
// Mọi giá trị user-supplied đều đi qua placeholders.
func buildWhereClause(req property.ListPropertiesRequest) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	add := func(cond string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argIndex))
		args = append(args, value)
		argIndex++
	}

	// Public listing chỉ thấy tin active; owner/admin thấy tất cả
	if !req.IncludeInactive {
		conditions = append(conditions, "is_active = true")
	}

	if req.OwnerID != nil {
		add("owner_id = $%d", *req.OwnerID)
	}

	if req.Type != "" {
		add("type = $%d", req.Type)
	}

	if req.ListingType != "" {
		add("listing_type = $%d", req.ListingType)
	}

	if req.Status != "" {
		add("status = $%d", req.Status)
	} else if !req.IncludeInactive {
		// Public default: chỉ tin còn available
		conditions = append(conditions, "status = 'available'")
	}

	if req.City != "" {
		add("city = $%d", req.City)
	}
	if req.District != "" {
		add("district = $%d", req.District)
	}
	if req.Ward != "" {
		add("ward = $%d", req.Ward)
	}

	// Khoảng giá / diện tích: inclusive cả hai đầu
	if req.MinPrice != "" {
		add("price >= $%d", req.MinPrice)
	}
	if req.MaxPrice != "" {
		add("price <= $%d", req.MaxPrice)
	}
	if req.MinArea != "" {
		add("area >= $%d", req.MinArea)
	}
	if req.MaxArea != "" {
		add("area <= $%d", req.MaxArea)
	}

	if req.MinBedrooms != nil {
		add("bedrooms >= $%d", *req.MinBedrooms)
	}
	if req.MinBathrooms != nil {
		add("bathrooms >= $%d", *req.MinBathrooms)
	}

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR description ILIKE $%d)", argIndex, argIndex,
		))
		args = append(args, "%"+req.Search+"%")
		argIndex++
	}

	return conditions, args
}

// List trả về trang kết quả khớp filter + tổng số row
func (r *postgresRepository) List(ctx context.Context, req property.ListPropertiesRequest) ([]property.Property, int, error) {
	conditions, args := buildWhereClause(req)

	whereClause := "TRUE"
	if len(conditions) > 0 {
		whereClause = utils.JoinWithAnd(conditions)
	}

	// Count trước khi phân trang
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM properties WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count properties: %w", err)
	}

	// Sort column đã được validate qua DTO whitelist - an toàn để interpolate.
	// Tin ưu tiên (priority cao) luôn hiện trước trong cùng nhóm sort.
	orderClause := fmt.Sprintf("priority DESC, %s %s", req.SortBy, strings.ToUpper(req.SortOrder))

	argIndex := len(args) + 1
	query := fmt.Sprintf(`
		SELECT `+propertyColumns+`
		FROM properties
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause, argIndex, argIndex+1)

	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]property.Property, 0, req.Limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan property: %w", err)
		}
		properties = append(properties, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return properties, total, nil
}

// ========================================
// COUNTERS & MODERATION
// ========================================

// IncrementViews tăng view counter trong một statement duy nhất.
// Không read-modify-write nên concurrent requests không mất count.
func (r *postgresRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE properties SET views = views + 1 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if result.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// UpdateVerification admin duyệt/bỏ duyệt tin
func (r *postgresRepository) UpdateVerification(ctx context.Context, id uuid.UUID, verified bool, verifiedBy *uuid.UUID) error {
	query := `
		UPDATE properties
		SET is_verified = $2, verified_by = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id, verified, verifiedBy)
	if err != nil {
		return fmt.Errorf("update verification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// UpdateStatus đổi trạng thái tin (available/sold/rented/...)
func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status property.Status) error {
	query := `UPDATE properties SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return property.ErrPropertyNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// Statistics đếm tin theo trạng thái + tổng views
func (r *postgresRepository) Statistics(ctx context.Context) (*property.Statistics, error) {
	query := `
		SELECT
			COUNT(*)                                    AS total,
			COUNT(*) FILTER (WHERE is_active)           AS active,
			COUNT(*) FILTER (WHERE is_verified)         AS verified,
			COUNT(*) FILTER (WHERE listing_type = 'sale') AS for_sale,
			COUNT(*) FILTER (WHERE listing_type = 'rent') AS for_rent,
			COALESCE(SUM(views), 0)                     AS total_views
		FROM properties
	`

	var s property.Statistics
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalProperties,
		&s.ActiveProperties,
		&s.VerifiedProperties,
		&s.ForSale,
		&s.ForRent,
		&s.TotalViews,
	)
	if err != nil {
		return nil, fmt.Errorf("property statistics: %w", err)
	}

	return &s, nil
}

// invalidate xóa cache entry sau mutation
func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, fmt.Sprintf("property:%s", id.String()))
}
