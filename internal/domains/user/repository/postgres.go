package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"batdongsan-backend/internal/domains/user"
	"batdongsan-backend/internal/shared/utils"
	"batdongsan-backend/pkg/cache"
	"batdongsan-backend/pkg/database"
)

// postgresRepository là concrete implementation của user.Repository interface
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository trả về interface thay vì concrete type
// để code phụ thuộc vào abstraction (dễ mock, dễ swap implementation)
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) user.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const userColumns = `
	id, email, password_hash, full_name, phone, avatar, role,
	is_active, is_verified, reset_token, reset_token_expires_at,
	last_login_at, created_at, updated_at, deleted_at
`

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Phone,
		&u.Avatar,
		&u.Role,
		&u.IsActive,
		&u.IsVerified,
		&u.ResetToken,
		&u.ResetTokenExpiresAt,
		&u.LastLoginAt,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ========================================
// BASIC CRUD
// ========================================

// Create tạo user mới
// Unique violation trên email được map thành domain error
func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, full_name, phone, avatar, role,
			is_active, is_verified, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		strings.ToLower(u.Email),
		u.PasswordHash,
		u.FullName,
		u.Phone,
		u.Avatar,
		u.Role,
		u.IsActive,
		u.IsVerified,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if err != nil {
		// 23505 = unique_violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return user.ErrEmailAlreadyExists
			}
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// FindByID tìm user theo UUID với Redis caching (Cache-Aside Pattern)
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	cacheKey := fmt.Sprintf("user:%s", id.String())

	var cached user.User
	found, err := r.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	u, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}

	// TTL 15 phút; cache set failure không fail request
	_ = r.cache.Set(ctx, cacheKey, u, 15*time.Minute)

	return u, nil
}

// FindByEmail tìm user theo email (dùng cho login - không cache)
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`

	u, err := scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	return u, nil
}

// Update cập nhật profile fields và invalidate cache
func (r *postgresRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET email = $2, full_name = $3, phone = $4, avatar = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL
	`

	u.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query,
		u.ID,
		strings.ToLower(u.Email),
		u.FullName,
		u.Phone,
		u.Avatar,
		u.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, u.ID)
	return nil
}

// Delete soft delete user (set deleted_at) và gỡ toàn bộ tin đăng của user đó.
// Hai bước chạy trong cùng một transaction để không còn tin "mồ côi" vẫn public.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()

	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `
			UPDATE users
			SET deleted_at = $2, updated_at = $2
			WHERE id = $1 AND deleted_at IS NULL
		`, id, now)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if result.RowsAffected() == 0 {
			return user.ErrUserNotFound
		}

		if _, err := tx.Exec(ctx, `
			UPDATE properties
			SET is_active = false, updated_at = $2
			WHERE owner_id = $1 AND is_active = true
		`, id, now); err != nil {
			return fmt.Errorf("deactivate user properties: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(ctx, id)
	// Cache tin đăng của user này đã stale sau khi gỡ hàng loạt
	_ = r.cache.DeletePattern(ctx, "property:*")
	return nil
}

// ========================================
// AUTHENTICATION SPECIFIC
// ========================================

// FindByResetToken chỉ trả về user nếu token còn hạn
func (r *postgresRepository) FindByResetToken(ctx context.Context, token string) (*user.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token = $1 AND reset_token_expires_at > NOW() AND deleted_at IS NULL
	`

	u, err := scanUser(r.pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user by reset token: %w", err)
	}

	return u, nil
}

// SetResetToken lưu reset token với expiry
func (r *postgresRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET reset_token = $2, reset_token_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, userID, token, expiresAt)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// UpdatePassword cập nhật password và clear reset token
func (r *postgresRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_token_expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.pool.Exec(ctx, query, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

// UpdateLastLogin cập nhật last_login_at (fire-and-forget từ service)
func (r *postgresRepository) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE users SET last_login_at = NOW() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	return err
}

// ========================================
// ADMIN FUNCTIONS
// ========================================

// List trả về danh sách users với filters, sort whitelist và pagination
func (r *postgresRepository) List(ctx context.Context, req user.ListUsersRequest) ([]user.User, int, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	argIndex := 1

	if req.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", argIndex))
		args = append(args, *req.Role)
		argIndex++
	}

	if req.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *req.IsActive)
		argIndex++
	}

	if req.IsVerified != nil {
		conditions = append(conditions, fmt.Sprintf("is_verified = $%d", argIndex))
		args = append(args, *req.IsVerified)
		argIndex++
	}

	if req.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(full_name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)",
			argIndex, argIndex, argIndex,
		))
		args = append(args, "%"+req.Search+"%")
		argIndex++
	}

	whereClause := utils.JoinWithAnd(conditions)

	// Count trước khi phân trang
	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM users WHERE %s`, whereClause)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	// Sort column đã được validate qua DTO whitelist - an toàn để interpolate
	orderClause := fmt.Sprintf("%s %s", req.SortBy, strings.ToUpper(req.SortOrder))

	query := fmt.Sprintf(`
		SELECT `+userColumns+`
		FROM users
		WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, whereClause, orderClause, argIndex, argIndex+1)

	args = append(args, req.Limit, (req.Page-1)*req.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0, req.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return users, total, nil
}

// UpdateRole cập nhật role của user
func (r *postgresRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role user.Role) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.pool.Exec(ctx, query, userID, role)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

// UpdateStatus block/unblock user
// Idempotent: set lại cùng một giá trị không lỗi
func (r *postgresRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	query := `UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.pool.Exec(ctx, query, userID, isActive)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

// UpdateVerification đánh dấu verified/unverified danh tính
func (r *postgresRepository) UpdateVerification(ctx context.Context, userID uuid.UUID, isVerified bool) error {
	query := `UPDATE users SET is_verified = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.pool.Exec(ctx, query, userID, isVerified)
	if err != nil {
		return fmt.Errorf("update verification: %w", err)
	}
	if result.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	r.invalidate(ctx, userID)
	return nil
}

// ========================================
// UTILITY
// ========================================

// ExistsByEmail kiểm tra email đã tồn tại chưa
func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

// Statistics đếm user theo role/status
func (r *postgresRepository) Statistics(ctx context.Context) (*user.Statistics, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE role = 'user')     AS total_users,
			COUNT(*) FILTER (WHERE role = 'agent')    AS total_agents,
			COUNT(*) FILTER (WHERE role = 'admin')    AS total_admins,
			COUNT(*) FILTER (WHERE is_active)         AS active_users,
			COUNT(*) FILTER (WHERE NOT is_active)     AS blocked_users,
			COUNT(*) FILTER (WHERE is_verified)       AS verified_users
		FROM users
		WHERE deleted_at IS NULL
	`

	var s user.Statistics
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalUsers,
		&s.TotalAgents,
		&s.TotalAdmins,
		&s.ActiveUsers,
		&s.BlockedUsers,
		&s.VerifiedUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("user statistics: %w", err)
	}

	return &s, nil
}

// invalidate xóa cache entry sau mutation
func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, fmt.Sprintf("user:%s", id.String()))
}
