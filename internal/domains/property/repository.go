package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository định nghĩa data access layer contract
type Repository interface {
	Create(ctx context.Context, p *Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	Update(ctx context.Context, p *Property) error

	// SoftDelete set is_active = false, giữ lại row
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// HardDelete xóa hẳn row (admin only)
	HardDelete(ctx context.Context, id uuid.UUID) error

	// List trả về trang kết quả + tổng số row khớp filter
	List(ctx context.Context, req ListPropertiesRequest) ([]Property, int, error)

	// IncrementViews tăng view counter nguyên tử, không đọc-rồi-ghi
	IncrementViews(ctx context.Context, id uuid.UUID) error

	UpdateVerification(ctx context.Context, id uuid.UUID, verified bool, verifiedBy *uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	Statistics(ctx context.Context) (*Statistics, error)
}
