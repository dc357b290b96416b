package property

import (
	"context"

	"github.com/google/uuid"

	"batdongsan-backend/internal/domains/user"
)

// Service định nghĩa business logic layer contract
type Service interface {
	// Public
	List(ctx context.Context, req ListPropertiesRequest) (*ListPropertiesResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*PropertyDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, req ListPropertiesRequest) (*ListPropertiesResponse, error)

	// Authenticated
	Create(ctx context.Context, actor *user.User, req CreatePropertyRequest) (*PropertyDTO, error)
	Update(ctx context.Context, actor *user.User, id uuid.UUID, req UpdatePropertyRequest) (*PropertyDTO, error)
	Delete(ctx context.Context, actor *user.User, id uuid.UUID, hard bool) error
	MyProperties(ctx context.Context, ownerID uuid.UUID, req ListPropertiesRequest) (*ListPropertiesResponse, error)

	// Admin
	Verify(ctx context.Context, adminID, id uuid.UUID) (*PropertyDTO, error)
	Unverify(ctx context.Context, id uuid.UUID) (*PropertyDTO, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}
