package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"batdongsan-backend/internal/domains/property"
	"batdongsan-backend/internal/domains/user"
)

// propertyService implement property.Service interface
type propertyService struct {
	repo property.Repository
}

func NewPropertyService(repo property.Repository) property.Service {
	return &propertyService{repo: repo}
}

// Tin đăng mặc định hết hạn sau 30 ngày
const defaultListingTTL = 30 * 24 * time.Hour

// ========================================
// PUBLIC OPERATIONS
// ========================================

// List tìm kiếm tin công khai - chỉ tin active
func (s *propertyService) List(ctx context.Context, req property.ListPropertiesRequest) (*property.ListPropertiesResponse, error) {
	req.IncludeInactive = false

	properties, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	return buildListResponse(properties, total, req.Page, req.Limit), nil
}

// Get xem chi tiết tin và tăng view counter.
// View tăng cho mọi lượt xem, kể cả chủ tin - không debounce.
func (s *propertyService) Get(ctx context.Context, id uuid.UUID) (*property.PropertyDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		// View counter lỗi không chặn response
		log.Warn().Err(err).Str("property_id", id.String()).Msg("Failed to increment views")
	} else {
		p.Views++
	}

	dto := p.ToDTO()
	return &dto, nil
}

// ListByOwner xem các tin công khai của một chủ tin
func (s *propertyService) ListByOwner(ctx context.Context, ownerID uuid.UUID, req property.ListPropertiesRequest) (*property.ListPropertiesResponse, error) {
	req.OwnerID = &ownerID
	req.IncludeInactive = false

	properties, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	return buildListResponse(properties, total, req.Page, req.Limit), nil
}

// ========================================
// AUTHENTICATED OPERATIONS
// ========================================

// Create đăng tin mới - chỉ agent và admin
func (s *propertyService) Create(ctx context.Context, actor *user.User, req property.CreatePropertyRequest) (*property.PropertyDTO, error) {
	if !actor.Role.CanPostListing() {
		return nil, property.ErrForbidden
	}

	now := time.Now()

	p := &property.Property{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		PriceNegotiable: req.PriceNegotiable,
		Area:            req.Area,
		Address:         req.Address,
		Type:            req.Type,
		ListingType:     req.ListingType,
		Status:          property.StatusAvailable,
		Direction:       req.Direction,
		Features:        req.Features,
		Images:          req.Images,
		VideoURL:        req.VideoURL,
		Contact:         req.Contact,
		OwnerID:         actor.ID,
		Views:           0,
		IsActive:        true,
		Priority:        0,
		IsVerified:      false,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	expiresAt := now.Add(defaultListingTTL)
	if req.ExpiresAt != nil {
		if parsed, err := time.Parse(time.RFC3339, *req.ExpiresAt); err == nil && parsed.After(now) {
			expiresAt = parsed
		}
	}
	p.ExpiresAt = &expiresAt

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info().
		Str("property_id", p.ID.String()).
		Str("owner_id", actor.ID.String()).
		Str("type", string(p.Type)).
		Msg("Property created")

	dto := p.ToDTO()
	return &dto, nil
}

// Update sửa tin - owner hoặc admin.
// NotFound được check TRƯỚC ownership để không lộ tin nào tồn tại.
func (s *propertyService) Update(ctx context.Context, actor *user.User, id uuid.UUID, req property.UpdatePropertyRequest) (*property.PropertyDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canMutate(actor, p) {
		return nil, property.ErrForbidden
	}

	applyPatch(p, req)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	dto := p.ToDTO()
	return &dto, nil
}

// Delete gỡ tin - owner hoặc admin.
// Mặc định soft-deactivate; hard=true xóa hẳn, chỉ admin.
func (s *propertyService) Delete(ctx context.Context, actor *user.User, id uuid.UUID, hard bool) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !canMutate(actor, p) {
		return property.ErrForbidden
	}

	if hard {
		if actor.Role != user.RoleAdmin {
			return property.ErrForbidden
		}
		return s.repo.HardDelete(ctx, id)
	}

	return s.repo.SoftDelete(ctx, id)
}

// MyProperties danh sách tin của chính mình, gồm cả tin đã gỡ
func (s *propertyService) MyProperties(ctx context.Context, ownerID uuid.UUID, req property.ListPropertiesRequest) (*property.ListPropertiesResponse, error) {
	req.OwnerID = &ownerID
	req.IncludeInactive = true

	properties, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	return buildListResponse(properties, total, req.Page, req.Limit), nil
}

// ========================================
// ADMIN OPERATIONS
// ========================================

// Verify admin duyệt tin, lưu lại ai duyệt
func (s *propertyService) Verify(ctx context.Context, adminID, id uuid.UUID) (*property.PropertyDTO, error) {
	if err := s.repo.UpdateVerification(ctx, id, true, &adminID); err != nil {
		return nil, err
	}
	return s.fetchDTO(ctx, id)
}

// Unverify admin bỏ duyệt tin
func (s *propertyService) Unverify(ctx context.Context, id uuid.UUID) (*property.PropertyDTO, error) {
	if err := s.repo.UpdateVerification(ctx, id, false, nil); err != nil {
		return nil, err
	}
	return s.fetchDTO(ctx, id)
}

func (s *propertyService) GetStatistics(ctx context.Context) (*property.Statistics, error) {
	return s.repo.Statistics(ctx)
}

// ========================================
// HELPERS
// ========================================

// canMutate: chủ tin hoặc admin
func canMutate(actor *user.User, p *property.Property) bool {
	return p.IsOwnedBy(actor.ID) || actor.Role == user.RoleAdmin
}

// applyPatch merge các field non-nil của patch vào entity
func applyPatch(p *property.Property, req property.UpdatePropertyRequest) {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.PriceNegotiable != nil {
		p.PriceNegotiable = *req.PriceNegotiable
	}
	if req.Area != nil {
		p.Area = *req.Area
	}
	if req.Address != nil {
		p.Address = *req.Address
	}
	if req.Type != nil {
		p.Type = *req.Type
	}
	if req.ListingType != nil {
		p.ListingType = *req.ListingType
	}
	if req.Status != nil {
		p.Status = *req.Status
	}
	if req.Direction != nil {
		p.Direction = req.Direction
	}
	if req.Features != nil {
		p.Features = *req.Features
	}
	if req.Images != nil {
		p.Images = req.Images
	}
	if req.VideoURL != nil {
		p.VideoURL = req.VideoURL
	}
	if req.Contact != nil {
		p.Contact = *req.Contact
	}
}

func (s *propertyService) fetchDTO(ctx context.Context, id uuid.UUID) (*property.PropertyDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := p.ToDTO()
	return &dto, nil
}

func buildListResponse(properties []property.Property, total, page, limit int) *property.ListPropertiesResponse {
	dtos := make([]property.PropertyDTO, 0, len(properties))
	for i := range properties {
		dtos = append(dtos, properties[i].ToDTO())
	}

	return &property.ListPropertiesResponse{
		Properties: dtos,
		Pagination: property.NewPaginationMeta(total, page, limit),
	}
}
