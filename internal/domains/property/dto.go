package property

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Số điện thoại liên hệ: 10-11 chữ số
var vnPhoneRegex = regexp.MustCompile(`^[0-9]{10,11}$`)

// ========================================
// CREATE / UPDATE DTOs
// ========================================

// CreatePropertyRequest - đăng tin mới
type CreatePropertyRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	PriceNegotiable bool            `json:"priceNegotiable"`
	Area            float64         `json:"area" binding:"required"`
	Address         Address         `json:"address" binding:"required"`
	Type            PropertyType    `json:"type" binding:"required"`
	ListingType     ListingType     `json:"listingType" binding:"required"`
	Direction       *Direction      `json:"direction,omitempty"`
	Features        Features        `json:"features"`
	Images          []string        `json:"images" binding:"required"`
	VideoURL        *string         `json:"videoUrl,omitempty"`
	Contact         Contact         `json:"contact" binding:"required"`
	ExpiresAt       *string         `json:"expiresAt,omitempty"`
}

func (r CreatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(10, 200).Error("title must be 10-200 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("description is required"),
			validation.Length(20, 2000).Error("description must be 20-2000 characters"),
		),
		validation.Field(&r.Price,
			validation.By(validatePositiveDecimal("price")),
		),
		validation.Field(&r.Area,
			validation.Required.Error("area is required"),
			validation.Min(0.01).Error("area must be greater than 0"),
		),
		validation.Field(&r.Address, validation.Required),
		validation.Field(&r.Type,
			validation.Required.Error("type is required"),
			validation.By(validatePropertyType),
		),
		validation.Field(&r.ListingType,
			validation.Required.Error("listingType is required"),
			validation.By(validateListingType),
		),
		validation.Field(&r.Direction,
			validation.By(validateDirection),
		),
		validation.Field(&r.Images,
			validation.Required.Error("images must contain at least one image"),
			validation.Length(1, 20).Error("images must contain 1-20 images"),
			validation.Each(is.URL.Error("image must be a valid URL")),
		),
		validation.Field(&r.VideoURL,
			validation.When(r.VideoURL != nil && *r.VideoURL != "", validation.By(func(interface{}) error {
				return validation.Validate(*r.VideoURL, is.URL)
			})),
		),
		validation.Field(&r.Contact, validation.By(validateContact)),
	)
}

// UpdatePropertyRequest - sửa tin, mọi field đều optional (patch)
type UpdatePropertyRequest struct {
	Title           *string          `json:"title,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	PriceNegotiable *bool            `json:"priceNegotiable,omitempty"`
	Area            *float64         `json:"area,omitempty"`
	Address         *Address         `json:"address,omitempty"`
	Type            *PropertyType    `json:"type,omitempty"`
	ListingType     *ListingType     `json:"listingType,omitempty"`
	Status          *Status          `json:"status,omitempty"`
	Direction       *Direction       `json:"direction,omitempty"`
	Features        *Features        `json:"features,omitempty"`
	Images          []string         `json:"images,omitempty"`
	VideoURL        *string          `json:"videoUrl,omitempty"`
	Contact         *Contact         `json:"contact,omitempty"`
}

func (r UpdatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.Title, validation.Required, validation.Length(10, 200))
			})),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil, validation.By(func(interface{}) error {
				return validation.Validate(*r.Description, validation.Required, validation.Length(20, 2000))
			})),
		),
		validation.Field(&r.Price,
			validation.When(r.Price != nil, validation.By(func(interface{}) error {
				if r.Price.Sign() <= 0 {
					return validation.NewError("validation_price", "price must be greater than 0")
				}
				return nil
			})),
		),
		validation.Field(&r.Area,
			validation.When(r.Area != nil, validation.By(func(interface{}) error {
				if *r.Area <= 0 {
					return validation.NewError("validation_area", "area must be greater than 0")
				}
				return nil
			})),
		),
		validation.Field(&r.Type,
			validation.When(r.Type != nil, validation.By(func(interface{}) error {
				if !r.Type.IsValid() {
					return validation.NewError("validation_type", "invalid property type")
				}
				return nil
			})),
		),
		validation.Field(&r.ListingType,
			validation.When(r.ListingType != nil, validation.By(func(interface{}) error {
				if !r.ListingType.IsValid() {
					return validation.NewError("validation_listing_type", "invalid listing type")
				}
				return nil
			})),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != nil, validation.By(func(interface{}) error {
				if !r.Status.IsValid() {
					return validation.NewError("validation_status", "invalid status")
				}
				return nil
			})),
		),
		validation.Field(&r.Images,
			validation.When(r.Images != nil, validation.Length(1, 20).Error("images must contain 1-20 images")),
		),
	)
}

// ========================================
// LIST / FILTER DTOs
// ========================================

// ListPropertiesRequest - bộ lọc tìm kiếm + phân trang
type ListPropertiesRequest struct {
	Type         string `form:"type"`
	ListingType  string `form:"listingType"`
	Status       string `form:"status"`
	City         string `form:"city"`
	District     string `form:"district"`
	Ward         string `form:"ward"`
	MinPrice     string `form:"minPrice"`
	MaxPrice     string `form:"maxPrice"`
	MinArea      string `form:"minArea"`
	MaxArea      string `form:"maxArea"`
	MinBedrooms  *int   `form:"minBedrooms"`
	MinBathrooms *int   `form:"minBathrooms"`
	Search       string `form:"search"` // Tìm trong title + description
	Page         int    `form:"page"`
	Limit        int    `form:"limit"`
	SortBy       string `form:"sort"`
	SortOrder    string `form:"order"`

	// Set bởi service, không bind từ query.
	// Owner/admin xem được cả tin inactive.
	OwnerID         *uuid.UUID `form:"-"`
	IncludeInactive bool       `form:"-"`
}

// SetDefaults gán giá trị mặc định cho phân trang và sort
func (r *ListPropertiesRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 10
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
	if r.SortBy == "" {
		r.SortBy = "created_at"
	}
	if r.SortOrder == "" {
		r.SortOrder = "desc"
	}
}

func (r ListPropertiesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Type,
			validation.When(r.Type != "", validation.By(func(interface{}) error {
				if !PropertyType(r.Type).IsValid() {
					return validation.NewError("validation_type", "invalid property type")
				}
				return nil
			})),
		),
		validation.Field(&r.ListingType,
			validation.When(r.ListingType != "", validation.In("sale", "rent")),
		),
		validation.Field(&r.Status,
			validation.When(r.Status != "", validation.By(func(interface{}) error {
				if !Status(r.Status).IsValid() {
					return validation.NewError("validation_status", "invalid status")
				}
				return nil
			})),
		),
		validation.Field(&r.MinPrice, validation.When(r.MinPrice != "", is.Float)),
		validation.Field(&r.MaxPrice, validation.When(r.MaxPrice != "", is.Float)),
		validation.Field(&r.MinArea, validation.When(r.MinArea != "", is.Float)),
		validation.Field(&r.MaxArea, validation.When(r.MaxArea != "", is.Float)),
		validation.Field(&r.SortBy,
			validation.In("created_at", "price", "area", "views").Error("sort must be one of: created_at, price, area, views"),
		),
		validation.Field(&r.SortOrder,
			validation.In("asc", "desc"),
		),
	)
}

// PropertyDTO - public representation của tin đăng
type PropertyDTO struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	PriceNegotiable bool            `json:"priceNegotiable"`
	Area            float64         `json:"area"`
	Address         Address         `json:"address"`
	Type            PropertyType    `json:"type"`
	ListingType     ListingType     `json:"listingType"`
	Status          Status          `json:"status"`
	Direction       *Direction      `json:"direction,omitempty"`
	Features        Features        `json:"features"`
	Images          []string        `json:"images"`
	VideoURL        *string         `json:"videoUrl,omitempty"`
	Contact         Contact         `json:"contact"`
	OwnerID         uuid.UUID       `json:"ownerId"`
	Views           int             `json:"views"`
	IsActive        bool            `json:"isActive"`
	Priority        int             `json:"priority"`
	IsVerified      bool            `json:"isVerified"`
	ExpiresAt       *string         `json:"expiresAt,omitempty"`
	CreatedAt       string          `json:"createdAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// ToDTO converts Property entity to PropertyDTO.
// Ẩn số điện thoại khi owner tắt showPhone.
func (p *Property) ToDTO() PropertyDTO {
	dto := PropertyDTO{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Price:           p.Price,
		PriceNegotiable: p.PriceNegotiable,
		Area:            p.Area,
		Address:         p.Address,
		Type:            p.Type,
		ListingType:     p.ListingType,
		Status:          p.Status,
		Direction:       p.Direction,
		Features:        p.Features,
		Images:          p.Images,
		VideoURL:        p.VideoURL,
		Contact:         p.Contact,
		OwnerID:         p.OwnerID,
		Views:           p.Views,
		IsActive:        p.IsActive,
		Priority:        p.Priority,
		IsVerified:      p.IsVerified,
		CreatedAt:       p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if p.ExpiresAt != nil {
		s := p.ExpiresAt.Format("2006-01-02T15:04:05Z07:00")
		dto.ExpiresAt = &s
	}
	if !p.Contact.ShowPhone {
		dto.Contact.Phone = ""
	}
	return dto
}

// PaginationMeta - metadata phân trang
type PaginationMeta struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// NewPaginationMeta computes pagination metadata
func NewPaginationMeta(total, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return PaginationMeta{
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNextPage: page*limit < total,
		HasPrevPage: page > 1,
	}
}

// ListPropertiesResponse - danh sách tin + phân trang
type ListPropertiesResponse struct {
	Properties []PropertyDTO  `json:"properties"`
	Pagination PaginationMeta `json:"pagination"`
}

// Statistics - số liệu admin dashboard
type Statistics struct {
	TotalProperties    int `json:"totalProperties"`
	ActiveProperties   int `json:"activeProperties"`
	VerifiedProperties int `json:"verifiedProperties"`
	ForSale            int `json:"forSale"`
	ForRent            int `json:"forRent"`
	TotalViews         int `json:"totalViews"`
}

// ========================================
// VALIDATION HELPERS
// ========================================

func validatePositiveDecimal(field string) validation.RuleFunc {
	return func(value interface{}) error {
		d, ok := value.(decimal.Decimal)
		if !ok {
			return validation.NewError("validation_"+field, field+" must be a number")
		}
		if d.Sign() <= 0 {
			return validation.NewError("validation_"+field, field+" must be greater than 0")
		}
		return nil
	}
}

func validatePropertyType(value interface{}) error {
	t, _ := value.(PropertyType)
	if !t.IsValid() {
		return validation.NewError("validation_type",
			"type must be one of: apartment, house, land, villa, office, commercial, room")
	}
	return nil
}

func validateListingType(value interface{}) error {
	l, _ := value.(ListingType)
	if !l.IsValid() {
		return validation.NewError("validation_listing_type", "listingType must be sale or rent")
	}
	return nil
}

func validateDirection(value interface{}) error {
	d, _ := value.(*Direction)
	if d == nil {
		return nil
	}
	if !d.IsValid() {
		return validation.NewError("validation_direction", "invalid direction")
	}
	return nil
}

func validateContact(value interface{}) error {
	ct, _ := value.(Contact)
	if ct.Phone == "" {
		return validation.NewError("validation_contact", "contact.phone is required")
	}
	if !vnPhoneRegex.MatchString(ct.Phone) {
		return validation.NewError("validation_contact", "contact.phone must be 10-11 digits")
	}
	return nil
}
