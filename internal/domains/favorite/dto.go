package favorite

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"batdongsan-backend/internal/domains/property"
)

// AddFavoriteRequest - lưu tin
type AddFavoriteRequest struct {
	PropertyID uuid.UUID `json:"propertyId" binding:"required"`
}

func (r AddFavoriteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyID,
			validation.Required.Error("propertyId is required"),
			validation.By(func(value interface{}) error {
				if r.PropertyID == uuid.Nil {
					return validation.NewError("validation_property_id", "propertyId is required")
				}
				return nil
			}),
		),
	)
}

// ListFavoritesRequest - phân trang danh sách tin đã lưu
type ListFavoritesRequest struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (r *ListFavoritesRequest) SetDefaults() {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = 10
	}
	if r.Limit > 100 {
		r.Limit = 100
	}
}

// FavoriteDTO - favorite kèm tóm tắt tin đăng
type FavoriteDTO struct {
	ID         uuid.UUID       `json:"id"`
	PropertyID uuid.UUID       `json:"propertyId"`
	CreatedAt  time.Time       `json:"createdAt"`
	Property   PropertySummary `json:"property"`
}

// PropertySummary - thông tin rút gọn của tin cho trang yêu thích
type PropertySummary struct {
	Title       string                `json:"title"`
	Price       decimal.Decimal       `json:"price"`
	Area        float64               `json:"area"`
	City        string                `json:"city"`
	District    string                `json:"district"`
	Type        property.PropertyType `json:"type"`
	ListingType property.ListingType  `json:"listingType"`
	Status      property.Status       `json:"status"`
	Image       *string               `json:"image,omitempty"` // Ảnh đầu tiên
	IsActive    bool                  `json:"isActive"`
}

// ListFavoritesResponse - danh sách + phân trang
type ListFavoritesResponse struct {
	Favorites  []FavoriteDTO           `json:"favorites"`
	Pagination property.PaginationMeta `json:"pagination"`
}
