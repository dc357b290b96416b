package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PropertyType - loại bất động sản
type PropertyType string

const (
	TypeApartment  PropertyType = "apartment"
	TypeHouse      PropertyType = "house"
	TypeLand       PropertyType = "land"
	TypeVilla      PropertyType = "villa"
	TypeOffice     PropertyType = "office"
	TypeCommercial PropertyType = "commercial"
	TypeRoom       PropertyType = "room"
)

func (t PropertyType) IsValid() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeLand, TypeVilla, TypeOffice, TypeCommercial, TypeRoom:
		return true
	}
	return false
}

// ListingType - bán hay cho thuê
type ListingType string

const (
	ListingSale ListingType = "sale"
	ListingRent ListingType = "rent"
)

func (l ListingType) IsValid() bool {
	return l == ListingSale || l == ListingRent
}

// Status - trạng thái tin đăng
type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusRented    Status = "rented"
	StatusPending   Status = "pending"
	StatusExpired   Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented, StatusPending, StatusExpired:
		return true
	}
	return false
}

// Direction - hướng nhà (8 hướng)
type Direction string

const (
	DirectionEast      Direction = "east"
	DirectionWest      Direction = "west"
	DirectionSouth     Direction = "south"
	DirectionNorth     Direction = "north"
	DirectionNortheast Direction = "northeast"
	DirectionNorthwest Direction = "northwest"
	DirectionSoutheast Direction = "southeast"
	DirectionSouthwest Direction = "southwest"
)

func (d Direction) IsValid() bool {
	switch d {
	case DirectionEast, DirectionWest, DirectionSouth, DirectionNorth,
		DirectionNortheast, DirectionNorthwest, DirectionSoutheast, DirectionSouthwest:
		return true
	}
	return false
}

// Furniture - tình trạng nội thất
type Furniture string

const (
	FurnitureFull    Furniture = "full"
	FurniturePartial Furniture = "partial"
	FurnitureNone    Furniture = "none"
)

func (f Furniture) IsValid() bool {
	return f == FurnitureFull || f == FurniturePartial || f == FurnitureNone
}

// Address - địa chỉ bất động sản
type Address struct {
	Street    string   `json:"street"`
	Ward      string   `json:"ward"`
	District  string   `json:"district"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// Features - đặc điểm bất động sản
type Features struct {
	Bedrooms   *int       `json:"bedrooms,omitempty"`
	Bathrooms  *int       `json:"bathrooms,omitempty"`
	Floors     *int       `json:"floors,omitempty"`
	Furniture  *Furniture `json:"furniture,omitempty"`
	Parking    *bool      `json:"parking,omitempty"`
	Balcony    *bool      `json:"balcony,omitempty"`
	Elevator   *bool      `json:"elevator,omitempty"`
	FrontWidth *float64   `json:"frontWidth,omitempty"` // mét
}

// Contact - thông tin liên hệ trên tin đăng
type Contact struct {
	Phone     string `json:"phone"`
	Zalo      string `json:"zalo,omitempty"`
	ShowPhone bool   `json:"showPhone"`
}

// Property - tin đăng bất động sản
type Property struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	PriceNegotiable bool            `json:"priceNegotiable"`
	Area            float64         `json:"area"` // m2
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
	Priority        int             `json:"priority"` // 0-10, tin ưu tiên hiện trước
	IsVerified      bool            `json:"isVerified"`
	VerifiedBy      *uuid.UUID      `json:"verifiedBy,omitempty"`
	ExpiresAt       *time.Time      `json:"expiresAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// IsOwnedBy kiểm tra quyền sở hữu tin đăng
func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// IsExpired kiểm tra tin đã hết hạn chưa
func (p *Property) IsExpired() bool {
	return p.ExpiresAt != nil && p.ExpiresAt.Before(time.Now())
}
