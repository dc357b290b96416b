package favorite

import (
	"time"

	"github.com/google/uuid"
)

// Favorite - tin đăng user đã lưu
// Cặp (user_id, property_id) là unique - một user chỉ lưu một tin một lần
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	PropertyID uuid.UUID `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}
