package property

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreatePropertyRequest {
	return CreatePropertyRequest{
		Title:       "Bán căn hộ 2PN view sông quận 7",
		Description: "Căn hộ 2 phòng ngủ, 2 WC, nội thất đầy đủ, view sông thoáng mát.",
		Price:       decimal.NewFromInt(2500000000),
		Area:        75.5,
		Address: Address{
			Street:   "Nguyễn Hữu Thọ",
			Ward:     "Tân Hưng",
			District: "Quận 7",
			City:     "Hồ Chí Minh",
		},
		Type:        TypeApartment,
		ListingType: ListingSale,
		Images:      []string{"https://cdn.example.com/photos/1.jpg"},
		Contact: Contact{
			Phone:     "0901234567",
			ShowPhone: true,
		},
	}
}

func TestCreateRequestValid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateRequestRejectsBadPriceAndImages(t *testing.T) {
	req := validCreateRequest()
	req.Price = decimal.NewFromInt(-100)
	req.Area = 50
	req.Images = nil

	err := req.Validate()
	require.Error(t, err)

	// Error message phải nêu đích danh từng field vi phạm
	msg := err.Error()
	assert.Contains(t, msg, "price")
	assert.Contains(t, msg, "images")
	assert.NotContains(t, msg, "area")
}

func TestCreateRequestRejectsZeroPrice(t *testing.T) {
	req := validCreateRequest()
	req.Price = decimal.Zero

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price")
}

func TestCreateRequestRejectsZeroArea(t *testing.T) {
	req := validCreateRequest()
	req.Area = 0

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "area")
}

func TestCreateRequestRejectsUnknownType(t *testing.T) {
	req := validCreateRequest()
	req.Type = PropertyType("castle")

	assert.Error(t, req.Validate())
}

func TestCreateRequestRequiresContactPhone(t *testing.T) {
	req := validCreateRequest()
	req.Contact.Phone = ""

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact")
}

func TestListRequestDefaults(t *testing.T) {
	req := ListPropertiesRequest{}
	req.SetDefaults()

	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 10, req.Limit)
	assert.Equal(t, "created_at", req.SortBy)
	assert.Equal(t, "desc", req.SortOrder)

	req = ListPropertiesRequest{Page: -3, Limit: 5000}
	req.SetDefaults()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 100, req.Limit)
}

func TestListRequestSortWhitelist(t *testing.T) {
	for _, sort := range []string{"created_at", "price", "area", "views"} {
		req := ListPropertiesRequest{SortBy: sort, SortOrder: "asc", Page: 1, Limit: 10}
		assert.NoError(t, req.Validate(), "sort: %s", sort)
	}

	// Column names ngoài whitelist bị từ chối trước khi chạm tới SQL
	for _, sort := range []string{"owner_id", "id; DROP TABLE properties", "priority"} {
		req := ListPropertiesRequest{SortBy: sort, SortOrder: "asc", Page: 1, Limit: 10}
		assert.Error(t, req.Validate(), "sort: %s", sort)
	}
}

func TestPaginationMeta(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty", 0, 1, 10, 0, false, false},
		{"single page", 7, 1, 10, 1, false, false},
		{"exact fit", 20, 1, 10, 2, true, false},
		{"middle page", 35, 2, 10, 4, true, true},
		{"last page partial", 35, 4, 10, 4, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMeta(tt.total, tt.page, tt.limit)

			// totalPages = ceil(total/limit)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNextPage)
			assert.Equal(t, tt.hasPrev, meta.HasPrevPage)
			assert.Equal(t, tt.total, meta.Total)
		})
	}
}

func TestToDTOHidesPhoneWhenShowPhoneOff(t *testing.T) {
	p := Property{
		Contact: Contact{Phone: "0901234567", ShowPhone: false},
		Images:  []string{"https://cdn.example.com/1.jpg"},
	}

	dto := p.ToDTO()
	assert.Empty(t, dto.Contact.Phone)

	p.Contact.ShowPhone = true
	dto = p.ToDTO()
	assert.Equal(t, "0901234567", dto.Contact.Phone)
}
