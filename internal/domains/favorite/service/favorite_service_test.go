package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"batdongsan-backend/internal/domains/favorite"
	"batdongsan-backend/internal/domains/property"
)

// MockFavoriteRepository là mock implementation của favorite.Repository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, f *favorite.Favorite) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Delete(ctx context.Context, userID, propertyID uuid.UUID) error {
	args := m.Called(ctx, userID, propertyID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID, req favorite.ListFavoritesRequest) ([]favorite.FavoriteDTO, int, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).([]favorite.FavoriteDTO), args.Int(1), args.Error(2)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, propertyID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int, error) {
	args := m.Called(ctx, propertyID)
	return args.Int(0), args.Error(1)
}

// MockPropertyRepository chỉ cần FindByID cho favorite flow
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*property.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) List(ctx context.Context, req property.ListPropertiesRequest) ([]property.Property, int, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]property.Property), args.Int(1), args.Error(2)
}

func (m *MockPropertyRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) UpdateVerification(ctx context.Context, id uuid.UUID, verified bool, verifiedBy *uuid.UUID) error {
	args := m.Called(ctx, id, verified, verifiedBy)
	return args.Error(0)
}

func (m *MockPropertyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status property.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockPropertyRepository) Statistics(ctx context.Context) (*property.Statistics, error) {
	args := m.Called(ctx)
	return args.Get(0).(*property.Statistics), args.Error(1)
}

func activeProperty() *property.Property {
	return &property.Property{
		ID:       uuid.New(),
		Title:    "Cho thuê căn hộ quận 1",
		IsActive: true,
		Status:   property.StatusAvailable,
	}
}

func TestAddFavorite(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	userID := uuid.New()
	p := activeProperty()

	propRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	favRepo.On("Create", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).Return(nil)

	f, err := svc.Add(context.Background(), userID, favorite.AddFavoriteRequest{PropertyID: p.ID})

	require.NoError(t, err)
	assert.Equal(t, userID, f.UserID)
	assert.Equal(t, p.ID, f.PropertyID)
	favRepo.AssertExpectations(t)
}

func TestAddFavoriteDuplicateConflicts(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	userID := uuid.New()
	p := activeProperty()

	propRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	// Lần hai DB trả unique violation đã map sẵn
	favRepo.On("Create", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).
		Return(nil).Once()
	favRepo.On("Create", mock.Anything, mock.AnythingOfType("*favorite.Favorite")).
		Return(favorite.ErrAlreadyFavorited).Once()

	_, err := svc.Add(context.Background(), userID, favorite.AddFavoriteRequest{PropertyID: p.ID})
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), userID, favorite.AddFavoriteRequest{PropertyID: p.ID})
	assert.ErrorIs(t, err, favorite.ErrAlreadyFavorited)
}

func TestAddFavoriteUnknownProperty(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	id := uuid.New()
	propRepo.On("FindByID", mock.Anything, id).Return(nil, property.ErrPropertyNotFound)

	_, err := svc.Add(context.Background(), uuid.New(), favorite.AddFavoriteRequest{PropertyID: id})

	assert.ErrorIs(t, err, property.ErrPropertyNotFound)
	favRepo.AssertNotCalled(t, "Create")
}

func TestAddFavoriteInactiveProperty(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	p := activeProperty()
	p.IsActive = false
	propRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)

	// Tin đã gỡ coi như không tồn tại với người lưu
	_, err := svc.Add(context.Background(), uuid.New(), favorite.AddFavoriteRequest{PropertyID: p.ID})

	assert.ErrorIs(t, err, property.ErrPropertyNotFound)
	favRepo.AssertNotCalled(t, "Create")
}

func TestRemoveFavoriteNotFound(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	userID, propertyID := uuid.New(), uuid.New()
	favRepo.On("Delete", mock.Anything, userID, propertyID).Return(favorite.ErrFavoriteNotFound)

	err := svc.Remove(context.Background(), userID, propertyID)

	assert.ErrorIs(t, err, favorite.ErrFavoriteNotFound)
}

func TestCountForProperty(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	propertyID := uuid.New()
	favRepo.On("CountByProperty", mock.Anything, propertyID).Return(7, nil)

	count, err := svc.CountForProperty(context.Background(), propertyID)

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestListMinePagination(t *testing.T) {
	favRepo := new(MockFavoriteRepository)
	propRepo := new(MockPropertyRepository)
	svc := NewFavoriteService(favRepo, propRepo)

	userID := uuid.New()
	req := favorite.ListFavoritesRequest{Page: 2, Limit: 10}

	favRepo.On("ListByUser", mock.Anything, userID, req).
		Return(make([]favorite.FavoriteDTO, 10), 25, nil)

	resp, err := svc.ListMine(context.Background(), userID, req)

	require.NoError(t, err)
	assert.Equal(t, 25, resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}
