package usecase_test

import (
	"context"
	"testing"

	"farmmarket/internal/domain/model"
	repo "farmmarket/internal/repository"
	"farmmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListAvailable(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ListByFarmerID(ctx context.Context, farmerID int64) ([]model.Product, error) {
	args := m.Called(ctx, farmerID)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func TestProductUsecase_ListAvailable(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	farmer := &model.User{ID: 2, Name: "Green Acres", Email: "farm@example.com"}
	repoMock.On("ListAvailable", mock.Anything).Return([]model.Product{
		{ID: 10, FarmerID: 2, Name: "Tomatoes", Price: 399, Quantity: 50, Unit: "kg", IsAvailable: true, Farmer: farmer},
	}, nil)

	out, err := uc.ListAvailableProducts(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Tomatoes", out[0].Name)
	assert.NotNil(t, out[0].Farmer)
	assert.Equal(t, "Green Acres", out[0].Farmer.Name)
}

func TestProductUsecase_ListMyProducts_IncludesHidden(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	repoMock.On("ListByFarmerID", mock.Anything, int64(2)).Return([]model.Product{
		{ID: 10, FarmerID: 2, Name: "Tomatoes", IsAvailable: true},
		{ID: 11, FarmerID: 2, Name: "Winter squash", IsAvailable: false},
	}, nil)

	out, err := uc.ListMyProducts(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, out, 2)
	assert.False(t, out[1].IsAvailable)

	repoMock.AssertNotCalled(t, "ListAvailable", mock.Anything)
}

func TestProductUsecase_Create_Success(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	repoMock.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.FarmerID == 2 && p.Name == "Tomatoes" && p.Price == 399 && p.IsAvailable
	})).Return(model.Product{ID: 10, FarmerID: 2, Name: "Tomatoes", Price: 399, Quantity: 50, Unit: "kg", IsAvailable: true}, nil)

	out, err := uc.CreateProduct(context.Background(), 2, usecase.CreateProductInput{
		Name:     "  Tomatoes ", //前後の空白は落とす
		Price:    399,
		Quantity: 50,
		Unit:     "kg",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	assert.True(t, out.IsAvailable)
}

func TestProductUsecase_Create_Validation(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	cases := []struct {
		name string
		in   usecase.CreateProductInput
	}{
		{"empty name", usecase.CreateProductInput{Name: "  ", Price: 100, Quantity: 1, Unit: "kg"}},
		{"zero price", usecase.CreateProductInput{Name: "Tomatoes", Price: 0, Quantity: 1, Unit: "kg"}},
		{"negative quantity", usecase.CreateProductInput{Name: "Tomatoes", Price: 100, Quantity: -1, Unit: "kg"}},
		{"empty unit", usecase.CreateProductInput{Name: "Tomatoes", Price: 100, Quantity: 1, Unit: " "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateProduct(context.Background(), 2, tc.in)
			assertKind(t, err, usecase.KindInvalidInput)
		})
	}

	repoMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_Update_Success(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	repoMock.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, FarmerID: 2, Name: "Tomatoes", Price: 399, Quantity: 50, Unit: "kg", IsAvailable: true}, nil)
	repoMock.On("Update", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.ID == 10 && p.Price == 450 && !p.IsAvailable
	})).Return(nil)

	out, err := uc.UpdateProduct(context.Background(), 2, 10, usecase.UpdateProductInput{
		Name:        "Tomatoes",
		Price:       450,
		Quantity:    30,
		Unit:        "kg",
		IsAvailable: false,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(450), out.Price)
	assert.False(t, out.IsAvailable)
}

func TestProductUsecase_Update_NotOwnerForbidden(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	repoMock.On("FindByID", mock.Anything, int64(10)).
		Return(model.Product{ID: 10, FarmerID: 2}, nil)

	_, err := uc.UpdateProduct(context.Background(), 99, 10, usecase.UpdateProductInput{
		Name: "Tomatoes", Price: 450, Quantity: 30, Unit: "kg",
	})
	assertKind(t, err, usecase.KindForbidden)

	repoMock.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductUsecase_Update_NotFound(t *testing.T) {
	repoMock := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(repoMock)

	repoMock.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.UpdateProduct(context.Background(), 2, 404, usecase.UpdateProductInput{
		Name: "Tomatoes", Price: 450, Quantity: 30, Unit: "kg",
	})
	assertKind(t, err, usecase.KindNotFound)
}
