package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"farmmarket/internal/domain/model"
	repo "farmmarket/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ProductOutput struct {
	ID          int64              `json:"id"`
	FarmerID    int64              `json:"farmerId"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Price       int64              `json:"price"`
	Quantity    int64              `json:"quantity"`
	Unit        string             `json:"unit"`
	Category    string             `json:"category"`
	IsAvailable bool               `json:"isAvailable"`
	ImageURL    string             `json:"imageUrl"`
	CreatedAt   time.Time          `json:"createdAt"`
	Farmer      *model.UserSummary `json:"farmer,omitempty"`
}

func toProductOutput(p model.Product) ProductOutput {
	out := ProductOutput{
		ID:          p.ID,
		FarmerID:    p.FarmerID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Unit:        p.Unit,
		Category:    p.Category,
		IsAvailable: p.IsAvailable,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if p.Farmer != nil {
		s := p.Farmer.Summary()
		out.Farmer = &s
	}
	return out
}

func toProductOutputs(products []model.Product) []ProductOutput {
	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs
}

// 公開中の商品一覧。認証不要。
func (u *ProductUsecase) ListAvailableProducts(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.productRepo.ListAvailable(ctx)
	if err != nil {
		return []ProductOutput{}, NewAppError(KindInternal, "db error")
	}
	return toProductOutputs(products), nil
}

// 農家自身の商品一覧（非公開も含む）。
func (u *ProductUsecase) ListMyProducts(ctx context.Context, farmerID int64) ([]ProductOutput, error) {
	if farmerID <= 0 {
		return []ProductOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}

	products, err := u.productRepo.ListByFarmerID(ctx, farmerID)
	if err != nil {
		return []ProductOutput{}, NewAppError(KindInternal, "db error")
	}
	return toProductOutputs(products), nil
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Quantity    int64
	Unit        string
	Category    string
	ImageURL    string
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, farmerID int64, in CreateProductInput) (ProductOutput, error) {
	if farmerID <= 0 {
		return ProductOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return ProductOutput{}, NewAppError(KindInvalidInput, "name required")
	}
	if in.Price <= 0 {
		return ProductOutput{}, NewAppError(KindInvalidInput, "price must be > 0")
	}
	if in.Quantity < 0 {
		return ProductOutput{}, NewAppError(KindInvalidInput, "quantity must be >= 0")
	}
	if strings.TrimSpace(in.Unit) == "" {
		return ProductOutput{}, NewAppError(KindInvalidInput, "unit required")
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		FarmerID:    farmerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Unit:        strings.TrimSpace(in.Unit),
		Category:    in.Category,
		IsAvailable: true,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		return ProductOutput{}, NewAppError(KindInternal, "db error")
	}
	return toProductOutput(p), nil
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       int64
	Quantity    int64
	Unit        string
	Category    string
	IsAvailable bool
	ImageURL    string
}

// 自分の商品だけ更新できる。
func (u *ProductUsecase) UpdateProduct(ctx context.Context, farmerID int64, productID int64, in UpdateProductInput) (ProductOutput, error) {
	if farmerID <= 0 {
		return ProductOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return ProductOutput{}, NewAppError(KindInvalidInput, "invalid product id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return ProductOutput{}, NewAppError(KindInvalidInput, "name required")
	}
	if in.Price <= 0 {
		return ProductOutput{}, NewAppError(KindInvalidInput, "price must be > 0")
	}
	if in.Quantity < 0 {
		return ProductOutput{}, NewAppError(KindInvalidInput, "quantity must be >= 0")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductOutput{}, NewAppError(KindNotFound, "product not found")
	}
	if err != nil {
		return ProductOutput{}, NewAppError(KindInternal, "db error")
	}
	if p.FarmerID != farmerID {
		return ProductOutput{}, NewAppError(KindForbidden, "forbidden")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.Quantity = in.Quantity
	p.Unit = strings.TrimSpace(in.Unit)
	p.Category = in.Category
	p.IsAvailable = in.IsAvailable
	p.ImageURL = in.ImageURL

	if err := u.productRepo.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductOutput{}, NewAppError(KindNotFound, "product not found")
		}
		return ProductOutput{}, NewAppError(KindInternal, "db error")
	}
	return toProductOutput(p), nil
}
