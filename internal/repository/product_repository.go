package repository

import (
	"context"
	"errors"

	"farmmarket/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 公開中（is_available=true）の商品を新しい順で返す。Farmerを含む。
	ListAvailable(ctx context.Context) ([]model.Product, error)

	// 農家自身の商品を新しい順で返す。
	ListByFarmerID(ctx context.Context, farmerID int64) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
}
