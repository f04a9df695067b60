package repository

import (
	"context"

	"farmmarket/internal/domain/model"
)

type NegotiationRepository interface {
	Create(ctx context.Context, n model.Negotiation) (int64, error)

	// Customer / Product / Product.Farmer を含めて返す。
	FindByID(ctx context.Context, id int64) (model.Negotiation, error)

	// 顧客が作った交渉。新しい順。
	ListByCustomerID(ctx context.Context, customerID int64) ([]model.Negotiation, error)

	// 農家の商品に対する交渉。新しい順。
	ListByFarmerID(ctx context.Context, farmerID int64) ([]model.Negotiation, error)

	UpdateStatus(ctx context.Context, id int64, status model.NegotiationStatus) error
}
