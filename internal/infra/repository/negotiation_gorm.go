package repository

import (
	"context"
	"errors"

	"farmmarket/internal/domain/model"
	repo "farmmarket/internal/repository"

	"gorm.io/gorm"
)

type NegotiationGormRepository struct {
	db *gorm.DB
}

func NewNegotiationGormRepository(db *gorm.DB) *NegotiationGormRepository {
	return &NegotiationGormRepository{db: db}
}

func (r *NegotiationGormRepository) Create(ctx context.Context, n model.Negotiation) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return 0, err
	}
	return n.ID, nil
}

func (r *NegotiationGormRepository) FindByID(ctx context.Context, id int64) (model.Negotiation, error) {
	var n model.Negotiation
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Product").
		Preload("Product.Farmer").
		First(&n, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Negotiation{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Negotiation{}, err
	}
	return n, nil
}

func (r *NegotiationGormRepository) ListByCustomerID(ctx context.Context, customerID int64) ([]model.Negotiation, error) {
	var items []model.Negotiation
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Preload("Customer").
		Preload("Product").
		Preload("Product.Farmer").
		Order("created_at desc").Order("id desc").
		Find(&items).Error
	if err != nil {
		return []model.Negotiation{}, err
	}
	return items, nil
}

// 農家の商品に対する交渉をproducts経由で絞る。
func (r *NegotiationGormRepository) ListByFarmerID(ctx context.Context, farmerID int64) ([]model.Negotiation, error) {
	var items []model.Negotiation
	err := r.db.WithContext(ctx).
		Joins("JOIN products ON products.id = negotiations.product_id").
		Where("products.farmer_id = ?", farmerID).
		Preload("Customer").
		Preload("Product").
		Preload("Product.Farmer").
		Order("negotiations.created_at desc").Order("negotiations.id desc").
		Find(&items).Error
	if err != nil {
		return []model.Negotiation{}, err
	}
	return items, nil
}

func (r *NegotiationGormRepository) UpdateStatus(ctx context.Context, id int64, status model.NegotiationStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Negotiation{}).
		Where("id = ?", id).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
