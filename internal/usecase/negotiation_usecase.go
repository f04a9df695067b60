package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farmmarket/internal/domain/model"
	repo "farmmarket/internal/repository"
)

type NegotiationUsecase struct {
	negotiationRepo repo.NegotiationRepository
	productRepo     repo.ProductRepository
}

// DI
func NewNegotiationUsecase(
	negotiationRepo repo.NegotiationRepository,
	productRepo repo.ProductRepository,
) *NegotiationUsecase {
	return &NegotiationUsecase{
		negotiationRepo: negotiationRepo,
		productRepo:     productRepo,
	}
}

type CreateNegotiationInput struct {
	ProductID     int64
	ProposedPrice int64
	Quantity      int64
	Message       string
}

type NegotiationOutput struct {
	ID            int64              `json:"id"`
	ProductID     int64              `json:"productId"`
	ProposedPrice int64              `json:"proposedPrice"`
	Quantity      int64              `json:"quantity"`
	Message       string             `json:"message"`
	Status        string             `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	Customer      *model.UserSummary `json:"customer,omitempty"`
	Product       *ProductOutput     `json:"product,omitempty"`
}

func toNegotiationOutput(n model.Negotiation) NegotiationOutput {
	out := NegotiationOutput{
		ID:            n.ID,
		ProductID:     n.ProductID,
		ProposedPrice: n.ProposedPrice,
		Quantity:      n.Quantity,
		Message:       n.Message,
		Status:        string(n.Status),
		CreatedAt:     n.CreatedAt,
	}
	if n.Customer != nil {
		s := n.Customer.Summary()
		out.Customer = &s
	}
	if n.Product != nil {
		p := toProductOutput(*n.Product)
		out.Product = &p
	}
	return out
}

// 顧客が商品に価格・数量を提案する。在庫への副作用はない。
func (u *NegotiationUsecase) CreateNegotiation(ctx context.Context, customerID int64, in CreateNegotiationInput) (NegotiationOutput, error) {
	if customerID <= 0 {
		return NegotiationOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return NegotiationOutput{}, NewAppError(KindInvalidInput, "invalid product id")
	}
	if in.ProposedPrice <= 0 {
		return NegotiationOutput{}, NewAppError(KindInvalidInput, "proposed price must be > 0")
	}
	if in.Quantity < 1 {
		return NegotiationOutput{}, NewAppError(KindInvalidInput, "quantity must be >= 1")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return NegotiationOutput{}, NewAppError(KindNotFound, "product not found")
	}
	if err != nil {
		return NegotiationOutput{}, NewAppError(KindInternal, "db error")
	}
	if !p.IsAvailable {
		return NegotiationOutput{}, NewAppError(KindUnavailable, "product not available")
	}

	id, err := u.negotiationRepo.Create(ctx, model.Negotiation{
		CustomerID:    customerID,
		ProductID:     in.ProductID,
		ProposedPrice: in.ProposedPrice,
		Quantity:      in.Quantity,
		Message:       in.Message,
		Status:        model.NegotiationStatusPending,
	})
	if err != nil {
		return NegotiationOutput{}, NewAppError(KindInternal, "db error")
	}

	//顧客・商品・農家を結合した形で返す
	created, err := u.negotiationRepo.FindByID(ctx, id)
	if err != nil {
		return NegotiationOutput{}, NewAppError(KindInternal, "db error")
	}
	return toNegotiationOutput(created), nil
}

// 顧客は自分の交渉、農家は自分の商品への交渉だけが見える。
func (u *NegotiationUsecase) ListNegotiations(ctx context.Context, userID int64, role model.Role) ([]NegotiationOutput, error) {
	if userID <= 0 {
		return []NegotiationOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}

	var items []model.Negotiation
	var err error
	switch role {
	case model.RoleCustomer:
		items, err = u.negotiationRepo.ListByCustomerID(ctx, userID)
	case model.RoleFarmer:
		items, err = u.negotiationRepo.ListByFarmerID(ctx, userID)
	default:
		return []NegotiationOutput{}, NewAppError(KindForbidden, "forbidden")
	}
	if err != nil {
		return []NegotiationOutput{}, NewAppError(KindInternal, "db error")
	}

	outs := make([]NegotiationOutput, 0, len(items))
	for _, n := range items {
		outs = append(outs, toNegotiationOutput(n))
	}
	return outs, nil
}

// ステータス遷移。農家はPENDINGからの任意の遷移、顧客は取り下げ（REJECTED）のみ。
func (u *NegotiationUsecase) TransitionNegotiation(ctx context.Context, userID int64, role model.Role, negotiationID int64, next model.NegotiationStatus) (NegotiationOutput, error) {
	if userID <= 0 {
		return NegotiationOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}
	if negotiationID <= 0 {
		return NegotiationOutput{}, NewAppError(KindInvalidInput, "invalid id")
	}
	if !next.Valid() {
		return NegotiationOutput{}, NewAppError(KindInvalidInput, "invalid status")
	}

	n, err := u.negotiationRepo.FindByID(ctx, negotiationID)
	if errors.Is(err, repo.ErrNotFound) {
		return NegotiationOutput{}, NewAppError(KindNotFound, "negotiation not found")
	}
	if err != nil {
		return NegotiationOutput{}, NewAppError(KindInternal, "db error")
	}

	switch role {
	case model.RoleFarmer:
		if n.Product == nil || n.Product.FarmerID != userID {
			return NegotiationOutput{}, NewAppError(KindForbidden, "forbidden")
		}
	case model.RoleCustomer:
		if n.CustomerID != userID {
			return NegotiationOutput{}, NewAppError(KindForbidden, "forbidden")
		}
		if next != model.NegotiationStatusRejected {
			return NegotiationOutput{}, NewAppError(KindForbidden, "customers may only withdraw a negotiation")
		}
	default:
		return NegotiationOutput{}, NewAppError(KindForbidden, "forbidden")
	}

	if !n.Status.CanTransitionTo(next) {
		return NegotiationOutput{}, NewAppError(KindConflict,
			fmt.Sprintf("cannot transition negotiation from %s to %s", n.Status, next))
	}

	if err := u.negotiationRepo.UpdateStatus(ctx, negotiationID, next); err != nil {
		return NegotiationOutput{}, NewAppError(KindInternal, "db error")
	}

	n.Status = next
	return toNegotiationOutput(n), nil
}
