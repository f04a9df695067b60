package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farmmarket/internal/domain/model"
	repo "farmmarket/internal/repository"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type OrderItemInput struct {
	ProductID int64
	Quantity  int64
}

type PlaceOrderInput struct {
	Items []OrderItemInput
	Notes string
}

type OrderItemOutput struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID         int64              `json:"id"`
	CustomerID int64              `json:"customerId"`
	FarmerID   int64              `json:"farmerId"`
	Status     string             `json:"status"`
	Total      int64              `json:"total"`
	Notes      string             `json:"notes"`
	CreatedAt  time.Time          `json:"createdAt"`
	Customer   *model.UserSummary `json:"customer,omitempty"`
	Farmer     *model.UserSummary `json:"farmer,omitempty"`
	Items      []OrderItemOutput  `json:"items"`
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	out := OrderOutput{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		FarmerID:   o.FarmerID,
		Status:     string(o.Status),
		Total:      o.TotalPrice,
		Notes:      o.Notes,
		CreatedAt:  o.CreatedAt,
		Items:      items,
	}
	if o.Customer != nil {
		s := o.Customer.Summary()
		out.Customer = &s
	}
	if o.Farmer != nil {
		s := o.Farmer.Summary()
		out.Farmer = &s
	}
	return out
}

// 注文作成。検証・在庫減算・注文insert・明細insertを1トランザクションで行う。
// 途中で失敗したら全てロールバックされ、在庫も注文も変化しない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, customerID int64, in PlaceOrderInput) (OrderOutput, error) {
	if customerID <= 0 {
		return OrderOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewAppError(KindInvalidInput, "order items required")
	}
	for _, item := range in.Items {
		if item.ProductID <= 0 {
			return OrderOutput{}, NewAppError(KindInvalidInput, "invalid product id")
		}
		if item.Quantity < 1 {
			return OrderOutput{}, NewAppError(KindInvalidInput, "item quantity must be >= 1")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var farmerID int64
		var total int64
		orderItems := make([]model.OrderItem, 0, len(in.Items))

		for _, item := range in.Items {
			p, err := r.Products().FindByID(ctx, item.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return NewAppError(KindUnavailable,
					fmt.Sprintf("product %d is not available", item.ProductID))
			}
			if err != nil {
				return NewAppError(KindInternal, "db error")
			}
			if !p.IsAvailable {
				return NewAppError(KindUnavailable,
					fmt.Sprintf("product %d is not available", item.ProductID))
			}

			//1注文は1農家。混在カートは明示的に拒否する。
			if farmerID == 0 {
				farmerID = p.FarmerID
			} else if p.FarmerID != farmerID {
				return NewAppError(KindInvalidInput, "all items must belong to the same farmer")
			}

			//在庫減算（足りないならfalse）。同時注文でも売り越さない。
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return NewAppError(KindInternal, "db error")
			}
			if !ok {
				return NewAppError(KindInsufficientStock,
					fmt.Sprintf("insufficient stock for %s", p.Name))
			}

			//名前と単価は注文時点のスナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           item.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            item.Quantity,
			})

			total += p.Price * item.Quantity
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			CustomerID: customerID,
			FarmerID:   farmerID,
			Status:     model.OrderStatusPending,
			TotalPrice: total,
			Notes:      in.Notes,
		})
		if err != nil {
			return NewAppError(KindInternal, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewAppError(KindInternal, "db error")
		}

		created, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return NewAppError(KindInternal, "db error")
		}
		out = toOrderOutput(created)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// 顧客は自分の注文、農家は自分宛の注文だけが見える。
func (u *OrderUsecase) ListOrders(ctx context.Context, userID int64, role model.Role) ([]OrderOutput, error) {
	if userID <= 0 {
		return []OrderOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var orders []model.Order
		var err error
		switch role {
		case model.RoleCustomer:
			orders, err = r.Orders().ListByCustomerID(ctx, userID)
		case model.RoleFarmer:
			orders, err = r.Orders().ListByFarmerID(ctx, userID)
		default:
			return NewAppError(KindForbidden, "forbidden")
		}
		if err != nil {
			return NewAppError(KindInternal, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// ステータス遷移。遷移表にない遷移は拒否する。
// PENDINGからの拒否・キャンセルは同じトランザクションで在庫を戻す。
func (u *OrderUsecase) TransitionOrder(ctx context.Context, userID int64, role model.Role, orderID int64, next model.OrderStatus) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewAppError(KindUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewAppError(KindInvalidInput, "invalid id")
	}
	if !next.Valid() {
		return OrderOutput{}, NewAppError(KindInvalidInput, "invalid status")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewAppError(KindNotFound, "order not found")
		}
		if err != nil {
			return NewAppError(KindInternal, "db error")
		}

		switch role {
		case model.RoleFarmer:
			if o.FarmerID != userID {
				return NewAppError(KindForbidden, "forbidden")
			}
		case model.RoleCustomer:
			if o.CustomerID != userID {
				return NewAppError(KindForbidden, "forbidden")
			}
		default:
			return NewAppError(KindForbidden, "forbidden")
		}

		if !o.Status.CanTransitionTo(next) {
			return NewAppError(KindConflict,
				fmt.Sprintf("cannot transition order from %s to %s", o.Status, next))
		}
		if !o.Status.TransitionAllowedFor(next, role) {
			return NewAppError(KindForbidden, "forbidden")
		}

		//成立しなかった注文の分は在庫に戻す
		if next == model.OrderStatusRejected || next == model.OrderStatusCancelled {
			for _, it := range o.Items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return NewAppError(KindInternal, "db error")
				}
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return NewAppError(KindInternal, "db error")
		}

		o.Status = next
		out = toOrderOutput(o)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}
