package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusRejected  OrderStatus = "REJECTED"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// 許可する遷移表。表にないものは全て不正。
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusAccepted, OrderStatusRejected, OrderStatusCancelled},
	OrderStatusAccepted: {OrderStatusCompleted},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// CANCELLEDにできるのは顧客だけ。それ以外の遷移は農家だけ。
func (s OrderStatus) TransitionAllowedFor(next OrderStatus, role Role) bool {
	if next == OrderStatusCancelled {
		return role == RoleCustomer
	}
	return role == RoleFarmer
}

// TotalPriceは作成時点のスナップショット合計。
// 後から商品価格が変わっても注文の合計は変えない。
type Order struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID int64       `gorm:"not null;index" json:"customerId"`
	FarmerID   int64       `gorm:"not null;index" json:"farmerId"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalPrice int64       `gorm:"not null" json:"total"`
	Notes      string      `gorm:"type:text" json:"notes"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
	Customer   *User       `gorm:"foreignKey:CustomerID" json:"-"`
	Farmer     *User       `gorm:"foreignKey:FarmerID" json:"-"`
	CreatedAt  time.Time   `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time   `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
