package model

import "time"

type NegotiationStatus string

const (
	NegotiationStatusPending   NegotiationStatus = "PENDING"
	NegotiationStatusAccepted  NegotiationStatus = "ACCEPTED"
	NegotiationStatusRejected  NegotiationStatus = "REJECTED"
	NegotiationStatusCountered NegotiationStatus = "COUNTERED"
)

func (s NegotiationStatus) Valid() bool {
	switch s {
	case NegotiationStatusPending, NegotiationStatusAccepted,
		NegotiationStatusRejected, NegotiationStatusCountered:
		return true
	}
	return false
}

// PENDING以外は終端。終端からの遷移は不正。
func (s NegotiationStatus) CanTransitionTo(next NegotiationStatus) bool {
	if s != NegotiationStatusPending {
		return false
	}
	switch next {
	case NegotiationStatusAccepted, NegotiationStatusRejected, NegotiationStatusCountered:
		return true
	}
	return false
}

// 顧客から農家への価格・数量の提案。
// status以外は作成後に変更しない。在庫への副作用もない。
type Negotiation struct {
	ID            int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID    int64             `gorm:"not null;index" json:"customerId"`
	ProductID     int64             `gorm:"not null;index" json:"productId"`
	ProposedPrice int64             `gorm:"not null" json:"proposedPrice"`
	Quantity      int64             `gorm:"not null" json:"quantity"`
	Message       string            `gorm:"type:text" json:"message"`
	Status        NegotiationStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Customer      *User             `gorm:"foreignKey:CustomerID" json:"-"`
	Product       *Product          `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt     time.Time         `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
