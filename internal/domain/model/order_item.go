package model

import "time"

// 注文明細。商品名と単価は注文時点のスナップショット。
type OrderItem struct {
	ID                  int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID             int64     `gorm:"not null;index" json:"orderId"`
	ProductID           int64     `gorm:"not null;index" json:"productId"`
	ProductNameSnapshot string    `gorm:"type:varchar(255);not null" json:"productName"`
	UnitPriceSnapshot   int64     `gorm:"not null" json:"unitPrice"`
	Quantity            int64     `gorm:"not null" json:"quantity"`
	CreatedAt           time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
