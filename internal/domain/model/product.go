package model

import (
	"time"

	"gorm.io/gorm"
)

// 農家が出品する農産物。
// Priceは最小通貨単位の整数（浮動小数は使わない）。
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FarmerID    int64          `gorm:"not null;index" json:"farmerId"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       int64          `gorm:"not null" json:"price"`
	Quantity    int64          `gorm:"not null" json:"quantity"`
	Unit        string         `gorm:"type:varchar(50);not null" json:"unit"`
	Category    string         `gorm:"type:varchar(100)" json:"category"`
	IsAvailable bool           `gorm:"not null;default:true" json:"isAvailable"`
	ImageURL    string         `gorm:"type:varchar(500)" json:"imageUrl"`
	Farmer      *User          `gorm:"foreignKey:FarmerID" json:"-"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
