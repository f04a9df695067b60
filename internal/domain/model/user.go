package model

import "time"

type Role string

const (
	RoleFarmer   Role = "FARMER"
	RoleCustomer Role = "CUSTOMER"
)

// 登録時のrole検証
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleCustomer
}

type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	Phone        string    `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address      string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 一覧レスポンスに埋める最小限のユーザー情報
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}
