package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string    `gorm:"not null"                 json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	City         string    `json:"city"`
	IsAdmin      bool      `gorm:"not null;default:false"   json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"not null"                 json:"name"`
	Image string `json:"image"`
}

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"not null"                 json:"name"`
	Description string         `gorm:"not null"                 json:"description"`
	Image       string         `json:"image"`
	Images      pq.StringArray `gorm:"type:text[]"              json:"images"`
	Price       float64        `gorm:"not null"                 json:"price"`
	Stock       uint           `gorm:"default:0"                json:"stock"`
	CategoryID  uint           `gorm:"index;not null"           json:"categoryId"`
	Category    *Category      `json:"category,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint     `gorm:"index;not null"            json:"orderId"`
	ProductID uint     `gorm:"not null"                  json:"productId"`
	Quantity  uint     `gorm:"not null;check:quantity>0" json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

type Order struct {
	ID          uint        `gorm:"primaryKey;autoIncrement"  json:"id"`
	Items       []OrderItem `json:"items"`
	Address     string      `gorm:"not null"                  json:"address"`
	City        string      `gorm:"not null"                  json:"city"`
	Phone       string      `gorm:"not null"                  json:"phone"`
	Status      string      `gorm:"not null;default:Pending"  json:"status"`
	TotalPrice  float64     `json:"totalPrice"`
	UserID      uint        `gorm:"index;not null"            json:"userId"`
	User        *User       `json:"user,omitempty"`
	DateOrdered time.Time   `gorm:"autoCreateTime"            json:"dateOrdered"`
}
