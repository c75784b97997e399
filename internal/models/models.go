package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	Name         string    `gorm:"not null"         json:"name"`
	Mobile       string    `gorm:"unique;not null"  json:"mobile"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Seller struct {
	ID            uuid.UUID `gorm:"primaryKey"       json:"id"`
	CompanyName   string    `gorm:"not null"         json:"companyname"`
	Owner         string    `gorm:"not null"         json:"owner"`
	OperatingCity string    `json:"operatingcity"`
	Mobile        string    `gorm:"unique;not null"  json:"mobile"`
	PasswordHash  string    `gorm:"not null"         json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"primaryKey"      json:"id"`
	SellerID    uuid.UUID `gorm:"index"           json:"sellerId"`
	Name        string    `gorm:"not null"        json:"name"`
	Price       float64   `gorm:"not null"        json:"price"`
	Rating      float64   `gorm:"default:0"       json:"rating"`
	RatingCount uint      `gorm:"default:0"       json:"ratingCount"`
	Description string    `gorm:"not null"        json:"productDescription"`
	About       string    `json:"about"`
	Category    string    `gorm:"index"           json:"category"`
	Image       string    `json:"image"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Cart is one-per-user. TotalAmount is a cache of the last recompute from
// live product prices, never trusted as authoritative.
type Cart struct {
	ID          uuid.UUID  `gorm:"primaryKey"              json:"id"`
	UserID      uuid.UUID  `gorm:"uniqueIndex;not null"    json:"userId"`
	Items       []CartItem `gorm:"foreignKey:CartID"       json:"items"`
	TotalAmount float64    `gorm:"default:0"               json:"totalAmount"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                             json:"id"`
	CartID    uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null"  json:"-"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_cart_product;not null"  json:"productId"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"             json:"quantity"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is embedded into the order as a frozen copy.
type ShippingAddress struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"primaryKey"                    json:"id"`
	UserID          uuid.UUID       `gorm:"index;not null"                json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"            json:"items"`
	TotalAmount     float64         `gorm:"not null"                      json:"totalAmount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	Status          string          `gorm:"not null;default:pending"      json:"status"`
	PaymentStatus   string          `gorm:"not null;default:pending"      json:"paymentStatus"`
	OrderDate       time.Time       `gorm:"index"                         json:"orderDate"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a snapshot of the product at order time. Later product edits
// or deletes must not alter it.
type OrderItem struct {
	ID        uuid.UUID `gorm:"primaryKey"      json:"id"`
	OrderID   uuid.UUID `gorm:"index;not null"  json:"-"`
	ProductID uuid.UUID `gorm:"index;not null"  json:"productId"`
	Name      string    `gorm:"not null"        json:"name"`
	Price     float64   `gorm:"not null"        json:"price"`
	Quantity  uint      `gorm:"not null"        json:"quantity"`
	Image     string    `json:"image"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Address struct {
	ID        uuid.UUID `gorm:"primaryKey"      json:"id"`
	UserID    uuid.UUID `gorm:"index;not null"  json:"userId"`
	Name      string    `gorm:"not null"        json:"name"`
	Mobile    string    `gorm:"not null"        json:"mobile"`
	Address   string    `gorm:"not null"        json:"address"`
	City      string    `gorm:"not null"        json:"city"`
	State     string    `gorm:"not null"        json:"state"`
	Pincode   string    `gorm:"not null"        json:"pincode"`
	IsDefault bool      `gorm:"default:false"   json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
