package model

import "time"

// Establishment approval lifecycle. Transitions are pending -> approved or
// pending -> rejected, applied only by an admin.
const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

// Canonical order states. A fresh order is pending; merchants move it to
// confirmed/completed, the payment webhook moves it to confirmed, customers
// may cancel while still pending. Transitions never go backward.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusProcessing = "processing"
	PaymentStatusCompleted  = "completed"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

// EstablishmentCategories are the six storefront categories accepted on
// registration.
var EstablishmentCategories = []string{
	"padaria", "restaurante", "mercado", "lanchonete", "cafeteria", "pizzaria",
}

type Establishment struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Name            string  `gorm:"size:128;not null" json:"name"`
	Category        string  `gorm:"size:32;not null" json:"category"`
	Address         string  `gorm:"size:256;not null" json:"address"`
	Latitude        float64 `gorm:"not null" json:"latitude"`
	Longitude       float64 `gorm:"not null" json:"longitude"`
	Phone           string  `gorm:"size:32" json:"phone,omitempty"`
	LogoURL         string  `gorm:"size:512" json:"logo_url,omitempty"`
	OwnerUserID     string  `gorm:"size:64;index;not null" json:"owner_user_id"`
	IsActive        bool    `gorm:"not null;default:true" json:"is_active"`
	ApprovalStatus  string  `gorm:"size:16;index;not null;default:pending" json:"approval_status"`
	IsApproved      bool    `gorm:"not null;default:false" json:"is_approved"`
	ApprovedBy      string  `gorm:"size:64" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason string  `gorm:"size:512" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Bag struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	EstablishmentID uint     `gorm:"index;not null" json:"establishment_id"`
	Name            string   `gorm:"size:128;not null" json:"name"`
	Description     string   `gorm:"size:512" json:"description,omitempty"`
	Price           float64  `gorm:"not null" json:"price"`
	OriginalPrice   *float64 `json:"original_price,omitempty"`
	QuantityAvailable int    `gorm:"not null" json:"quantity_available"`
	// HH:MM strings, matching the pickup window the merchant publishes.
	PickupStartTime string `gorm:"size:5;not null" json:"pickup_start_time"`
	PickupEndTime   string `gorm:"size:5;not null" json:"pickup_end_time"`
	// YYYY-MM-DD; lexical order equals date order.
	PickupDate string    `gorm:"size:10;index;not null" json:"pickup_date"`
	IsActive   bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type BagPhoto struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	BagID        uint      `gorm:"index;not null" json:"bag_id"`
	PhotoURL     string    `gorm:"size:512;not null" json:"photo_url"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Order struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	BagID            uint    `gorm:"index;not null" json:"bag_id"`
	CustomerUserID   string  `gorm:"size:64;index;not null" json:"customer_user_id"`
	Quantity         int     `gorm:"not null" json:"quantity"`
	TotalPrice       float64 `gorm:"not null" json:"total_price"`
	PlatformFee      float64 `gorm:"not null;default:0" json:"platform_fee"`
	Status           string  `gorm:"size:16;index;not null;default:pending" json:"status"`
	PaymentMethod    string  `gorm:"size:32;not null;default:pix" json:"payment_method"`
	PaymentConfirmed bool    `gorm:"not null;default:false" json:"payment_confirmed"`
	PickupCode       string  `gorm:"size:6;uniqueIndex;not null" json:"pickup_code"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Payment struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	OrderID       uint    `gorm:"index;not null" json:"order_id"`
	Amount        float64 `gorm:"not null" json:"amount"`
	PaymentMethod string  `gorm:"size:32;not null;default:pix" json:"payment_method"`
	Status        string  `gorm:"size:16;index;not null;default:pending" json:"status"`
	// Gateway transaction id; webhook reconciliation keys on it.
	TransactionID string     `gorm:"size:64;uniqueIndex;not null" json:"transaction_id"`
	PixQRCode     string     `gorm:"column:pix_qr_code;type:text" json:"pix_qr_code,omitempty"`
	PixCode       string     `gorm:"column:pix_code;type:text" json:"pix_code,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Admin is a capability row, not a role hierarchy: its presence grants the
// admin gate.
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	CreatedBy string    `gorm:"size:64" json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SystemSetting struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:512;not null" json:"value"`
	UpdatedBy string    `gorm:"size:64" json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}
