package dto

import "salva-iguaba-api/internal/model"

type CreateEstablishmentRequest struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Phone     string  `json:"phone"`
	LogoURL   string  `json:"logo_url"`
}

type CreateBagRequest struct {
	EstablishmentID   uint     `json:"establishment_id"`
	Name              string   `json:"name"`
	Description       string   `json:"description"`
	Price             float64  `json:"price"`
	OriginalPrice     *float64 `json:"original_price"`
	QuantityAvailable int      `json:"quantity_available"`
	PickupStartTime   string   `json:"pickup_start_time"`
	PickupEndTime     string   `json:"pickup_end_time"`
	PickupDate        string   `json:"pickup_date"`
}

// UpdateBagRequest uses pointers so absent fields are left untouched.
type UpdateBagRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	OriginalPrice     *float64 `json:"original_price"`
	QuantityAvailable *int     `json:"quantity_available"`
	PickupStartTime   *string  `json:"pickup_start_time"`
	PickupEndTime     *string  `json:"pickup_end_time"`
	PickupDate        *string  `json:"pickup_date"`
	IsActive          *bool    `json:"is_active"`
}

type AddBagPhotoRequest struct {
	PhotoURL     string `json:"photo_url"`
	DisplayOrder int    `json:"display_order"`
}

type CreateOrderRequest struct {
	BagID         uint   `json:"bag_id"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

type CreateOrderResponse struct {
	ID         uint   `json:"id"`
	PickupCode string `json:"pickup_code"`
	TotalPrice float64 `json:"total_price"`
}

// BagWithEstablishment is the catalog row: a bag joined with the summary of
// its parent establishment.
type BagWithEstablishment struct {
	model.Bag
	EstablishmentName      string  `json:"establishment_name"`
	EstablishmentCategory  string  `json:"establishment_category"`
	EstablishmentAddress   string  `json:"establishment_address"`
	EstablishmentLatitude  float64 `json:"establishment_latitude"`
	EstablishmentLongitude float64 `json:"establishment_longitude"`
}

// OrderWithDetails joins an order with its bag and establishment for the
// customer and merchant order lists.
type OrderWithDetails struct {
	model.Order
	BagName              string  `json:"bag_name"`
	BagPrice             float64 `json:"bag_price"`
	PickupStartTime      string  `json:"pickup_start_time"`
	PickupEndTime        string  `json:"pickup_end_time"`
	PickupDate           string  `json:"pickup_date"`
	EstablishmentName    string  `json:"establishment_name"`
	EstablishmentAddress string  `json:"establishment_address"`
	EstablishmentPhone   string  `json:"establishment_phone"`
}

type CreatePixPaymentRequest struct {
	OrderID     uint    `json:"order_id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type CreatePixPaymentResponse struct {
	PaymentID     uint   `json:"payment_id"`
	MercadoPagoID string `json:"mercadopago_id"`
	QRCode        string `json:"qr_code"`
	QRCodeBase64  string `json:"qr_code_base64"`
	Status        string `json:"status"`
}

type PaymentStatusResponse struct {
	ID            uint    `json:"id"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	CreatedAt     string  `json:"created_at"`
	CompletedAt   string  `json:"completed_at,omitempty"`
}

type MerchantStats struct {
	TotalSales   int64   `json:"total_sales"`
	TotalRevenue float64 `json:"total_revenue"`
	TodaySales   int64   `json:"today_sales"`
	ActiveBags   int64   `json:"active_bags"`
}

type AdminStats struct {
	TotalEstablishments    int64   `json:"total_establishments"`
	PendingEstablishments  int64   `json:"pending_establishments"`
	ApprovedEstablishments int64   `json:"approved_establishments"`
	TotalBags              int64   `json:"total_bags"`
	TotalOrders            int64   `json:"total_orders"`
	TotalRevenue           float64 `json:"total_revenue"`
	PlatformRevenue        float64 `json:"platform_revenue"`
	TotalUsers             int64   `json:"total_users"`
}

type AdminPaymentRow struct {
	model.Payment
	OrderTotal        float64 `json:"order_total"`
	EstablishmentName string  `json:"establishment_name"`
}

type GeocodeRequest struct {
	Address string `json:"address"`
}

type GeocodeResponse struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address"`
}

type UploadResponse struct {
	Success     bool   `json:"success"`
	URL         string `json:"url"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

type SessionRequest struct {
	Code string `json:"code"`
}
