package model

// Wire shapes of the Mercado Pago payments API, reduced to the fields the
// PIX flow reads.

type PixPayer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type PixTransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url,omitempty"`
}

type PixPointOfInteraction struct {
	TransactionData PixTransactionData `json:"transaction_data"`
}

// MercadoPagoPayment is the gateway's payment object, returned by both the
// create call and the authoritative lookup the webhook performs.
type MercadoPagoPayment struct {
	ID                 int64                 `json:"id"`
	Status             string                `json:"status"`
	StatusDetail       string                `json:"status_detail,omitempty"`
	TransactionAmount  float64               `json:"transaction_amount"`
	Description        string                `json:"description,omitempty"`
	PaymentMethodID    string                `json:"payment_method_id"`
	Payer              PixPayer              `json:"payer"`
	PointOfInteraction PixPointOfInteraction `json:"point_of_interaction"`
	DateCreated        string                `json:"date_created,omitempty"`
	DateApproved       string                `json:"date_approved,omitempty"`
}

// MercadoPagoWebhookEvent is the notification body the gateway posts to the
// webhook endpoint. Only type=="payment" events carry a payment id.
type MercadoPagoWebhookEvent struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}
