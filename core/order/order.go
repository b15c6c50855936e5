package order

import "time"

type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Cancelled Status = "cancelled"
)

type Order struct {
	ID          string    `json:"id" db:"order_id"`
	Number      string    `json:"number" db:"order_number"`
	SessionID   string    `json:"-" db:"session_id"`
	Status      Status    `json:"status" db:"status"`
	Subtotal    int       `json:"subtotal" db:"subtotal"`
	Discount    int       `json:"discount" db:"discount"`
	Shipping    int       `json:"shipping" db:"shipping"`
	Total       int       `json:"total" db:"total"`
	VoucherCode *string   `json:"voucherCode,omitempty" db:"voucher_code"`
	Name        string    `json:"shippingName" db:"shipping_name"`
	Phone       string    `json:"shippingPhone" db:"shipping_phone"`
	Address     string    `json:"shippingAddress" db:"shipping_address"`
	City        string    `json:"shippingCity" db:"shipping_city"`
	PostalCode  string    `json:"shippingPostal" db:"shipping_postal"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	Items []Item `json:"items" db:"-"`
}

type Item struct {
	OrderID   string    `json:"-" db:"order_id"`
	ProductID string    `json:"productId" db:"product_id"`
	Name      string    `json:"name" db:"name"`
	UnitPrice int       `json:"unitPrice" db:"unit_price"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"-" db:"created_at"`
}

// ShippingInfo is what the shopper submits at checkout.
type ShippingInfo struct {
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
}
