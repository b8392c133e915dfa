package model

import (
	"fmt"
	"net/mail"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatusPending is the only status this service ever writes.
// Status transitions belong to downstream fulfilment, not to order creation.
const OrderStatusPending = "pending"

// CartItem is a single requested line in an incoming order. It is transient:
// it exists only for the duration of one order-creation request.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderLine is an immutable snapshot of product pricing and display data
// captured at order time. Once written, a line's price never changes even if
// the source product's price does.
type OrderLine struct {
	ProductID string  `json:"product_id" bson:"product_id"`
	Title     string  `json:"title" bson:"title"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image,omitempty" bson:"image,omitempty"`
}

// Customer holds the buyer details embedded in an order.
type Customer struct {
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	Phone        string `json:"phone,omitempty" bson:"phone,omitempty"`
	AddressLine1 string `json:"address_line1" bson:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty" bson:"address_line2,omitempty"`
	City         string `json:"city" bson:"city"`
	State        string `json:"state" bson:"state"`
	PostalCode   string `json:"postal_code" bson:"postal_code"`
	Country      string `json:"country" bson:"country"`
}

// Validate checks required fields and email syntax.
func (c *Customer) Validate() error {
	if c.Name == "" {
		return NewValidationError("customer.name", "is required")
	}
	if c.Email == "" {
		return NewValidationError("customer.email", "is required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return NewValidationError("customer.email", "is not a valid email address")
	}
	if c.AddressLine1 == "" {
		return NewValidationError("customer.address_line1", "is required")
	}
	if c.City == "" {
		return NewValidationError("customer.city", "is required")
	}
	if c.State == "" {
		return NewValidationError("customer.state", "is required")
	}
	if c.PostalCode == "" {
		return NewValidationError("customer.postal_code", "is required")
	}
	if c.Country == "" {
		return NewValidationError("customer.country", "is required")
	}
	return nil
}

// Order is the persisted order document. It is written exactly once; this
// service never updates an existing order.
type Order struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Items     []OrderLine        `json:"items" bson:"items"`
	Customer  Customer           `json:"customer" bson:"customer"`
	Subtotal  float64            `json:"subtotal" bson:"subtotal"`
	Shipping  float64            `json:"shipping" bson:"shipping"`
	Total     float64            `json:"total" bson:"total"`
	Status    string             `json:"status" bson:"status"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// OrderRequest is the payload for POST /api/orders.
type OrderRequest struct {
	Items    []CartItem `json:"items"`
	Customer Customer   `json:"customer"`
	Shipping float64    `json:"shipping"`
}

// Validate performs structural validation of the request: each present item
// and the customer payload. An empty items slice is deliberately not a
// validation failure here; the order service reports it as an empty cart.
func (r *OrderRequest) Validate() error {
	for i, item := range r.Items {
		if item.ProductID == "" {
			return NewValidationError(fmt.Sprintf("items[%d].product_id", i), "is required")
		}
		if item.Quantity < 1 {
			return NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
	}
	return r.Customer.Validate()
}

// OrderReceipt is the success response for a created order.
type OrderReceipt struct {
	OrderID string  `json:"order_id"`
	Total   float64 `json:"total"`
	Status  string  `json:"status"`
}
