package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type OrderRecord struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"order_number"`
	FranchiseID string      `json:"franchise_id"`
	CustomerID  string      `json:"customer_id"`
	CreatedBy   string      `json:"created_by"`
	TotalAmount float64     `json:"total_amount"`
	Items       []OrderItem `json:"items"`
	TaxEnabled  bool        `json:"tax_enabled"`
	TaxRate     float64     `json:"tax_rate"`
	CreatedAt   time.Time   `json:"created_at"`
}

type OrderItem struct {
	ServiceID   string  `json:"service_id"`
	ServiceName string  `json:"service_name"`
	Price       float64 `json:"price"`
	Quantity    float64 `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

// ParseAmount converts a stored amount string to a non-negative float.
// Unparsable or negative values coerce to 0.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseItems decodes a stored line-item JSON array. A malformed payload
// returns nil so one bad record never aborts the whole fetch.
func ParseItems(raw []byte) []OrderItem {
	if len(raw) == 0 {
		return nil
	}
	var items []OrderItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
