// Package queue defines the message payloads published to the broker and
// the publisher interface the services depend on.
package queue

import "context"

// SaleRecordedEvent is published after a sale has been committed. It carries
// enough for downstream consumers (notifications, analytics) to act without
// querying the primary database.
type SaleRecordedEvent struct {
	SaleID        string  `json:"sale_id"`
	VehicleID     string  `json:"vehicle_id"`
	SellerID      string  `json:"seller_id"`
	SalePrice     float64 `json:"sale_price"`
	PaymentMethod string  `json:"payment_method"`
	RecordedAt    string  `json:"recorded_at"`
}

type Publisher interface {
	PublishSaleRecorded(ctx context.Context, event SaleRecordedEvent) error
}
