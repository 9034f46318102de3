// Package payment talks to the hosted checkout processor.
package payment

import "context"

// StatusComplete is the session status once the customer has paid.
const StatusComplete = "complete"

// CheckoutRequest describes a single-item hosted checkout.
type CheckoutRequest struct {
	ProductName   string
	Description   string
	Image         string
	UnitAmount    int64 // minor units (cents)
	Currency      string
	CustomerEmail string
	Metadata      map[string]string
	SuccessURL    string
	CancelURL     string
}

// Session is the processor's view of a checkout.
type Session struct {
	ID              string
	URL             string
	Status          string
	PaymentIntentID string
	AmountTotal     int64 // minor units
	Currency        string
	CustomerEmail   string
	Metadata        map[string]string
	Created         int64 // Unix seconds
}

// Gateway creates and reads checkout sessions.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*Session, error)
	GetCheckoutSession(ctx context.Context, id string) (*Session, error)
	// ListCheckoutSessions returns up to limit sessions, newest first.
	ListCheckoutSessions(ctx context.Context, limit int) ([]Session, error)
}
