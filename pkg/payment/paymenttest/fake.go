// Package paymenttest provides an in-memory payment.Gateway for tests.
package paymenttest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/decorhub/pkg/payment"
)

// Gateway records created sessions and serves them back. Sessions start
// "open"; Complete marks one as paid.
type Gateway struct {
	mu       sync.Mutex
	seq      int
	sessions []*payment.Session
	Requests []payment.CheckoutRequest
	Err      error
}

func New() *Gateway { return &Gateway{} }

func (g *Gateway) CreateCheckoutSession(_ context.Context, req payment.CheckoutRequest) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}

	g.seq++
	id := fmt.Sprintf("cs_test_%d", g.seq)
	meta := make(map[string]string, len(req.Metadata))
	for k, v := range req.Metadata {
		meta[k] = v
	}
	s := &payment.Session{
		ID:            id,
		URL:           strings.ReplaceAll(req.SuccessURL, "{CHECKOUT_SESSION_ID}", id),
		Status:        "open",
		AmountTotal:   req.UnitAmount,
		Currency:      req.Currency,
		CustomerEmail: req.CustomerEmail,
		Metadata:      meta,
		Created:       time.Now().Unix(),
	}
	g.sessions = append(g.sessions, s)
	g.Requests = append(g.Requests, req)
	cp := *s
	return &cp, nil
}

// Add stores a prepared session.
func (g *Gateway) Add(s payment.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sessions = append(g.sessions, &s)
}

// Complete marks session id as paid with paymentIntent.
func (g *Gateway) Complete(id, paymentIntent string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, s := range g.sessions {
		if s.ID == id {
			s.Status = payment.StatusComplete
			s.PaymentIntentID = paymentIntent
		}
	}
}

func (g *Gateway) GetCheckoutSession(_ context.Context, id string) (*payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	for _, s := range g.sessions {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("No such checkout.session: %s", id)
}

func (g *Gateway) ListCheckoutSessions(_ context.Context, limit int) ([]payment.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.Err != nil {
		return nil, g.Err
	}
	out := make([]payment.Session, 0, limit)
	for i := len(g.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *g.sessions[i])
	}
	return out, nil
}
