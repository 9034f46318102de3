package services

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shashiranjanraj/decorhub/app/models"
	"github.com/shashiranjanraj/decorhub/app/repositories"
	"github.com/shashiranjanraj/decorhub/pkg/logger"
	"github.com/shashiranjanraj/decorhub/pkg/metrics"
	"github.com/shashiranjanraj/decorhub/pkg/payment"
	"github.com/shashiranjanraj/decorhub/pkg/rbac"
)

// Session metadata keys. legacyServiceDateKey is read for sessions created
// before the key was corrected.
const (
	metaServiceID        = "serviceId"
	metaCustomerName     = "customer_name"
	metaCustomerEmail    = "customer_email"
	metaSellerEmail      = "seller_email"
	metaName             = "name"
	metaCategory         = "category"
	metaPhoto            = "photo"
	metaQuantity         = "quantity"
	metaLocation         = "location"
	metaCreatedAt        = "createdAt"
	metaServiceDate      = "serviceDate"
	legacyServiceDateKey = "servideDate"
)

// CheckoutInput is the body of POST /create-checkout-session.
type CheckoutInput struct {
	ServiceID   string  `json:"serviceId"   validate:"required"`
	ServiceName string  `json:"serviceName" validate:"required,max=120"`
	Description string  `json:"description" validate:"max=500"`
	Photo       string  `json:"photo"       validate:"omitempty,url"`
	Price       float64 `json:"price"       validate:"gt=0"`
	UserEmail   string  `json:"userEmail"   validate:"omitempty,email"`
	UserName    string  `json:"userName"    validate:"max=120"`
	OwnerEmail  string  `json:"ownerEmail"  validate:"omitempty,email"`
	Category    string  `json:"category"    validate:"required"`
	Location    string  `json:"location"    validate:"max=300"`
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
}

// ConfirmResult answers POST /payment-success.
type ConfirmResult struct {
	TransactionID string `json:"transactionId"`
	OrderID       string `json:"orderId"`
	Created       bool   `json:"created"`
}

// CheckoutConfig holds the checkout settings taken from configuration.
type CheckoutConfig struct {
	ClientDomain      string
	Currency          string
	TransactionsLimit int
}

// CheckoutService turns hosted payments into orders.
type CheckoutService struct {
	gateway payment.Gateway
	orders  repositories.OrderRepository
	roles   rbac.RoleLookup
	cfg     CheckoutConfig
	now     func() time.Time
}

func NewCheckoutService(gateway payment.Gateway, orders repositories.OrderRepository, roles rbac.RoleLookup, cfg CheckoutConfig, now func() time.Time) *CheckoutService {
	if now == nil {
		now = time.Now
	}
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.TransactionsLimit <= 0 {
		cfg.TransactionsLimit = 100
	}
	cfg.ClientDomain = strings.TrimSuffix(cfg.ClientDomain, "/")
	return &CheckoutService{gateway: gateway, orders: orders, roles: roles, cfg: cfg, now: now}
}

// CreateSession opens a hosted checkout for one booking and returns the
// redirect URL. No order exists until the payment is confirmed.
func (s *CheckoutService) CreateSession(ctx context.Context, caller string, in CheckoutInput) (string, error) {
	customer := normalizeEmail(in.UserEmail)
	if customer == "" {
		customer = caller
	}
	if customer != caller {
		return "", fail(ErrForbidden, "You can only book for your own account")
	}

	sess, err := s.gateway.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		ProductName:   in.ServiceName,
		Description:   in.Description,
		Image:         in.Photo,
		UnitAmount:    int64(math.Round(in.Price * 100)),
		Currency:      s.cfg.Currency,
		CustomerEmail: customer,
		Metadata: map[string]string{
			metaServiceID:     in.ServiceID,
			metaCustomerName:  in.UserName,
			metaCustomerEmail: customer,
			metaSellerEmail:   in.OwnerEmail,
			metaName:          in.ServiceName,
			metaCategory:      in.Category,
			metaPhoto:         in.Photo,
			metaQuantity:      "1",
			metaLocation:      in.Location,
			metaCreatedAt:     strconv.FormatInt(s.now().Unix(), 10),
			metaServiceDate:   in.Date,
		},
		SuccessURL: s.cfg.ClientDomain + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.cfg.ClientDomain + "/payment-fail",
	})
	if err != nil {
		return "", err
	}
	metrics.CheckoutSessions.Inc()
	logger.WithCtx(ctx).Info("checkout session created", "session_id", sess.ID, "service_id", in.ServiceID)
	return sess.URL, nil
}

// Confirm materializes the order of a paid session exactly once per
// payment transaction. Repeated confirmations return the existing order.
func (s *CheckoutService) Confirm(ctx context.Context, sessionID string) (ConfirmResult, error) {
	if sessionID == "" {
		return ConfirmResult{}, fail(ErrValidation, "session_id is required")
	}

	sess, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		metrics.CheckoutConfirmations.WithLabelValues("error").Inc()
		return ConfirmResult{}, err
	}
	if sess.Status != payment.StatusComplete {
		metrics.CheckoutConfirmations.WithLabelValues("incomplete").Inc()
		return ConfirmResult{}, &Error{
			Kind:    ErrPaymentIncomplete,
			Message: "Payment not completed",
			Data:    map[string]string{"sessionStatus": sess.Status},
		}
	}
	if sess.PaymentIntentID == "" {
		metrics.CheckoutConfirmations.WithLabelValues("incomplete").Inc()
		logger.WithCtx(ctx).Warn("complete checkout session has no payment intent", "session_id", sess.ID)
		return ConfirmResult{}, &Error{
			Kind:    ErrPaymentIncomplete,
			Message: "Payment has no transaction to record",
			Data:    map[string]string{"sessionId": sess.ID},
		}
	}

	order := orderFromSession(sess)
	res, err := s.orders.InsertIfAbsent(ctx, order)
	if err != nil {
		metrics.CheckoutConfirmations.WithLabelValues("error").Inc()
		return ConfirmResult{}, storeErr("materialize order", err)
	}

	outcome := "duplicate"
	if res.Created {
		outcome = "created"
	}
	metrics.CheckoutConfirmations.WithLabelValues(outcome).Inc()
	logger.WithCtx(ctx).Info("payment confirmed",
		"transaction_id", order.TransactionID,
		"order_id", res.ID,
		"created", res.Created,
	)
	return ConfirmResult{TransactionID: order.TransactionID, OrderID: res.ID, Created: res.Created}, nil
}

// Transactions lists recent checkout sessions paid by email.
func (s *CheckoutService) Transactions(ctx context.Context, caller, email string) ([]models.Transaction, error) {
	email = normalizeEmail(email)
	if err := selfOrAdmin(ctx, s.roles, caller, email); err != nil {
		return nil, err
	}

	sessions, err := s.gateway.ListCheckoutSessions(ctx, s.cfg.TransactionsLimit)
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0)
	for _, ss := range sessions {
		if !strings.EqualFold(ss.CustomerEmail, email) {
			continue
		}
		out = append(out, models.Transaction{
			TransactionID: ss.PaymentIntentID,
			Amount:        float64(ss.AmountTotal) / 100,
			Currency:      ss.Currency,
			Status:        ss.Status,
			Email:         ss.CustomerEmail,
			ServiceID:     ss.Metadata[metaServiceID],
			ServiceName:   ss.Metadata[metaName],
			Category:      ss.Metadata[metaCategory],
			Photo:         ss.Metadata[metaPhoto],
			CreatedAt:     ss.Created,
		})
	}
	return out, nil
}

func orderFromSession(sess *payment.Session) *models.Order {
	md := sess.Metadata

	createdAt, err := strconv.ParseInt(md[metaCreatedAt], 10, 64)
	if err != nil {
		createdAt = sess.Created
	}
	quantity, err := strconv.Atoi(md[metaQuantity])
	if err != nil || quantity < 1 {
		quantity = 1
	}
	serviceDate := md[metaServiceDate]
	if serviceDate == "" {
		serviceDate = md[legacyServiceDateKey]
	}
	customer := md[metaCustomerEmail]
	if customer == "" {
		customer = sess.CustomerEmail
	}

	return &models.Order{
		ServiceID:     md[metaServiceID],
		TransactionID: sess.PaymentIntentID,
		CustomerEmail: customer,
		CustomerName:  md[metaCustomerName],
		SellerEmail:   md[metaSellerEmail],
		Name:          md[metaName],
		Category:      md[metaCategory],
		Quantity:      quantity,
		Photo:         md[metaPhoto],
		Price:         float64(sess.AmountTotal) / 100,
		Location:      md[metaLocation],
		Status:        models.OrderPending,
		CreatedAt:     createdAt,
		ServiceDate:   serviceDate,
	}
}
