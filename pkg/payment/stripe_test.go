package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/decorhub/pkg/testkit"
)

const stripeURL = "https://api.stripe.test"

func mockStripe(t *testing.T, steps ...testkit.MockStep) (*Stripe, *testkit.MockTransport) {
	t.Helper()
	mt := testkit.NewMockTransport()
	mt.Expect(steps...)
	t.Cleanup(func() {
		assert.Empty(t, mt.Unused(), "stripe mocks never called")
	})
	return NewStripe("sk_test_123", StripeBackends(mt.Client(), stripeURL)), mt
}

func TestGetCheckoutSession(t *testing.T) {
	s, _ := mockStripe(t, testkit.MockStep{
		Method:   http.MethodGet,
		MatchURL: stripeURL + "/v1/checkout/sessions/cs_1",
		Body: json.RawMessage(`{
			"id": "cs_1",
			"object": "checkout.session",
			"status": "complete",
			"payment_intent": "pi_1",
			"amount_total": 12050,
			"currency": "usd",
			"customer_email": "c@decor.test",
			"created": 1767225600,
			"metadata": {"serviceId": "svc_1", "category": "Lighting"}
		}`),
	})

	got, err := s.GetCheckoutSession(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, StatusComplete, got.Status)
	assert.Equal(t, "pi_1", got.PaymentIntentID)
	assert.Equal(t, int64(12050), got.AmountTotal)
	assert.Equal(t, "Lighting", got.Metadata["category"])
	assert.Equal(t, "c@decor.test", got.CustomerEmail)
}

func TestCreateCheckoutSession(t *testing.T) {
	s, mt := mockStripe(t, testkit.MockStep{
		Method:   http.MethodPost,
		MatchURL: stripeURL + "/v1/checkout/sessions",
		Body:     json.RawMessage(`{"id":"cs_2","object":"checkout.session","status":"open","url":"https://checkout.stripe.test/cs_2"}`),
	})

	got, err := s.CreateCheckoutSession(context.Background(), CheckoutRequest{
		ProductName: "Stage",
		UnitAmount:  12050,
		Currency:    "usd",
		Metadata:    map[string]string{"serviceId": "svc_1"},
		SuccessURL:  "https://app.test/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   "https://app.test/payment-fail",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.test/cs_2", got.URL)
	assert.Equal(t, "open", got.Status)

	calls := mt.Calls()
	require.Len(t, calls, 1)
	form, err := url.ParseQuery(string(calls[0].Body))
	require.NoError(t, err)
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, "12050", form.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "svc_1", form.Get("metadata[serviceId]"))
}

func TestListCheckoutSessionsStopsAtLimit(t *testing.T) {
	s, _ := mockStripe(t, testkit.MockStep{
		Method:   http.MethodGet,
		MatchURL: stripeURL + "/v1/checkout/sessions",
		Body: json.RawMessage(`{
			"object": "list",
			"url": "/v1/checkout/sessions",
			"has_more": true,
			"data": [
				{"id": "cs_a", "object": "checkout.session", "status": "complete", "customer_email": "a@decor.test"},
				{"id": "cs_b", "object": "checkout.session", "status": "open", "customer_details": {"email": "b@decor.test"}}
			]
		}`),
	})

	got, err := s.ListCheckoutSessions(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "cs_a", got[0].ID)
	assert.Equal(t, "b@decor.test", got[1].CustomerEmail)
	assert.NotNil(t, got[1].Metadata)
}

func TestStripeErrorIsWrapped(t *testing.T) {
	s, _ := mockStripe(t, testkit.MockStep{
		MatchURL: stripeURL + "/v1/checkout/sessions/cs_x",
		Status:   http.StatusNotFound,
		Body:     json.RawMessage(`{"error":{"type":"invalid_request_error","message":"No such checkout.session: cs_x"}}`),
	})

	_, err := s.GetCheckoutSession(context.Background(), "cs_x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such checkout.session")
}
