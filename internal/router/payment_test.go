package router

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/checkout"
	"github.com/buybloom/backend/pkg/models"
)

const testSecret = "test_secret"

type stubCartStore struct {
	items   []models.CartItem
	cleared int
}

func (s *stubCartStore) Items(ctx context.Context, userID bson.ObjectID) ([]models.CartItem, error) {
	return s.items, nil
}

func (s *stubCartStore) Clear(ctx context.Context, userID bson.ObjectID) error {
	s.cleared++
	s.items = nil
	return nil
}

type stubCatalog struct {
	prices  map[bson.ObjectID]float64
	sellers map[bson.ObjectID]bson.ObjectID
}

func (s *stubCatalog) PricedEntry(ctx context.Context, productID bson.ObjectID) (float64, bson.ObjectID, error) {
	price, ok := s.prices[productID]
	if !ok {
		return 0, bson.ObjectID{}, errors.New("product not found")
	}
	return price, s.sellers[productID], nil
}

type stubOrderStore struct {
	orders map[string]*models.Order
}

func (s *stubOrderStore) InsertIfAbsent(ctx context.Context, order *models.Order) (bool, error) {
	if _, exists := s.orders[order.PaymentID]; exists {
		return false, nil
	}
	s.orders[order.PaymentID] = order
	return true, nil
}

type stubDonationStore struct {
	donations []*models.Donation
}

func (s *stubDonationStore) Insert(ctx context.Context, donation *models.Donation) error {
	s.donations = append(s.donations, donation)
	return nil
}

type stubGateway struct {
	intentID string
	err      error
	calls    int
}

func (s *stubGateway) CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.intentID, nil
}

type paymentFixture struct {
	carts     *stubCartStore
	catalog   *stubCatalog
	orders    *stubOrderStore
	donations *stubDonationStore
	gateway   *stubGateway
	user      *models.User
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productID := bson.NewObjectID()
	f := &paymentFixture{
		carts: &stubCartStore{items: []models.CartItem{
			{ProductID: productID, Name: "Peace Lily", Price: 449, Qty: 2},
		}},
		catalog: &stubCatalog{
			prices:  map[bson.ObjectID]float64{productID: 449},
			sellers: map[bson.ObjectID]bson.ObjectID{productID: bson.NewObjectID()},
		},
		orders:    &stubOrderStore{orders: map[string]*models.Order{}},
		donations: &stubDonationStore{},
		gateway:   &stubGateway{intentID: "order_test123"},
		user:      &models.User{ID: bson.NewObjectID(), Name: "Test Buyer", Email: "buyer@example.com", Role: models.RoleUser},
	}

	checkoutSvc = checkout.NewService(f.carts, f.catalog, f.orders, f.donations, f.gateway, checkout.Config{
		Secret: testSecret,
	})
	return f
}

func (f *paymentFixture) request(t *testing.T, handler gin.HandlerFunc, body interface{}, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(encoded))
	c.Request.Header.Set("Content-Type", "application/json")
	if authenticated {
		c.Set(ctxUserKey, f.user)
		c.Set(ctxUserIDKey, f.user.ID)
	}

	handler(c)
	return recorder
}

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrder(t *testing.T) {
	f := newPaymentFixture(t)

	recorder := f.request(t, CreateOrder, nil, true)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, f.gateway.calls)

	var resp struct {
		Data checkout.Intent `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	assert.Equal(t, "order_test123", resp.Data.OrderID)
	assert.InDelta(t, 898.0, resp.Data.Amount, 0.001)
}

func TestCreateOrderEmptyCart(t *testing.T) {
	f := newPaymentFixture(t)
	f.carts.items = nil

	recorder := f.request(t, CreateOrder, nil, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 0, f.gateway.calls)
}

func TestCreateOrderGatewayDown(t *testing.T) {
	f := newPaymentFixture(t)
	f.gateway.err = errors.New("connection refused")

	recorder := f.request(t, CreateOrder, nil, true)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
}

func TestVerifyPayment(t *testing.T) {
	f := newPaymentFixture(t)

	conf := checkout.Confirmation{
		OrderID:   "order_test123",
		PaymentID: "pay_abc",
	}
	conf.Signature = sign(conf.OrderID, conf.PaymentID)

	recorder := f.request(t, VerifyPayment, conf, true)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 1, f.carts.cleared)
	require.Contains(t, f.orders.orders, "pay_abc")
	assert.InDelta(t, 898.0, f.orders.orders["pay_abc"].TotalAmount, 0.001)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	f := newPaymentFixture(t)

	conf := checkout.Confirmation{
		OrderID:   "order_test123",
		PaymentID: "pay_abc",
		Signature: sign("order_other", "pay_abc"),
	}

	recorder := f.request(t, VerifyPayment, conf, true)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, f.orders.orders)
	assert.Equal(t, 0, f.carts.cleared)
	assert.Contains(t, recorder.Body.String(), "Payment verification failed")
}

func TestVerifyPaymentReplay(t *testing.T) {
	f := newPaymentFixture(t)

	conf := checkout.Confirmation{
		OrderID:   "order_test123",
		PaymentID: "pay_abc",
	}
	conf.Signature = sign(conf.OrderID, conf.PaymentID)

	first := f.request(t, VerifyPayment, conf, true)
	second := f.request(t, VerifyPayment, conf, true)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Len(t, f.orders.orders, 1)
}

func TestVerifyDonation(t *testing.T) {
	f := newPaymentFixture(t)

	body := map[string]interface{}{
		"razorpay_order_id":   "order_don1",
		"razorpay_payment_id": "pay_don1",
		"razorpay_signature":  sign("order_don1", "pay_don1"),
		"amount":              500,
		"donor_name":          "Anonymous Friend",
		"donor_email":         "friend@example.com",
	}

	recorder := f.request(t, VerifyDonation, body, false)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, f.donations.donations, 1)
	donation := f.donations.donations[0]
	assert.Nil(t, donation.UserID)
	assert.Equal(t, "Anonymous Friend", donation.DonorName)
	assert.InDelta(t, 500.0, donation.Amount, 0.001)
}

func TestVerifyDonationAttributedToSession(t *testing.T) {
	f := newPaymentFixture(t)

	body := map[string]interface{}{
		"razorpay_order_id":   "order_don2",
		"razorpay_payment_id": "pay_don2",
		"razorpay_signature":  sign("order_don2", "pay_don2"),
		"amount":              250,
	}

	recorder := f.request(t, VerifyDonation, body, true)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, f.donations.donations, 1)
	donation := f.donations.donations[0]
	require.NotNil(t, donation.UserID)
	assert.Equal(t, f.user.ID, *donation.UserID)
	assert.Equal(t, f.user.Name, donation.DonorName)
}

func TestVerifyDonationAmountOutOfRange(t *testing.T) {
	f := newPaymentFixture(t)

	body := map[string]interface{}{
		"razorpay_order_id":   "order_don3",
		"razorpay_payment_id": "pay_don3",
		"razorpay_signature":  sign("order_don3", "pay_don3"),
		"amount":              250000,
	}

	recorder := f.request(t, VerifyDonation, body, false)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Empty(t, f.donations.donations)
}
