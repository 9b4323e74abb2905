package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

const testSecret = "topsecret"

type fixture struct {
	carts     *FakeCartStore
	catalog   *FakeCatalog
	orders    *FakeOrderStore
	donations *FakeDonationStore
	gateway   *FakeGateway
	svc       *Service
}

func newFixture() *fixture {
	f := &fixture{
		carts:     NewFakeCartStore(),
		catalog:   NewFakeCatalog(),
		orders:    &FakeOrderStore{},
		donations: &FakeDonationStore{},
		gateway:   &FakeGateway{IntentID: "order_rzp_1"},
	}
	f.svc = NewService(f.carts, f.catalog, f.orders, f.donations, f.gateway, Config{Secret: testSecret})
	return f
}

// addProduct registers a catalog entry and puts qty of it in the buyer's
// cart at the given display price.
func (f *fixture) addProduct(buyer bson.ObjectID, catalogPrice, displayPrice float64, qty int) bson.ObjectID {
	productID := bson.NewObjectID()
	sellerID := bson.NewObjectID()
	f.catalog.Prices[productID] = catalogPrice
	f.catalog.Sellers[productID] = sellerID
	f.carts.ItemsByUser[buyer] = append(f.carts.ItemsByUser[buyer], models.CartItem{
		ProductID: productID,
		Name:      "test product",
		Price:     displayPrice,
		Image:     "https://example.com/p.png",
		Qty:       qty,
	})
	return productID
}

func TestInitiateCheckout_AmountFromCatalog(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	// Display price in the cart is stale/tampered; the catalog says 100.
	f.addProduct(buyer, 100, 1, 2)

	intent, err := f.svc.InitiateCheckout(context.Background(), buyer)

	require.NoError(t, err)
	assert.Equal(t, 200.0, intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
	assert.Equal(t, "order_rzp_1", intent.OrderID)
	assert.Equal(t, int64(20000), f.gateway.LastAmount) // paise
	assert.Contains(t, f.gateway.LastReceipt, "order_")
}

func TestInitiateCheckout_EmptyCart(t *testing.T) {
	f := newFixture()

	intent, err := f.svc.InitiateCheckout(context.Background(), bson.NewObjectID())

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, intent)
	assert.Equal(t, 0, f.gateway.Calls, "no gateway call for an empty cart")
}

func TestInitiateCheckout_GatewayDown(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	f.addProduct(buyer, 100, 100, 1)
	f.gateway.Err = errors.New("connection refused")

	_, err := f.svc.InitiateCheckout(context.Background(), buyer)

	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.NotEmpty(t, f.carts.ItemsByUser[buyer], "cart untouched on gateway failure")
}

func TestInitiateCheckout_MissingCatalogEntry(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	f.carts.ItemsByUser[buyer] = []models.CartItem{{
		ProductID: bson.NewObjectID(),
		Name:      "ghost",
		Price:     50,
		Qty:       1,
	}}

	_, err := f.svc.InitiateCheckout(context.Background(), buyer)

	assert.Error(t, err)
	assert.Equal(t, 0, f.gateway.Calls)
}

func TestConfirmCheckout_HappyPath(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	productID := f.addProduct(buyer, 100, 100, 2)

	sig := sign(testSecret, "order_rzp_1", "pay_abc")
	err := f.svc.ConfirmCheckout(context.Background(), buyer, Confirmation{
		OrderID:   "order_rzp_1",
		PaymentID: "pay_abc",
		Signature: sig,
	})

	require.NoError(t, err)
	require.Len(t, f.orders.Orders, 1)
	order := f.orders.Orders[0]
	assert.Equal(t, buyer, order.UserID)
	assert.Equal(t, 200.0, order.TotalAmount)
	assert.Equal(t, order.TotalAmount, order.ItemsTotal())
	assert.Equal(t, "pay_abc", order.PaymentID)
	assert.Equal(t, models.OrderStatusCompleted, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, productID, order.Items[0].ProductID)
	assert.Equal(t, f.catalog.Sellers[productID], order.Items[0].SellerID)
	assert.Empty(t, f.carts.ItemsByUser[buyer], "cart cleared after confirmation")
}

func TestConfirmCheckout_BadSignature(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	f.addProduct(buyer, 100, 100, 1)

	sig := sign("wrong-secret", "order_rzp_1", "pay_abc")
	err := f.svc.ConfirmCheckout(context.Background(), buyer, Confirmation{
		OrderID:   "order_rzp_1",
		PaymentID: "pay_abc",
		Signature: sig,
	})

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, f.orders.Orders, "no ledger entry on bad signature")
	assert.Len(t, f.carts.ItemsByUser[buyer], 1, "cart untouched on bad signature")
	assert.Equal(t, 0, f.carts.ClearCalls)
}

func TestConfirmCheckout_IdempotentReplay(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	f.addProduct(buyer, 100, 100, 2)

	confirmation := Confirmation{
		OrderID:   "order_rzp_1",
		PaymentID: "pay_abc",
		Signature: sign(testSecret, "order_rzp_1", "pay_abc"),
	}

	require.NoError(t, f.svc.ConfirmCheckout(context.Background(), buyer, confirmation))
	require.NoError(t, f.svc.ConfirmCheckout(context.Background(), buyer, confirmation))

	assert.Len(t, f.orders.Orders, 1, "replay must not duplicate the ledger entry")
	assert.Empty(t, f.carts.ItemsByUser[buyer], "cart stays empty under replay")
}

func TestConfirmCheckout_RetryAfterCrashBeforeClear(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	f.addProduct(buyer, 100, 100, 1)

	confirmation := Confirmation{
		OrderID:   "order_rzp_1",
		PaymentID: "pay_abc",
		Signature: sign(testSecret, "order_rzp_1", "pay_abc"),
	}

	// First attempt: order written, but the clear fails.
	f.carts.ClearErr = errors.New("connection reset")
	err := f.svc.ConfirmCheckout(context.Background(), buyer, confirmation)
	require.Error(t, err)
	require.Len(t, f.orders.Orders, 1)

	// Retry with the same triple: order write is a no-op, clear succeeds.
	f.carts.ClearErr = nil
	require.NoError(t, f.svc.ConfirmCheckout(context.Background(), buyer, confirmation))
	assert.Len(t, f.orders.Orders, 1)
	assert.Empty(t, f.carts.ItemsByUser[buyer])
}

func TestConfirmCheckout_RepricesCurrentCart(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	productID := f.addProduct(buyer, 100, 100, 2)

	// The catalog price changes between intent creation and confirmation;
	// the ledger entry records what the catalog says now.
	_, err := f.svc.InitiateCheckout(context.Background(), buyer)
	require.NoError(t, err)
	f.catalog.Prices[productID] = 120

	confirmation := Confirmation{
		OrderID:   "order_rzp_1",
		PaymentID: "pay_abc",
		Signature: sign(testSecret, "order_rzp_1", "pay_abc"),
	}
	require.NoError(t, f.svc.ConfirmCheckout(context.Background(), buyer, confirmation))

	require.Len(t, f.orders.Orders, 1)
	assert.Equal(t, 240.0, f.orders.Orders[0].TotalAmount)
}

func TestConfirmCheckout_OrderWriteFailure(t *testing.T) {
	f := newFixture()
	buyer := bson.NewObjectID()
	f.addProduct(buyer, 100, 100, 1)
	f.orders.InsertErr = errors.New("write concern error")

	err := f.svc.ConfirmCheckout(context.Background(), buyer, Confirmation{
		OrderID:   "order_rzp_1",
		PaymentID: "pay_abc",
		Signature: sign(testSecret, "order_rzp_1", "pay_abc"),
	})

	require.Error(t, err)
	assert.Len(t, f.carts.ItemsByUser[buyer], 1, "cart must not be cleared if the order write fails")
}

func TestInitiateDonation_Bounds(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		amount  float64
		wantErr error
	}{
		{"below minimum", 0.5, ErrInvalidAmount},
		{"at minimum", 1, nil},
		{"typical", 500, nil},
		{"at maximum", 100000, nil},
		{"above maximum", 100001, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := f.svc.InitiateDonation(context.Background(), tt.amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.amount, intent.Amount)
		})
	}
}

func TestConfirmDonation(t *testing.T) {
	f := newFixture()
	userID := bson.NewObjectID()

	confirmation := Confirmation{
		OrderID:   "order_rzp_don",
		PaymentID: "pay_don",
		Signature: sign(testSecret, "order_rzp_don", "pay_don"),
	}
	err := f.svc.ConfirmDonation(context.Background(), confirmation, 500, &userID, "Asha", "asha@example.com")

	require.NoError(t, err)
	require.Len(t, f.donations.Donations, 1)
	donation := f.donations.Donations[0]
	assert.Equal(t, 500.0, donation.Amount)
	assert.Equal(t, "pay_don", donation.PaymentID)
	assert.Equal(t, &userID, donation.UserID)
	assert.Equal(t, "Asha", donation.DonorName)
}

func TestConfirmDonation_BadSignature(t *testing.T) {
	f := newFixture()

	err := f.svc.ConfirmDonation(context.Background(), Confirmation{
		OrderID:   "order_rzp_don",
		PaymentID: "pay_don",
		Signature: "deadbeef",
	}, 500, nil, "", "")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, f.donations.Donations)
}
