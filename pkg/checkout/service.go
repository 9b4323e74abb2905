// Package checkout orchestrates the payment-confirmation and
// order-materialization flow: cart pricing, gateway intent creation,
// confirmation verification, ledger write and cart clearing.
package checkout

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

// CartStore reads and clears a buyer's cart. Clear must be idempotent.
type CartStore interface {
	Items(ctx context.Context, userID bson.ObjectID) ([]models.CartItem, error)
	Clear(ctx context.Context, userID bson.ObjectID) error
}

// Catalog resolves the authoritative price and owning seller of a product.
// Cart items carry a display price, but it is never trusted here.
type Catalog interface {
	PricedEntry(ctx context.Context, productID bson.ObjectID) (price float64, sellerID bson.ObjectID, err error)
}

// OrderStore appends to the order ledger. InsertIfAbsent must be a
// unique-constraint-guarded insert keyed on the order's payment id, never
// a read-then-write check: (false, nil) means the entry already existed.
type OrderStore interface {
	InsertIfAbsent(ctx context.Context, order *models.Order) (inserted bool, err error)
}

// DonationStore records completed donations.
type DonationStore interface {
	Insert(ctx context.Context, donation *models.Donation) error
}

// Gateway mints payment intents at the external payment provider.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinor int64, currency, receipt string) (intentID string, err error)
}

type Config struct {
	Secret      string  // gateway shared secret for HMAC verification
	Currency    string  // store base currency, e.g. "INR"
	DonationMin float64
	DonationMax float64
}

type Service struct {
	carts     CartStore
	catalog   Catalog
	orders    OrderStore
	donations DonationStore
	gateway   Gateway
	cfg       Config
}

func NewService(carts CartStore, catalog Catalog, orders OrderStore, donations DonationStore, gateway Gateway, cfg Config) *Service {
	if cfg.Currency == "" {
		cfg.Currency = "INR"
	}
	if cfg.DonationMin == 0 {
		cfg.DonationMin = 1
	}
	if cfg.DonationMax == 0 {
		cfg.DonationMax = 100000
	}
	return &Service{
		carts:     carts,
		catalog:   catalog,
		orders:    orders,
		donations: donations,
		gateway:   gateway,
		cfg:       cfg,
	}
}

// Intent is what the client needs to open the hosted checkout widget.
type Intent struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Confirmation is the triple the gateway hands back after payment.
type Confirmation struct {
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// InitiateCheckout prices the buyer's cart from the catalog and mints a
// payment intent for the total. No local state is mutated, so a failed
// call can simply be retried.
func (s *Service) InitiateCheckout(ctx context.Context, buyerID bson.ObjectID) (*Intent, error) {
	items, err := s.carts.Items(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	total, _, err := s.priceItems(ctx, items)
	if err != nil {
		return nil, err
	}

	receipt := fmt.Sprintf("order_%d", time.Now().UnixMilli())
	intentID, err := s.gateway.CreateIntent(ctx, toMinorUnits(total), s.cfg.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return &Intent{OrderID: intentID, Amount: total, Currency: s.cfg.Currency}, nil
}

// ConfirmCheckout runs the ordered confirmation steps; any failure aborts
// the rest. The order write is idempotent on the gateway payment id, and
// the cart clear comes last so that a crash between the two steps is
// recovered by re-invoking with the same triple.
func (s *Service) ConfirmCheckout(ctx context.Context, buyerID bson.ObjectID, c Confirmation) error {
	if !VerifySignature(s.cfg.Secret, c.OrderID, c.PaymentID, c.Signature) {
		return ErrInvalidSignature
	}

	// Re-read the cart rather than trusting any snapshot from intent
	// creation: it may have changed in between.
	items, err := s.carts.Items(ctx, buyerID)
	if err != nil {
		return fmt.Errorf("read cart: %w", err)
	}

	if len(items) == 0 {
		// The only legitimate way to get here with a valid signature is a
		// replay after the order was written and the cart cleared. The
		// ledger entry already exists; re-clearing is a no-op.
		return s.clearCart(ctx, buyerID)
	}

	total, orderItems, err := s.priceItems(ctx, items)
	if err != nil {
		return err
	}

	order := &models.Order{
		UserID:      buyerID,
		Items:       orderItems,
		TotalAmount: total,
		PaymentID:   c.PaymentID,
		Status:      models.OrderStatusCompleted,
	}
	order.SetTimestamps()

	if _, err := s.orders.InsertIfAbsent(ctx, order); err != nil {
		return fmt.Errorf("record order: %w", err)
	}

	return s.clearCart(ctx, buyerID)
}

func (s *Service) clearCart(ctx context.Context, buyerID bson.ObjectID) error {
	if err := s.carts.Clear(ctx, buyerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// priceItems resolves every line against the catalog and returns the
// authoritative total alongside the ledger line items.
func (s *Service) priceItems(ctx context.Context, items []models.CartItem) (float64, []models.OrderItem, error) {
	var total float64
	orderItems := make([]models.OrderItem, 0, len(items))

	for _, item := range items {
		price, sellerID, err := s.catalog.PricedEntry(ctx, item.ProductID)
		if err != nil {
			return 0, nil, fmt.Errorf("price product %s: %w", item.ProductID.Hex(), err)
		}
		total += price * float64(item.Qty)
		orderItems = append(orderItems, models.OrderItem{
			ProductID: item.ProductID,
			SellerID:  sellerID,
			Quantity:  item.Qty,
			Price:     price,
		})
	}

	return total, orderItems, nil
}

// toMinorUnits converts a major-unit amount to the gateway's minor units
// (rupees to paise).
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
