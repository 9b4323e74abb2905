package checkout

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

// FakeCartStore implements CartStore for testing
type FakeCartStore struct {
	ItemsByUser map[bson.ObjectID][]models.CartItem
	ItemsErr    error
	ClearErr    error
	ClearCalls  int
}

func NewFakeCartStore() *FakeCartStore {
	return &FakeCartStore{ItemsByUser: map[bson.ObjectID][]models.CartItem{}}
}

func (f *FakeCartStore) Items(_ context.Context, userID bson.ObjectID) ([]models.CartItem, error) {
	if f.ItemsErr != nil {
		return nil, f.ItemsErr
	}
	return f.ItemsByUser[userID], nil
}

func (f *FakeCartStore) Clear(_ context.Context, userID bson.ObjectID) error {
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.ClearCalls++
	delete(f.ItemsByUser, userID)
	return nil
}

// FakeCatalog implements Catalog for testing
type FakeCatalog struct {
	Prices  map[bson.ObjectID]float64
	Sellers map[bson.ObjectID]bson.ObjectID
}

func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		Prices:  map[bson.ObjectID]float64{},
		Sellers: map[bson.ObjectID]bson.ObjectID{},
	}
}

func (f *FakeCatalog) PricedEntry(_ context.Context, productID bson.ObjectID) (float64, bson.ObjectID, error) {
	price, ok := f.Prices[productID]
	if !ok {
		return 0, bson.ObjectID{}, errors.New("product not found")
	}
	return price, f.Sellers[productID], nil
}

// FakeOrderStore implements OrderStore with in-memory payment-id uniqueness
type FakeOrderStore struct {
	Orders    []*models.Order
	InsertErr error
}

func (f *FakeOrderStore) InsertIfAbsent(_ context.Context, order *models.Order) (bool, error) {
	if f.InsertErr != nil {
		return false, f.InsertErr
	}
	for _, existing := range f.Orders {
		if existing.PaymentID == order.PaymentID {
			return false, nil
		}
	}
	f.Orders = append(f.Orders, order)
	return true, nil
}

// FakeDonationStore implements DonationStore for testing
type FakeDonationStore struct {
	Donations []*models.Donation
	InsertErr error
}

func (f *FakeDonationStore) Insert(_ context.Context, donation *models.Donation) error {
	if f.InsertErr != nil {
		return f.InsertErr
	}
	f.Donations = append(f.Donations, donation)
	return nil
}

// FakeGateway implements Gateway for testing
type FakeGateway struct {
	IntentID    string
	Err         error
	Calls       int
	LastAmount  int64
	LastReceipt string
}

func (f *FakeGateway) CreateIntent(_ context.Context, amountMinor int64, _ string, receipt string) (string, error) {
	f.Calls++
	f.LastAmount = amountMinor
	f.LastReceipt = receipt
	if f.Err != nil {
		return "", f.Err
	}
	return f.IntentID, nil
}
