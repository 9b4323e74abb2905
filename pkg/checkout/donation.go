package checkout

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/buybloom/backend/pkg/models"
)

// InitiateDonation mints a payment intent for a bare amount. Donations
// have no cart behind them; the amount is only bounds-checked.
func (s *Service) InitiateDonation(ctx context.Context, amount float64) (*Intent, error) {
	if amount < s.cfg.DonationMin || amount > s.cfg.DonationMax {
		return nil, ErrInvalidAmount
	}

	receipt := fmt.Sprintf("donation_%d", time.Now().UnixMilli())
	intentID, err := s.gateway.CreateIntent(ctx, toMinorUnits(amount), s.cfg.Currency, receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return &Intent{OrderID: intentID, Amount: amount, Currency: s.cfg.Currency}, nil
}

// ConfirmDonation verifies the confirmation triple and records the
// donation, attributed to a user when one is logged in or to the given
// donor name/email otherwise. Donations carry no idempotency key: a
// duplicated callback records twice. Known gap, kept until product
// decides dedup semantics.
func (s *Service) ConfirmDonation(ctx context.Context, c Confirmation, amount float64, userID *bson.ObjectID, donorName, donorEmail string) error {
	if !VerifySignature(s.cfg.Secret, c.OrderID, c.PaymentID, c.Signature) {
		return ErrInvalidSignature
	}

	if amount < s.cfg.DonationMin || amount > s.cfg.DonationMax {
		return ErrInvalidAmount
	}

	donation := &models.Donation{
		UserID:     userID,
		DonorName:  donorName,
		DonorEmail: donorEmail,
		Amount:     amount,
		PaymentID:  c.PaymentID,
	}
	if err := s.donations.Insert(ctx, donation); err != nil {
		return fmt.Errorf("record donation: %w", err)
	}
	return nil
}
