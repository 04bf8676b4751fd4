package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	apperrors "affiliate-bot-backend/internal/common/errors"
	usermodels "affiliate-bot-backend/internal/features/user/models"
	userrepo "affiliate-bot-backend/internal/features/user/repository"
	"affiliate-bot-backend/internal/features/withdrawal/models"
	"affiliate-bot-backend/internal/features/withdrawal/repository"
	"affiliate-bot-backend/internal/platform/payout"
	"affiliate-bot-backend/internal/service/notifications"
)

type WithdrawalService interface {
	Submit(ctx context.Context, userID int64, amount float64, method, destination string) (*models.Withdrawal, error)
	History(ctx context.Context, userID int64, limit int) ([]models.Withdrawal, error)
}

type withdrawalService struct {
	ledger     repository.WithdrawalRepository
	users      userrepo.UserRepository
	processors payout.Registry
	hub        notifications.Hub
	logger     *log.Logger
}

func NewWithdrawalService(ledger repository.WithdrawalRepository, users userrepo.UserRepository, processors payout.Registry, hub notifications.Hub) WithdrawalService {
	return &withdrawalService{
		ledger:     ledger,
		users:      users,
		processors: processors,
		hub:        hub,
		logger:     log.New(os.Stdout, "[Withdrawal] ", log.LstdFlags),
	}
}

// Submit reserves the amount out of the user's balance, then charges the
// payout processor. The insufficient-funds check and the debit are one
// serialized update, so concurrent withdrawals cannot both pass the check
// and the processor is never charged beyond what the balance covers. A
// failed charge credits the reservation back and is still recorded in the
// ledger so the history shows the attempt.
func (s *withdrawalService) Submit(ctx context.Context, userID int64, amount float64, method, destination string) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, apperrors.NewValidationError("amount", "must be positive")
	}
	if destination == "" {
		return nil, apperrors.NewValidationError("destination", "must not be empty")
	}
	processor, ok := s.processors[method]
	if !ok {
		return nil, apperrors.NewValidationError("method", fmt.Sprintf("unknown payout method %q", method))
	}

	if _, err := s.users.Update(ctx, userID, func(u *usermodels.User) error {
		if u.AvailableBalance < amount {
			return apperrors.NewInsufficientFundsError(amount, u.AvailableBalance)
		}
		u.AvailableBalance -= amount
		return nil
	}); err != nil {
		if err == userrepo.ErrNotFound {
			return nil, apperrors.NewUserNotFoundError(userID)
		}
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.NewStorageError("reserve balance", err)
	}

	withdrawal := &models.Withdrawal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Amount:      amount,
		Method:      method,
		Destination: destination,
		CreatedAt:   time.Now(),
	}

	receipt, err := processor.Charge(ctx, amount, destination)
	if err != nil {
		s.refund(ctx, userID, amount)
		withdrawal.Status = models.StatusFailed
		withdrawal.FailureReason = err.Error()
		s.record(ctx, withdrawal)
		return nil, apperrors.NewPaymentFailedError(method, err)
	}

	withdrawal.Status = models.StatusCompleted
	withdrawal.Fee = receipt.Fee
	withdrawal.TransactionID = receipt.TransactionID

	// The amount is already debited and the funds are on their way; this
	// update only settles the fee and the activity entry.
	if _, err := s.users.Update(ctx, userID, func(u *usermodels.User) error {
		u.Profit -= receipt.Fee
		u.AppendActivity(fmt.Sprintf("Withdrew $%.2f via %s", amount, method))
		return nil
	}); err != nil {
		s.logger.Printf("fee settlement failed user=%d tx=%s: %v", userID, receipt.TransactionID, err)
	}

	s.record(ctx, withdrawal)
	s.logger.Printf("withdrawal completed user=%d amount=%.2f method=%s tx=%s", userID, amount, method, receipt.TransactionID)
	return withdrawal, nil
}

// refund returns a reservation after a failed charge. A failed refund is
// logged for reconciliation; there is nothing else safe to do with it.
func (s *withdrawalService) refund(ctx context.Context, userID int64, amount float64) {
	if _, err := s.users.Update(ctx, userID, func(u *usermodels.User) error {
		u.AvailableBalance += amount
		return nil
	}); err != nil {
		s.logger.Printf("refund failed user=%d amount=%.2f: %v", userID, amount, err)
	}
}

// record appends to the ledger and publishes the status event. Ledger
// failures are logged, not returned; the withdrawal outcome stands.
func (s *withdrawalService) record(ctx context.Context, w *models.Withdrawal) {
	if err := s.ledger.Append(ctx, w); err != nil {
		s.logger.Printf("ledger append failed user=%d id=%s: %v", w.UserID, w.ID, err)
	}
	s.hub.Publish(ctx, notifications.Event{
		Type:   notifications.EventWithdrawalStatus,
		UserID: w.UserID,
		Payload: map[string]interface{}{
			"withdrawal_id": w.ID,
			"status":        w.Status,
			"amount":        w.Amount,
			"method":        w.Method,
		},
	})
}

func (s *withdrawalService) History(ctx context.Context, userID int64, limit int) ([]models.Withdrawal, error) {
	withdrawals, err := s.ledger.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.NewStorageError("list withdrawals", err)
	}
	return withdrawals, nil
}
