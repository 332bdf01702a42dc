package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"creator-platform/internal/blockchain"
	"creator-platform/internal/earlybird"
	"creator-platform/internal/models"
)

// SunPerUSDT is the smallest-unit scale of USDT on TRON.
const SunPerUSDT = 1_000_000

// PaymentService verifies incoming on-chain payments and disburses the
// creator's revenue share.
type PaymentService struct {
	db    *gorm.DB
	chain blockchain.ChainClient
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(db *gorm.DB, chain blockchain.ChainClient) *PaymentService {
	return &PaymentService{db: db, chain: chain}
}

// PaymentResult reports a confirmed disbursement.
type PaymentResult struct {
	CreatorShare  decimal.Decimal `json:"creatorShare"`
	TransactionID string          `json:"transactionId"`
}

// Confirm verifies the incoming transaction, pays the creator their share
// and records the outcome. The ledger is written only after the transfer is
// confirmed, in a single database transaction; the unique index on the
// payout's tx id rejects a replayed transaction before any chain call.
func (s *PaymentService) Confirm(ctx context.Context, creatorID, txID string, amount decimal.Decimal) (*PaymentResult, error) {
	var creator models.Creator
	if err := s.db.First(&creator, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCreatorNotFound
		}
		return nil, fmt.Errorf("failed to fetch creator: %w", err)
	}

	if creator.WalletAddress == nil || *creator.WalletAddress == "" {
		return nil, ErrNoWallet
	}

	var processed int64
	if err := s.db.Model(&models.Payout{}).Where("tx_id = ?", txID).Count(&processed).Error; err != nil {
		return nil, fmt.Errorf("failed to check payout history: %w", err)
	}
	if processed > 0 {
		return nil, ErrTxAlreadyProcessed
	}

	tx, err := s.chain.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	if tx == nil || !tx.Confirmed {
		return nil, ErrTxInvalid
	}

	expectedSun := amount.Mul(decimal.NewFromInt(SunPerUSDT))
	if !expectedSun.IsInteger() || !decimal.NewFromInt(tx.Amount).Equal(expectedSun) {
		return nil, ErrAmountMismatch
	}

	var conditions models.CreatorConditions
	if err := s.db.First(&conditions, "creator_id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConditionsNotFound
		}
		return nil, fmt.Errorf("failed to fetch conditions: %w", err)
	}

	sharePercent := earlybird.SharePercent(
		creator.IsEarlyBird,
		creator.BonusEligible(),
		conditions.ConditionsMet,
	)
	creatorShare := amount.Mul(decimal.NewFromInt(sharePercent)).Div(decimal.NewFromInt(100))
	shareSun := creatorShare.Mul(decimal.NewFromInt(SunPerUSDT)).IntPart()

	transferTxID, err := s.chain.TransferToken(ctx, *creator.WalletAddress, shareSun)
	if err != nil || transferTxID == "" {
		log.Printf("Disbursement failed for creator %s tx %s: %v", creatorID, txID, err)
		return nil, ErrDisbursement
	}

	err = s.db.Transaction(func(dbTx *gorm.DB) error {
		payout := models.Payout{
			ID:           uuid.New(),
			TxID:         txID,
			CreatorID:    creatorID,
			Amount:       amount,
			SharePercent: sharePercent,
			CreatorShare: creatorShare,
			TransferTxID: transferTxID,
		}
		if err := dbTx.Create(&payout).Error; err != nil {
			return fmt.Errorf("failed to record payout: %w", err)
		}

		if err := dbTx.Model(&models.Creator{}).
			Where("id = ?", creatorID).
			Update("revenue", gorm.Expr("revenue + ?", creatorShare)).Error; err != nil {
			return fmt.Errorf("failed to update revenue: %w", err)
		}

		notification := models.Notification{
			CreatorID: creatorID,
			Message:   fmt.Sprintf("Payment received! You earned %s USDT.", creatorShare.String()),
		}
		if err := dbTx.Create(&notification).Error; err != nil {
			return fmt.Errorf("failed to create payout notification: %w", err)
		}
		return nil
	})
	if err != nil {
		// Funds already moved on-chain; the ledger write must be retried by
		// the operator from the transfer tx id in the logs.
		log.Printf("Ledger write failed after transfer %s: %v", transferTxID, err)
		return nil, fmt.Errorf("failed to record payout: %w", err)
	}

	log.Printf("Payment confirmed: creator=%s tx=%s share=%d%% paid=%s transfer=%s",
		creatorID, txID, sharePercent, creatorShare.String(), transferTxID)

	return &PaymentResult{
		CreatorShare:  creatorShare,
		TransactionID: transferTxID,
	}, nil
}
