package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const RejectReasonInsufficientBalance = "insufficient balance"

// TradeResult is the ledger's answer to an opportunity notification.
// A rejection is a business outcome, not an error.
type TradeResult struct {
	Accepted bool
	Reason   string // Empty when accepted
}

// Accept returns an accepted result.
func Accept() TradeResult {
	return TradeResult{Accepted: true}
}

// Reject returns a rejected result with the given reason.
func Reject(reason string) TradeResult {
	return TradeResult{Accepted: false, Reason: reason}
}

// TradeRecord is one simulated trade persisted by the ledger.
type TradeRecord struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ExecutedAtMs  int64           `gorm:"index" json:"executed_at_ms"` // Detection timestamp, Unix milliseconds
	Strategy      string          `json:"strategy"`                    // "TRIANGULAR" or "CYCLE"
	Path          string          `json:"path"`                        // "A -> B -> C -> A"
	InitialAmount decimal.Decimal `gorm:"type:text" json:"initial_amount"`
	FinalAmount   decimal.Decimal `gorm:"type:text" json:"final_amount"`
	NetProfit     decimal.Decimal `gorm:"type:text" json:"net_profit"`
	CreatedAt     time.Time       `json:"created_at"`
}
