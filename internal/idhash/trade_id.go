// Package idhash derives deterministic identifiers for trade records.
// The same run on the same data always produces byte-identical IDs, which
// makes trade logs diffable across runs and safe to upsert into storage.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"equity-options-lab/internal/domain"
)

const dateLayout = "2006-01-02"

// EquityTradeID computes a deterministic trade ID using SHA256.
// Formula: SHA256(strategy|entry_date|exit_date|shares|entry_price)
// Returns the hex-encoded hash (64 characters).
func EquityTradeID(strategyName string, t domain.Trade) string {
	data := fmt.Sprintf("%s|%s|%s|%d|%s",
		strategyName,
		t.EntryDate.Format(dateLayout),
		t.ExitDate.Format(dateLayout),
		t.Shares,
		t.EntryPrice.String(),
	)
	return hashHex(data)
}

// OptionTradeID computes a deterministic trade ID for a settled option leg.
// Formula: SHA256(strategy|type|direction|strike|entry_date|expiration|contracts)
func OptionTradeID(strategyName string, t domain.OptionTrade) string {
	data := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%d",
		strategyName,
		t.Type,
		t.Direction,
		t.Strike.String(),
		t.EntryDate.Format(dateLayout),
		t.Expiration.Format(dateLayout),
		t.Contracts,
	)
	return hashHex(data)
}

// RunID identifies one backtest invocation: strategy, data span, and capital.
// The dates are the configured YYYY-MM-DD range bounds and may be empty when
// a run covers the full stored history.
func RunID(strategyName, startDate, endDate, initialCapital string) string {
	data := fmt.Sprintf("%s|%s|%s|%s",
		strategyName,
		startDate,
		endDate,
		initialCapital,
	)
	return hashHex(data)
}

func hashHex(data string) string {
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
