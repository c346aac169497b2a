// Package installment expands a single purchase into N dated, penny-accurate
// ledger entries.
package installment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

// Split divides a total into n installment amounts. Every installment gets
// the rounded per-installment base except the last, which absorbs the
// rounding remainder so the amounts always sum to the total exactly.
// n <= 1 returns the total as a single amount.
func Split(total core.Money, n int) []core.Money {
	if n <= 1 {
		return []core.Money{total}
	}
	base := decimal.NewFromInt(total.Cents).
		DivRound(decimal.NewFromInt(int64(n)), 0).
		IntPart()
	out := make([]core.Money, n)
	for i := 0; i < n-1; i++ {
		out[i] = core.NewMoney(base)
	}
	out[n-1] = core.NewMoney(total.Cents - base*int64(n-1))
	return out
}

// Schedule expands base into n entries, one per month starting at first.
// Installment i keeps first's day-of-month clamped to each target month,
// unless fixedDay (> 0) overrides it; a fixed day of 1 is silently bumped
// to 2 to avoid day-one settlement. Every entry gets a fresh identifier,
// origin installment, and a shared group marker so siblings can be found
// later. n <= 1 returns base unmodified.
func Schedule(ctx context.Context, base core.LedgerEntry, n int, first core.Date, fixedDay int) []core.LedgerEntry {
	if n <= 1 {
		return []core.LedgerEntry{base}
	}

	group := uuid.NewString()
	amounts := Split(base.Amount, n)
	label := strings.TrimSpace(base.Subcategory)
	if label == "" {
		label = strings.TrimSpace(base.Category)
	}

	out := make([]core.LedgerEntry, n)
	for i := 0; i < n; i++ {
		due := first.AddMonths(i)
		if fixedDay > 0 {
			day := fixedDay
			if day == 1 {
				day = 2
			}
			due = core.NewDate(due.Year(), due.Month(), core.ClampDay(day, due.Year(), due.Month()))
		}

		e := base
		e.ID = uuid.NewString()
		e.Date = due
		e.Amount = amounts[i]
		e.Origin = core.OriginInstallment
		e.RecurringRef = group
		e.Subcategory = fmt.Sprintf("%s (Parcela %d/%d)", label, i+1, n)
		e.Note = appendGroupMarker(base.Note, group)
		out[i] = e
	}

	slog.DebugContext(ctx, "Purchase split into installments",
		"group", group,
		"installments", n,
		"total_cents", base.Amount.Cents,
		"first_due", out[0].Date.String())
	return out
}

// appendGroupMarker embeds the short form of the group identifier in the
// note so the link between siblings survives in any tabular view.
func appendGroupMarker(note, group string) string {
	marker := fmt.Sprintf("[parcelamento %s]", group[:8])
	if note == "" {
		return marker
	}
	return note + " " + marker
}
