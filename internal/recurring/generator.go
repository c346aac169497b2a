// Package recurring materializes ledger entries from active bill templates,
// one per template per calendar month, idempotently.
package recurring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

// Generate appends one ledger entry per active bill template that has not
// yet been materialized for the given month, and returns the extended
// ledger plus how many entries were created and skipped.
//
// A template counts as already materialized when any existing entry has
// origin fixed and references the template within the same month; running
// Generate twice for the same month therefore creates nothing the second
// time, regardless of what else the ledger contains.
func Generate(ctx context.Context, ledger []core.LedgerEntry, bills []core.BillTemplate, year, month int) ([]core.LedgerEntry, int, int) {
	materialized := make(map[string]bool)
	for _, e := range ledger {
		if e.Origin == core.OriginFixed && e.RecurringRef != "" && e.Date.InMonth(year, month) {
			materialized[e.RecurringRef] = true
		}
	}

	out := ledger
	created, skipped := 0, 0
	for _, b := range bills {
		if !b.Active {
			continue
		}
		if materialized[b.ID] {
			skipped++
			continue
		}
		due := core.NewDate(year, month, core.ClampDay(b.DueDay, year, month))
		entry := core.LedgerEntry{
			ID:           uuid.NewString(),
			Date:         due,
			Category:     b.Category,
			Subcategory:  b.Description,
			Amount:       b.Amount,
			Payment:      b.Payment,
			Payer:        b.Payer,
			Note:         fmt.Sprintf("Conta fixa: %s", b.Description),
			Origin:       core.OriginFixed,
			RecurringRef: b.ID,
		}
		out = append(out, entry)
		created++
		slog.InfoContext(ctx, "Materialized fixed bill",
			"bill_id", b.ID,
			"description", b.Description,
			"due", due.String(),
			"amount_cents", b.Amount.Cents)
	}

	slog.InfoContext(ctx, "Fixed bill generation complete",
		"year", year,
		"month", month,
		"created", created,
		"skipped", skipped)
	return out, created, skipped
}

// Unmaterialized sums the amounts of active templates that have no fixed
// entry in the given month yet. The reporting engine uses it to project
// the remaining fixed spend against the whole-month budget.
func Unmaterialized(ledger []core.LedgerEntry, bills []core.BillTemplate, year, month int) core.Money {
	materialized := make(map[string]bool)
	for _, e := range ledger {
		if e.Origin == core.OriginFixed && e.RecurringRef != "" && e.Date.InMonth(year, month) {
			materialized[e.RecurringRef] = true
		}
	}
	var total core.Money
	for _, b := range bills {
		if b.Active && !materialized[b.ID] {
			total = total.Add(b.Amount)
		}
	}
	return total
}
