// Package report computes the read-side aggregations shown on the
// dashboard: monthly breakdowns, budget progress and reserve progress.
// Everything here is a pure function over a dataset snapshot.
package report

import (
	"sort"
	"strings"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/recurring"
)

// Row is one line of a breakdown: an aggregated amount plus its share of
// the breakdown's total.
type Row struct {
	Name    string
	Amount  core.Money
	Percent float64
}

// MonthSummary aggregates one calendar month of the ledger. Entries with
// absent dates are excluded; invoice payments are excluded from every
// total, since they settle purchases already counted when they happened.
type MonthSummary struct {
	Year, Month int

	Total         core.Money
	FixedTotal    core.Money
	VariableTotal core.Money

	ByCategory []Row
	ByPayer    []Row
	ByPayment  []Row
}

// Month builds the summary for (year, month).
//
// An entry counts as fixed when its origin is fixed or it references an
// active bill template; everything else is variable. Classification is
// strictly reference-based: matching by category or description text would
// misclassify unrelated variable spending that happens to share a name
// with a bill.
func Month(d *core.Dataset, year, month int) MonthSummary {
	activeBills := make(map[string]bool, len(d.Bills))
	for _, b := range d.Bills {
		if b.Active {
			activeBills[b.ID] = true
		}
	}

	s := MonthSummary{Year: year, Month: month}
	byCategory := map[string]int64{}
	byPayer := map[string]int64{}
	byPayment := map[string]int64{}

	for _, e := range d.Ledger {
		if !e.Date.InMonth(year, month) {
			continue
		}
		if e.Origin == core.OriginInvoice {
			continue
		}
		s.Total = s.Total.Add(e.Amount)
		if e.Origin == core.OriginFixed || (e.RecurringRef != "" && activeBills[e.RecurringRef]) {
			s.FixedTotal = s.FixedTotal.Add(e.Amount)
		} else {
			s.VariableTotal = s.VariableTotal.Add(e.Amount)
		}
		byCategory[e.Category] += e.Amount.Cents
		byPayer[e.Payer] += e.Amount.Cents
		byPayment[e.Payment] += e.Amount.Cents
	}

	s.ByCategory = toRows(byCategory, s.Total)
	s.ByPayer = toRows(byPayer, s.Total)
	s.ByPayment = toRows(byPayment, s.Total)
	return s
}

// toRows turns an aggregation map into rows sorted by amount descending,
// with each row's share of the breakdown total (0 when the total is 0).
func toRows(agg map[string]int64, total core.Money) []Row {
	rows := make([]Row, 0, len(agg))
	for name, cents := range agg {
		r := Row{Name: name, Amount: core.NewMoney(cents)}
		if total.Cents != 0 {
			r.Percent = float64(cents) / float64(total.Cents) * 100
		}
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Cents != rows[j].Amount.Cents {
			return rows[i].Amount.Cents > rows[j].Amount.Cents
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// BudgetRow is one category's progress against its monthly target.
type BudgetRow struct {
	Category    string
	Target      core.Money
	Spent       core.Money
	UsedPercent float64
	Remaining   core.Money
	Excess      core.Money
}

// BudgetProgress computes per-category progress for every category with a
// nonzero target, plus the reserved whole-month row. The whole-month
// target is compared against projected spend: what the month already cost
// plus the fixed bills still to come.
func BudgetProgress(d *core.Dataset, year, month int) []BudgetRow {
	summary := Month(d, year, month)
	spentByCategory := map[string]int64{}
	for _, r := range summary.ByCategory {
		spentByCategory[r.Name] = r.Amount.Cents
	}

	var out []BudgetRow
	for _, g := range d.Budgets {
		if strings.EqualFold(g.Category, core.GeneralCategory) {
			projected := summary.Total.Add(recurring.Unmaterialized(d.Ledger, d.Bills, year, month))
			out = append(out, progressRow(g.Category, g.Target, projected))
			continue
		}
		if g.Target.Cents == 0 {
			continue
		}
		out = append(out, progressRow(g.Category, g.Target, core.NewMoney(spentByCategory[g.Category])))
	}
	return out
}

func progressRow(category string, target, spent core.Money) BudgetRow {
	r := BudgetRow{
		Category:  category,
		Target:    target,
		Spent:     spent,
		Remaining: target.Sub(spent).MaxZero(),
		Excess:    spent.Sub(target).MaxZero(),
	}
	if target.Cents != 0 {
		r.UsedPercent = float64(spent.Cents) / float64(target.Cents) * 100
	}
	return r
}

// ReserveRow is one active reserve with its derived balance.
type ReserveRow struct {
	Reserve   core.Reserve
	Balance   core.Money
	Percent   float64
	Remaining core.Money
}

// ReserveProgress derives every active reserve's balance from its
// movements: deposits minus withdrawals, never a stored figure.
func ReserveProgress(d *core.Dataset) []ReserveRow {
	balances := map[string]int64{}
	for _, m := range d.Movements {
		switch m.Type {
		case core.Withdrawal:
			balances[m.ReserveRef] -= m.Amount.Cents
		default:
			balances[m.ReserveRef] += m.Amount.Cents
		}
	}

	var out []ReserveRow
	for _, r := range d.Reserves {
		if !r.Active {
			continue
		}
		row := ReserveRow{
			Reserve: r,
			Balance: core.NewMoney(balances[r.ID]),
		}
		row.Remaining = r.Target.Sub(row.Balance).MaxZero()
		if r.Target.Cents != 0 {
			row.Percent = float64(row.Balance.Cents) / float64(r.Target.Cents) * 100
		}
		out = append(out, row)
	}
	return out
}

// LatestEntries returns the n most recent ledger entries, newest first.
// Entries with absent dates sort last. The input is not modified.
func LatestEntries(ledger []core.LedgerEntry, n int) []core.LedgerEntry {
	sorted := append([]core.LedgerEntry(nil), ledger...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		if a.IsEmpty() || b.IsEmpty() {
			return b.IsEmpty() && !a.IsEmpty()
		}
		return a.After(b.Time)
	})
	if n > 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
