package schema

import (
	"strconv"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

// Render serializes a dataset into its canonical sheet form, the exact
// shape Normalize accepts without reporting a correction.
func Render(d *core.Dataset) map[string]*Sheet {
	return map[string]*Sheet{
		SheetLedger:    renderLedger(d.Ledger),
		SheetBills:     renderBills(d.Bills),
		SheetBudgets:   renderBudgets(d.Budgets),
		SheetReserves:  renderReserves(d.Reserves),
		SheetMovements: renderMovements(d.Movements),
	}
}

func renderLedger(entries []core.LedgerEntry) *Sheet {
	s := &Sheet{Name: SheetLedger, Header: LedgerHeader}
	for _, e := range entries {
		s.Rows = append(s.Rows, []string{
			e.ID,
			e.Date.String(),
			e.Category,
			e.Subcategory,
			e.Amount.String(),
			e.Payment,
			e.Payer,
			e.Note,
			string(e.Origin),
			e.RecurringRef,
		})
	}
	return s
}

func renderBills(bills []core.BillTemplate) *Sheet {
	s := &Sheet{Name: SheetBills, Header: BillsHeader}
	for _, b := range bills {
		s.Rows = append(s.Rows, []string{
			b.ID,
			b.Description,
			b.Category,
			b.Amount.String(),
			strconv.Itoa(b.DueDay),
			b.Payment,
			b.Payer,
			strconv.FormatBool(b.Active),
			b.Note,
		})
	}
	return s
}

func renderBudgets(goals []core.BudgetGoal) *Sheet {
	s := &Sheet{Name: SheetBudgets, Header: BudgetsHeader}
	for _, g := range goals {
		s.Rows = append(s.Rows, []string{g.Category, g.Target.String()})
	}
	return s
}

func renderReserves(reserves []core.Reserve) *Sheet {
	s := &Sheet{Name: SheetReserves, Header: ReservesHeader}
	for _, r := range reserves {
		s.Rows = append(s.Rows, []string{
			r.ID,
			r.Name,
			r.Target.String(),
			strconv.FormatBool(r.Active),
			r.Note,
		})
	}
	return s
}

func renderMovements(movements []core.ReserveMovement) *Sheet {
	s := &Sheet{Name: SheetMovements, Header: MovementsHeader}
	for _, m := range movements {
		s.Rows = append(s.Rows, []string{
			m.ID,
			m.Date.String(),
			m.ReserveRef,
			string(m.Type),
			m.Amount.String(),
			m.Payer,
			m.Note,
		})
	}
	return s
}
