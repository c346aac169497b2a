package schema

import (
	"strings"

	"github.com/google/uuid"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

// Normalize validates and repairs every raw sheet of a document, returning
// the strict dataset plus whether any correction was made. A nil sheet means
// the section was missing entirely; it is recreated empty.
//
// Normalize(Render(d)) is a no-op for any dataset d: the store relies on
// this to re-save only when a load actually repaired something.
func Normalize(raw map[string]*Sheet) (*core.Dataset, bool) {
	d := &core.Dataset{}
	changed := false

	ledger, c := normalizeLedger(raw[SheetLedger])
	d.Ledger, changed = ledger, changed || c

	bills, c := normalizeBills(raw[SheetBills])
	d.Bills, changed = bills, changed || c

	budgets, c := normalizeBudgets(raw[SheetBudgets])
	d.Budgets, changed = budgets, changed || c

	reserves, c := normalizeReserves(raw[SheetReserves])
	d.Reserves, changed = reserves, changed || c

	movements, c := normalizeMovements(raw[SheetMovements])
	d.Movements, changed = movements, changed || c

	return d, changed
}

// begin starts the normalization of one sheet: it reports a correction when
// the section is missing or its header deviates from the canonical column
// set, and hands back the column index for cell access.
func begin(raw *Sheet, want []string) (idx map[string]int, rows [][]string, changed bool) {
	if raw == nil {
		return map[string]int{}, nil, true
	}
	return columnIndex(raw.Header), raw.Rows, !headerMatches(raw.Header, want)
}

func normalizeLedger(raw *Sheet) ([]core.LedgerEntry, bool) {
	idx, rows, changed := begin(raw, LedgerHeader)
	out := make([]core.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		var e core.LedgerEntry
		var c bool
		e.ID, c = ensureID(cell(idx, row, "ID"))
		changed = changed || c
		e.Date, c = coerceDate(cell(idx, row, "Data"))
		changed = changed || c
		e.Amount, c = coerceAmount(cell(idx, row, "Valor"))
		changed = changed || c
		e.Origin, c = coerceOrigin(cell(idx, row, "Origem"))
		changed = changed || c
		e.Category = cell(idx, row, "Categoria")
		e.Subcategory = cell(idx, row, "Subcategoria")
		e.Payment = cell(idx, row, "Pagamento")
		e.Payer = cell(idx, row, "Quem")
		e.Note = cell(idx, row, "Obs")
		e.RecurringRef = cell(idx, row, "RefRecorrente")
		out = append(out, e)
	}
	return out, changed
}

func normalizeBills(raw *Sheet) ([]core.BillTemplate, bool) {
	idx, rows, changed := begin(raw, BillsHeader)
	out := make([]core.BillTemplate, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		// A bill with no description has no identity the user can act
		// on; drop it rather than keep an orphan.
		desc := cell(idx, row, "Descricao")
		if desc == "" {
			changed = true
			continue
		}
		var b core.BillTemplate
		var c bool
		b.Description = desc
		b.ID, c = ensureID(cell(idx, row, "ID"))
		changed = changed || c
		b.Amount, c = coerceAmount(cell(idx, row, "Valor"))
		changed = changed || c
		b.DueDay, c = coerceDueDay(cell(idx, row, "DiaVencimento"))
		changed = changed || c
		b.Active, c = coerceBool(cell(idx, row, "Ativo"))
		changed = changed || c
		b.Category = cell(idx, row, "Categoria")
		b.Payment = cell(idx, row, "Pagamento")
		b.Payer = cell(idx, row, "Quem")
		b.Note = cell(idx, row, "Obs")
		out = append(out, b)
	}
	return out, changed
}

func normalizeBudgets(raw *Sheet) ([]core.BudgetGoal, bool) {
	idx, rows, changed := begin(raw, BudgetsHeader)
	out := make([]core.BudgetGoal, 0, len(rows))
	haveGeneral := false
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		category := cell(idx, row, "Categoria")
		if category == "" {
			changed = true
			continue
		}
		if strings.EqualFold(category, core.GeneralCategory) {
			// Exactly one whole-month row; later duplicates collapse
			// into the first.
			if haveGeneral {
				changed = true
				continue
			}
			haveGeneral = true
		}
		target, c := coerceAmount(cell(idx, row, "Meta"))
		changed = changed || c
		out = append(out, core.BudgetGoal{Category: category, Target: target})
	}
	if !haveGeneral {
		out = append(out, core.BudgetGoal{Category: core.GeneralCategory})
		changed = true
	}
	return out, changed
}

func normalizeReserves(raw *Sheet) ([]core.Reserve, bool) {
	idx, rows, changed := begin(raw, ReservesHeader)
	out := make([]core.Reserve, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		name := cell(idx, row, "Nome")
		if name == "" {
			changed = true
			continue
		}
		var r core.Reserve
		var c bool
		r.Name = name
		r.ID, c = ensureID(cell(idx, row, "ID"))
		changed = changed || c
		r.Target, c = coerceAmount(cell(idx, row, "Meta"))
		changed = changed || c
		r.Active, c = coerceBool(cell(idx, row, "Ativo"))
		changed = changed || c
		r.Note = cell(idx, row, "Obs")
		out = append(out, r)
	}
	return out, changed
}

func normalizeMovements(raw *Sheet) ([]core.ReserveMovement, bool) {
	idx, rows, changed := begin(raw, MovementsHeader)
	out := make([]core.ReserveMovement, 0, len(rows))
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		var m core.ReserveMovement
		var c bool
		m.ID, c = ensureID(cell(idx, row, "ID"))
		changed = changed || c
		m.Date, c = coerceDate(cell(idx, row, "Data"))
		changed = changed || c
		m.Type, c = coerceMovementType(cell(idx, row, "Tipo"))
		changed = changed || c
		m.Amount, c = coerceAmount(cell(idx, row, "Valor"))
		changed = changed || c
		m.ReserveRef = cell(idx, row, "Reserva")
		m.Payer = cell(idx, row, "Quem")
		m.Note = cell(idx, row, "Obs")
		out = append(out, m)
	}
	return out, changed
}

// ensureID assigns a fresh opaque identifier to rows that lack one.
// Existing identifiers are never reused or renumbered.
func ensureID(id string) (string, bool) {
	if id != "" {
		return id, false
	}
	return uuid.NewString(), true
}
