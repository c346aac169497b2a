package schema

import (
	"reflect"
	"testing"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

func TestNormalizeIdempotent(t *testing.T) {
	raw := map[string]*Sheet{
		SheetLedger: {
			Name:   SheetLedger,
			Header: []string{"Data", "Categoria", "Valor", "Quem"}, // legacy layout
			Rows: [][]string{
				{"2025-03-10", "Alimentação", "120,50", "Roney"},
				{"10/03/2025", "Transporte", "abc", "Adriele"},
			},
		},
		SheetBills: {
			Name:   SheetBills,
			Header: []string{"Descricao", "Valor", "DiaVencimento", "Ativo"},
			Rows: [][]string{
				{"Aluguel", "1500", "5", "sim"},
				{"", "10", "1", "true"}, // blank description: dropped
			},
		},
		SheetBudgets: {
			Name:   SheetBudgets,
			Header: []string{"Categoria", "Meta"},
			Rows:   [][]string{{"Alimentação", "900"}},
		},
		// reservas and movimentos_reserva missing entirely
	}

	first, changed := Normalize(raw)
	if !changed {
		t.Fatal("first normalization of a legacy document must report a change")
	}

	second, changedAgain := Normalize(Render(first))
	if changedAgain {
		t.Error("normalizing an already-normalized document must report no change")
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("second normalization produced a different dataset")
	}
}

func TestNormalizeAssignsIDs(t *testing.T) {
	raw := map[string]*Sheet{
		SheetLedger: {
			Name:   SheetLedger,
			Header: LedgerHeader,
			Rows: [][]string{
				{"keep-me", "2025-01-01", "Lazer", "", "10.00", "PIX", "Roney", "", "", ""},
				{"", "2025-01-02", "Lazer", "", "20.00", "PIX", "Adriele", "", "", ""},
			},
		},
	}
	d, changed := Normalize(raw)
	if !changed {
		t.Fatal("assigning an identifier must count as a change")
	}
	if d.Ledger[0].ID != "keep-me" {
		t.Errorf("existing identifier was rewritten: %q", d.Ledger[0].ID)
	}
	if d.Ledger[1].ID == "" {
		t.Error("blank identifier was not assigned")
	}
	if d.Ledger[1].ID == d.Ledger[0].ID {
		t.Error("assigned identifier collides with an existing one")
	}
}

func TestNormalizeMissingSheet(t *testing.T) {
	d, changed := Normalize(map[string]*Sheet{})
	if !changed {
		t.Error("recreating missing sections must count as a change")
	}
	if d.Reserves == nil || len(d.Reserves) != 0 {
		t.Errorf("missing reserves section should yield an empty table, got %#v", d.Reserves)
	}
	if len(d.Budgets) != 1 || d.Budgets[0].Category != core.GeneralCategory {
		t.Errorf("missing budgets section should yield only the reserved row, got %#v", d.Budgets)
	}
}

func TestNormalizeGeneralBudgetRow(t *testing.T) {
	t.Run("appended when absent", func(t *testing.T) {
		raw := map[string]*Sheet{SheetBudgets: {
			Name:   SheetBudgets,
			Header: BudgetsHeader,
			Rows:   [][]string{{"Moradia", "2000.00"}},
		}}
		d, _ := Normalize(raw)
		if len(d.Budgets) != 2 || d.Budgets[1].Category != core.GeneralCategory {
			t.Errorf("expected appended %q row, got %#v", core.GeneralCategory, d.Budgets)
		}
	})

	t.Run("case-insensitive duplicate collapses", func(t *testing.T) {
		raw := map[string]*Sheet{SheetBudgets: {
			Name:   SheetBudgets,
			Header: BudgetsHeader,
			Rows:   [][]string{{"geral", "5000.00"}, {"GERAL", "1.00"}},
		}}
		d, changed := Normalize(raw)
		if !changed {
			t.Error("collapsing duplicates must count as a change")
		}
		count := 0
		for _, g := range d.Budgets {
			if g.Category == "geral" || g.Category == "GERAL" {
				count++
			}
		}
		if count != 1 {
			t.Errorf("expected exactly one whole-month row, found %d", count)
		}
		if d.Budgets[0].Target.Cents != 500000 {
			t.Errorf("first row must win, got %v", d.Budgets[0].Target)
		}
	})
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		input       string
		want        bool
		wantChanged bool
	}{
		{"true", true, false},
		{"false", false, false},
		{"TRUE", true, true},
		{"1", true, true},
		{"sim", true, true},
		{"Sim", true, true},
		{"yes", true, true},
		{"Y", true, true},
		{"0", false, true},
		{"nao", false, true},
		{"", false, true},
	}
	for _, tt := range tests {
		got, changed := coerceBool(tt.input)
		if got != tt.want || changed != tt.wantChanged {
			t.Errorf("coerceBool(%q) = (%v, %v), want (%v, %v)",
				tt.input, got, changed, tt.want, tt.wantChanged)
		}
	}
}

func TestCoerceDate(t *testing.T) {
	d, changed := coerceDate("2025-03-31")
	if changed || !d.Equal(core.NewDate(2025, 3, 31).Time) {
		t.Errorf("canonical date mis-coerced: %s changed=%v", d, changed)
	}

	d, changed = coerceDate("31/03/2025")
	if !changed || !d.Equal(core.NewDate(2025, 3, 31).Time) {
		t.Errorf("legacy date mis-coerced: %s changed=%v", d, changed)
	}

	d, changed = coerceDate("")
	if changed || !d.IsEmpty() {
		t.Errorf("empty cell must be a valid absent date, got %s changed=%v", d, changed)
	}

	d, changed = coerceDate("not a date")
	if !changed || !d.IsEmpty() {
		t.Errorf("unparseable date must become absent with a change, got %s changed=%v", d, changed)
	}
}

func TestCoerceAmount(t *testing.T) {
	m, changed := coerceAmount("12,50")
	if changed || m.Cents != 1250 {
		t.Errorf("comma amount: got %d cents changed=%v", m.Cents, changed)
	}
	m, changed = coerceAmount("garbage")
	if !changed || m.Cents != 0 {
		t.Errorf("unparseable amount must coerce to zero with a change, got %d changed=%v", m.Cents, changed)
	}
	m, changed = coerceAmount("-5")
	if !changed || m.Cents != 0 {
		t.Errorf("negative amount must coerce to zero with a change, got %d changed=%v", m.Cents, changed)
	}
}

func TestNormalizeDropsBlankReserveName(t *testing.T) {
	raw := map[string]*Sheet{SheetReserves: {
		Name:   SheetReserves,
		Header: ReservesHeader,
		Rows: [][]string{
			{"r1", "Viagem", "6000.00", "true", ""},
			{"r2", "", "100.00", "true", ""},
		},
	}}
	d, changed := Normalize(raw)
	if !changed {
		t.Error("dropping an orphan row must count as a change")
	}
	if len(d.Reserves) != 1 || d.Reserves[0].Name != "Viagem" {
		t.Errorf("expected only the named reserve to survive, got %#v", d.Reserves)
	}
}

func TestNormalizeMovementTypes(t *testing.T) {
	raw := map[string]*Sheet{SheetMovements: {
		Name:   SheetMovements,
		Header: MovementsHeader,
		Rows: [][]string{
			{"m1", "2025-01-10", "r1", "deposit", "1000.00", "Roney", ""},
			{"m2", "2025-01-11", "r1", "saque", "200.00", "Adriele", ""},
			{"m3", "2025-01-12", "r1", "???", "50.00", "Roney", ""},
		},
	}}
	d, _ := Normalize(raw)
	want := []core.MovementType{core.Deposit, core.Withdrawal, core.Deposit}
	for i, m := range d.Movements {
		if m.Type != want[i] {
			t.Errorf("movement %d: type = %q, want %q", i, m.Type, want[i])
		}
	}
}
