package core

import (
	"errors"
	"strings"
)

// Origin tags a ledger entry with how it came to exist. Stored values are
// stable on disk and must not change between releases.
const (
	OriginManual      Origin = "manual"
	OriginFixed       Origin = "fixed"
	OriginInstallment Origin = "installment"
	OriginInvoice     Origin = "invoice-payment"
	OriginNone        Origin = ""
)

const (
	Deposit    MovementType = "deposit"
	Withdrawal MovementType = "withdrawal"
)

// GeneralCategory is the reserved budget row holding the whole-month ceiling.
// It is matched case-insensitively and never offered as a transaction category.
const GeneralCategory = "Geral"

var (
	// PaymentMethods and Payers are the fixed vocabularies the household uses.
	PaymentMethods = []string{"PIX", "Cartão Pão de Açucar", "Cartão Nubank", "Swile", "Pluxee"}
	Payers         = []string{"Roney", "Adriele"}

	// DefaultCategories seed the budget sheet on first run.
	DefaultCategories = []string{"Alimentação", "Transporte", "Moradia", "Lazer", "Outros"}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDueDay    = errors.New("due day must be between 1 and 31")
)

type (
	Origin       string
	MovementType string

	// LedgerEntry is one recorded expense transaction.
	LedgerEntry struct {
		ID           string
		Date         Date
		Category     string
		Subcategory  string
		Amount       Money
		Payment      string
		Payer        string
		Note         string
		Origin       Origin
		RecurringRef string // bill template ID or installment group ID
	}

	// BillTemplate is a recurring monthly expense not yet materialized
	// into a concrete ledger entry.
	BillTemplate struct {
		ID          string
		Description string
		Category    string
		Amount      Money
		DueDay      int // 1-31, clamped to the target month at generation time
		Payment     string
		Payer       string
		Active      bool
		Note        string
	}

	// BudgetGoal maps a category to its monthly target. The category is the
	// key; there is no separate identifier.
	BudgetGoal struct {
		Category string
		Target   Money
	}

	// Reserve is a named savings goal tracked apart from the monthly ledger.
	Reserve struct {
		ID     string
		Name   string
		Target Money
		Active bool
		Note   string
	}

	// ReserveMovement is a deposit into or withdrawal from a reserve.
	// Balances are always derived from movements, never stored.
	ReserveMovement struct {
		ID         string
		Date       Date
		ReserveRef string
		Type       MovementType
		Amount     Money
		Payer      string
		Note       string
	}

	// Dataset holds every table of the document. The durable store owns it
	// collectively; cross-table references are by ID only.
	Dataset struct {
		Ledger    []LedgerEntry
		Bills     []BillTemplate
		Budgets   []BudgetGoal
		Reserves  []Reserve
		Movements []ReserveMovement
	}
)

// IsFixed reports whether the entry was materialized from a bill template.
func (e LedgerEntry) IsFixed() bool {
	return e.Origin == OriginFixed
}

func (b BillTemplate) Validate() error {
	if strings.TrimSpace(b.Description) == "" {
		return ErrEmptyDescription
	}
	if b.DueDay < 1 || b.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if b.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// DefaultDataset is the document written on first run: an empty ledger plus
// the seed budget categories and the reserved whole-month row.
func DefaultDataset() *Dataset {
	d := &Dataset{}
	for _, c := range DefaultCategories {
		d.Budgets = append(d.Budgets, BudgetGoal{Category: c})
	}
	d.Budgets = append(d.Budgets, BudgetGoal{Category: GeneralCategory})
	return d
}

// TransactionCategories returns the budget categories available on the entry
// form, excluding the reserved whole-month row.
func (d *Dataset) TransactionCategories() []string {
	var out []string
	for _, g := range d.Budgets {
		name := strings.TrimSpace(g.Category)
		if name == "" || strings.EqualFold(name, GeneralCategory) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// Clone returns a deep copy. The store hands out clones so cached snapshots
// cannot be mutated behind its back.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	return &Dataset{
		Ledger:    append([]LedgerEntry(nil), d.Ledger...),
		Bills:     append([]BillTemplate(nil), d.Bills...),
		Budgets:   append([]BudgetGoal(nil), d.Budgets...),
		Reserves:  append([]Reserve(nil), d.Reserves...),
		Movements: append([]ReserveMovement(nil), d.Movements...),
	}
}
