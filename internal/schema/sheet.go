// Package schema normalizes raw workbook sheets into the strict internal
// tables and renders them back into their canonical serialized form.
//
// On-disk cells are never trusted: every value goes through an explicit
// coercion pass. Normalization is idempotent, so the store can re-normalize
// on every load and only re-persist when something actually changed.
package schema

import "strings"

// Sheet names inside the workbook document. These are stable: renaming any
// of them breaks round-trip compatibility with existing files.
const (
	SheetLedger    = "gastos"
	SheetBills     = "fixos"
	SheetBudgets   = "metas"
	SheetReserves  = "reservas"
	SheetMovements = "movimentos_reserva"
)

// SheetNames lists every section of the document in workbook order.
var SheetNames = []string{SheetLedger, SheetBills, SheetBudgets, SheetReserves, SheetMovements}

// Column headers per sheet, in canonical order.
var (
	LedgerHeader    = []string{"ID", "Data", "Categoria", "Subcategoria", "Valor", "Pagamento", "Quem", "Obs", "Origem", "RefRecorrente"}
	BillsHeader     = []string{"ID", "Descricao", "Categoria", "Valor", "DiaVencimento", "Pagamento", "Quem", "Ativo", "Obs"}
	BudgetsHeader   = []string{"Categoria", "Meta"}
	ReservesHeader  = []string{"ID", "Nome", "Meta", "Ativo", "Obs"}
	MovementsHeader = []string{"ID", "Data", "Reserva", "Tipo", "Valor", "Quem", "Obs"}
)

// Sheet is the raw, versionless form of one tabular section: a header row
// plus string cells exactly as the workbook reader produced them.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// headerMatches reports whether a raw header row already is the canonical
// column set, in order. Anything else (missing, extra, reordered or
// differently-cased columns) triggers a compacting rewrite.
func headerMatches(raw, want []string) bool {
	if len(raw) != len(want) {
		return false
	}
	for i := range want {
		if strings.TrimSpace(raw[i]) != want[i] {
			return false
		}
	}
	return true
}

// columnIndex maps canonical column names to their position in the raw
// header, matching case-insensitively on trimmed names. Missing columns
// are simply absent from the map.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "" {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// cell returns the trimmed value of the named column in a raw row, or ""
// when the column is missing or the row is short.
func cell(idx map[string]int, row []string, col string) string {
	i, ok := idx[strings.ToLower(col)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// blankRow reports whether every cell of a raw row is empty. Workbook
// readers occasionally hand back phantom trailing rows; they are skipped
// without counting as a correction.
func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
