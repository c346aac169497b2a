package schema

import (
	"strconv"
	"strings"
	"time"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

// truthy holds the textual representations accepted as true, besides the
// canonical "true". Legacy sheets carry a mix of Portuguese and English.
var truthy = map[string]bool{
	"1": true, "sim": true, "yes": true, "y": true,
}

// coerceBool converts heterogeneous flag text to a boolean. Anything not
// recognized is false. changed reports a non-canonical representation.
func coerceBool(s string) (value, changed bool) {
	switch v := strings.ToLower(strings.TrimSpace(s)); {
	case v == "true":
		return true, false
	case v == "false":
		return false, false
	case truthy[v]:
		return true, true
	default:
		return false, true
	}
}

// coerceAmount converts amount-like text to Money. Unparseable values
// (including negatives) become zero and are flagged as changed.
func coerceAmount(s string) (core.Money, bool) {
	if strings.TrimSpace(s) == "" {
		return core.Money{}, true
	}
	m, err := core.ParseMoney(s)
	if err != nil {
		return core.Money{}, true
	}
	return m, false
}

// dateLayouts are the textual renderings found in legacy sheets, tried in
// order after the canonical layout.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2/1/2006",
	"01-02-06",
}

// excelEpoch is day zero of the spreadsheet serial date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// coerceDate converts date-like text to a calendar date. Empty input is a
// valid absent date; unparseable input becomes absent and is flagged.
func coerceDate(s string) (core.Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, false
	}
	if t, err := time.Parse(core.DateLayout, s); err == nil {
		return core.Date{Time: t}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), true
		}
	}
	// Serial number produced by spreadsheet tools.
	if days, err := strconv.ParseFloat(s, 64); err == nil && days > 0 {
		t := excelEpoch.AddDate(0, 0, int(days))
		return core.NewDate(t.Year(), int(t.Month()), t.Day()), true
	}
	return core.Date{}, true
}

// coerceDueDay converts the due-day column to an int clamped into [1, 31].
// The clamp against the actual month length happens at generation time.
func coerceDueDay(s string) (int, bool) {
	s = strings.TrimSpace(s)
	day, err := strconv.Atoi(s)
	if err != nil {
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil {
			day = int(f)
		} else {
			return 1, true
		}
	}
	switch {
	case day < 1:
		return 1, true
	case day > 31:
		return 31, true
	default:
		return day, s != strconv.Itoa(day)
	}
}

// coerceOrigin keeps recognized origin tags and clears anything else.
func coerceOrigin(s string) (core.Origin, bool) {
	switch o := core.Origin(strings.TrimSpace(s)); o {
	case core.OriginManual, core.OriginFixed, core.OriginInstallment, core.OriginInvoice, core.OriginNone:
		return o, false
	default:
		return core.OriginNone, true
	}
}

// movementAliases maps legacy movement-type spellings to canonical values.
var movementAliases = map[string]core.MovementType{
	"deposito": core.Deposit, "depósito": core.Deposit, "entrada": core.Deposit,
	"saque": core.Withdrawal, "retirada": core.Withdrawal, "withdraw": core.Withdrawal,
}

// coerceMovementType converts movement-type text to its canonical value.
// Unrecognized text falls back to deposit and is flagged as changed.
func coerceMovementType(s string) (core.MovementType, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch core.MovementType(v) {
	case core.Deposit:
		return core.Deposit, false
	case core.Withdrawal:
		return core.Withdrawal, false
	}
	if t, ok := movementAliases[v]; ok {
		return t, true
	}
	return core.Deposit, true
}
