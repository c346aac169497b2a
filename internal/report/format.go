package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fgbm4bdwfd-lang/Controle-financeiro-casal/internal/core"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount the way the dashboard shows it, with
// Brazilian digit grouping: R$ 1.234,56.
func FormatBRL(m core.Money) string {
	return brPrinter.Sprintf("R$ %v", number.Decimal(m.Reais(),
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}
