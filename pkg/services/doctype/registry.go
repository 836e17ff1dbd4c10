// Package doctype is the single canonical document-type registry.
// Both the classifier and the analyzers resolve labels through it, so
// the synonym tables cannot drift apart.
package doctype

import "strings"

// Kind is the coarse routing bucket for a document.
type Kind string

const (
	KindTaxForm       Kind = "tax_form"
	KindBankStatement Kind = "bank_statement"
	KindProfitLoss    Kind = "profit_loss"
	KindBalanceSheet  Kind = "balance_sheet"
	KindRentRoll      Kind = "rent_roll"
	KindUnknown       Kind = "unknown"
)

// Form is the specific tax-form family a record belongs to, used for
// extraction dispatch inside the income and business analyzers.
type Form string

const (
	FormW2         Form = "w2"
	Form1040       Form = "1040"
	FormScheduleC  Form = "schedule_c"
	FormScheduleE  Form = "schedule_e"
	FormK1         Form = "k1"
	Form1065       Form = "1065"
	Form1120       Form = "1120"
	Form1120S      Form = "1120s"
	FormProfitLoss Form = "profit_loss"
	FormOther      Form = "other"
)

var normalizer = strings.NewReplacer(" ", "", "\t", "", "-", "", "_", "", "&", "")

// Normalize canonicalizes a raw document-type label: lower-case with
// whitespace, hyphens, underscores, and ampersands removed. It always
// returns a string, possibly empty.
func Normalize(raw string) string {
	return normalizer.Replace(strings.ToLower(strings.TrimSpace(raw)))
}

var kindSynonyms = map[string]Kind{
	// tax forms
	"1040":          KindTaxForm,
	"form1040":      KindTaxForm,
	"taxreturn":     KindTaxForm,
	"w2":            KindTaxForm,
	"formw2":        KindTaxForm,
	"schedulec":     KindTaxForm,
	"schedc":        KindTaxForm,
	"schedulee":     KindTaxForm,
	"schede":        KindTaxForm,
	"k1":            KindTaxForm,
	"schedulek1":    KindTaxForm,
	"1065":          KindTaxForm,
	"form1065":      KindTaxForm,
	"1120":          KindTaxForm,
	"form1120":      KindTaxForm,
	"1120s":         KindTaxForm,
	"form1120s":     KindTaxForm,
	// bank statements
	"bankstatement":   KindBankStatement,
	"bankstmt":        KindBankStatement,
	"checking":        KindBankStatement,
	"checkingaccount": KindBankStatement,
	"savings":         KindBankStatement,
	"savingsaccount":  KindBankStatement,
	// profit and loss
	"profitandloss":       KindProfitLoss,
	"profitloss":          KindProfitLoss,
	"pandl":               KindProfitLoss,
	"pl":                  KindProfitLoss,
	"pnl":                 KindProfitLoss,
	"incomestatement":     KindProfitLoss,
	"profitlossstatement": KindProfitLoss,
	// balance sheets
	"balancesheet":                 KindBalanceSheet,
	"statementoffinancialposition": KindBalanceSheet,
	// rent rolls
	"rentroll":     KindRentRoll,
	"rentalroll":   KindRentRoll,
	"rentschedule": KindRentRoll,
}

// Resolve maps a raw label to its routing kind.
func Resolve(raw string) Kind {
	if kind, ok := kindSynonyms[Normalize(raw)]; ok {
		return kind
	}
	return KindUnknown
}

var formSynonyms = map[string]Form{
	"w2":         FormW2,
	"formw2":     FormW2,
	"1040":       Form1040,
	"form1040":   Form1040,
	"taxreturn":  Form1040,
	"schedulec":  FormScheduleC,
	"schedc":     FormScheduleC,
	"schedulee":  FormScheduleE,
	"schede":     FormScheduleE,
	"k1":         FormK1,
	"schedulek1": FormK1,
	"1065":       Form1065,
	"form1065":   Form1065,
	"1120":       Form1120,
	"form1120":   Form1120,
	"1120s":      Form1120S,
	"form1120s":  Form1120S,
}

// ResolveForm maps a raw label to a tax-form family. Profit-and-loss
// labels resolve to FormProfitLoss since a P&L substitutes for a
// return in income and business analysis.
func ResolveForm(raw string) Form {
	canonical := Normalize(raw)
	if form, ok := formSynonyms[canonical]; ok {
		return form
	}
	if kindSynonyms[canonical] == KindProfitLoss {
		return FormProfitLoss
	}
	return FormOther
}
