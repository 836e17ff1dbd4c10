// Package debt classifies bank-detected recurring payments and derives
// the two coverage ratios underwriting hinges on: DSCR and DTI.
package debt

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fin-tools/credit-atlas/pkg/models/domain"
	"github.com/fin-tools/credit-atlas/pkg/services/docvalue"
)

var housingKeywords = []string{"mortgage", "rent", "hoa", "escrow"}

// Housing keywords classify as debt too; a mortgage is both.
var debtKeywords = []string{
	"mortgage", "rent", "hoa", "escrow",
	"loan", "credit card", "card payment", "auto", "car payment",
	"student", "lease", "financing", "installment",
}

// MergePayments collects recurring payments across all bank statements
// into a single view, deduplicating by description plus rounded amount
// so the same obligation seen on several statements counts once.
func MergePayments(statements []domain.ExtractionRecord) []domain.RecurringPayment {
	seen := make(map[string]bool)
	var payments []domain.RecurringPayment

	for _, stmt := range statements {
		for _, raw := range docvalue.MapsOf(stmt.Data, "recurringPayments") {
			p := buildPayment(raw)
			if p.Amount == 0 {
				continue
			}
			key := fmt.Sprintf("%s::%d", strings.ToLower(p.Description), int(math.Round(p.Amount)))
			if seen[key] {
				continue
			}
			seen[key] = true
			payments = append(payments, p)
		}
	}

	sort.Slice(payments, func(i, j int) bool { return payments[i].Description < payments[j].Description })
	return payments
}

func buildPayment(raw map[string]any) domain.RecurringPayment {
	p := domain.RecurringPayment{
		Description: docvalue.StrOf(raw, "description", "payee", "name"),
		Category:    strings.ToLower(docvalue.StrOf(raw, "category")),
		Amount:      math.Abs(docvalue.AmountOf(raw, "amount", "payment")),
		Frequency:   parseFrequency(docvalue.StrOf(raw, "frequency")),
	}
	p.Monthly = MonthlyAmount(p.Amount, p.Frequency)
	p.Housing = matches(p.Description, p.Category, housingKeywords) || p.Category == "housing"
	p.Debt = p.Housing || matches(p.Description, p.Category, debtKeywords) || p.Category == "debt"
	return p
}

func matches(description, category string, keywords []string) bool {
	d := strings.ToLower(description)
	for _, kw := range keywords {
		if strings.Contains(d, kw) || strings.Contains(category, strings.ReplaceAll(kw, " ", "")) || category == kw {
			return true
		}
	}
	return false
}

func parseFrequency(raw string) domain.PaymentFrequency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "weekly":
		return domain.FrequencyWeekly
	case "biweekly", "bi-weekly", "fortnightly":
		return domain.FrequencyBiweekly
	case "semimonthly", "semi-monthly", "twicemonthly":
		return domain.FrequencySemimonth
	case "quarterly":
		return domain.FrequencyQuarterly
	case "semiannual", "semi-annual", "semiannually":
		return domain.FrequencySemiannual
	case "annual", "annually", "yearly":
		return domain.FrequencyAnnual
	default:
		return domain.FrequencyMonthly
	}
}

// MonthlyAmount normalizes a reported payment to a monthly cash
// amount from whatever frequency the statement reports.
func MonthlyAmount(amount float64, freq domain.PaymentFrequency) float64 {
	var monthly float64
	switch freq {
	case domain.FrequencyWeekly:
		monthly = amount * 52 / 12
	case domain.FrequencyBiweekly:
		monthly = amount * 26 / 12
	case domain.FrequencySemimonth:
		monthly = amount * 2
	case domain.FrequencyQuarterly:
		monthly = amount / 3
	case domain.FrequencySemiannual:
		monthly = amount / 6
	case domain.FrequencyAnnual:
		monthly = amount / 12
	default:
		monthly = amount
	}
	return docvalue.RoundCurrency(monthly)
}

// MonthlyPayment derives the proposed loan payment via the standard
// amortization formula M = P*r(1+r)^n / ((1+r)^n - 1). A zero rate
// degrades to straight principal over term.
func MonthlyPayment(loan domain.LoanTerms) float64 {
	if loan.MonthlyPayment > 0 {
		return loan.MonthlyPayment
	}
	if loan.Amount <= 0 || loan.TermMonths <= 0 {
		return 0
	}
	if loan.Rate == 0 {
		return docvalue.RoundCurrency(loan.Amount / float64(loan.TermMonths))
	}
	r := loan.Rate / 100 / 12
	n := float64(loan.TermMonths)
	factor := math.Pow(1+r, n)
	return docvalue.RoundCurrency(loan.Amount * r * factor / (factor - 1))
}
