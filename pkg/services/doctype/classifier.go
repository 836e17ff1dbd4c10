package doctype

import "github.com/fin-tools/credit-atlas/pkg/models/domain"

// Classify partitions records into routing buckets. Profit-and-loss
// documents land in both the P&L and tax-form buckets because a P&L
// substitutes for a tax return in income analysis. Unmatched records
// go to Other and are still fed into income analysis downstream, so
// nothing is silently dropped.
func Classify(records []domain.ExtractionRecord) domain.DocumentSet {
	var set domain.DocumentSet
	for _, rec := range records {
		switch Resolve(rec.DocType) {
		case KindTaxForm:
			set.TaxForms = append(set.TaxForms, rec)
		case KindBankStatement:
			set.BankStatements = append(set.BankStatements, rec)
		case KindProfitLoss:
			set.ProfitLoss = append(set.ProfitLoss, rec)
			set.TaxForms = append(set.TaxForms, rec)
		case KindBalanceSheet:
			set.BalanceSheets = append(set.BalanceSheets, rec)
		case KindRentRoll:
			set.RentRolls = append(set.RentRolls, rec)
		default:
			set.Other = append(set.Other, rec)
		}
	}
	return set
}
