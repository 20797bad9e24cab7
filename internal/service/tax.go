package service

import "github.com/fabzclean/backend/internal/models"

// CalculateTaxBreakdown derives tax components for tax-flagged orders from
// their inclusive totals. The collected tax splits evenly into the two
// domestic components; the cross-jurisdiction component stays 0 under the
// single-jurisdiction assumption. Orders without the flag contribute
// nothing.
func CalculateTaxBreakdown(orders []models.OrderRecord) models.TaxBreakdown {
	var breakdown models.TaxBreakdown
	for _, o := range orders {
		if !o.TaxEnabled {
			continue
		}
		taxable := o.TotalAmount / (1 + o.TaxRate/100)
		tax := o.TotalAmount - taxable
		breakdown.TotalTaxCollected += tax
		breakdown.CGST += tax / 2
		breakdown.SGST += tax / 2
		breakdown.TaxableAmount += taxable
	}
	return breakdown
}
