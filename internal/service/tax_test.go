package service

import (
	"math"
	"testing"

	"github.com/fabzclean/backend/internal/models"
)

func TestCalculateTaxBreakdown(t *testing.T) {
	orders := []models.OrderRecord{
		{TotalAmount: 118, TaxEnabled: true, TaxRate: 18},
		{TotalAmount: 500, TaxEnabled: false, TaxRate: 18},
	}
	breakdown := CalculateTaxBreakdown(orders)

	if math.Abs(breakdown.TaxableAmount-100) > 1e-9 {
		t.Fatalf("expected taxable 100, got %v", breakdown.TaxableAmount)
	}
	if math.Abs(breakdown.TotalTaxCollected-18) > 1e-9 {
		t.Fatalf("expected tax 18, got %v", breakdown.TotalTaxCollected)
	}
	if math.Abs(breakdown.CGST-9) > 1e-9 || math.Abs(breakdown.SGST-9) > 1e-9 {
		t.Fatalf("expected even domestic split 9/9, got %v/%v", breakdown.CGST, breakdown.SGST)
	}
	if breakdown.IGST != 0 {
		t.Fatalf("expected cross-jurisdiction component 0, got %v", breakdown.IGST)
	}
}

func TestCalculateTaxBreakdownNoFlaggedOrders(t *testing.T) {
	breakdown := CalculateTaxBreakdown([]models.OrderRecord{{TotalAmount: 250}})
	if breakdown != (models.TaxBreakdown{}) {
		t.Fatalf("expected empty breakdown, got %+v", breakdown)
	}
}

func TestCalculateTaxBreakdownZeroRate(t *testing.T) {
	breakdown := CalculateTaxBreakdown([]models.OrderRecord{{TotalAmount: 80, TaxEnabled: true}})
	if breakdown.TotalTaxCollected != 0 || breakdown.TaxableAmount != 80 {
		t.Fatalf("expected zero tax at zero rate, got %+v", breakdown)
	}
}
