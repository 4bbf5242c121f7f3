package invoice

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/voguesoftware/projectdash/internal/models"
)

func TestReferenceScenario(t *testing.T) {
	// [{100 x 2}, {50 x 1}], tax 15%, discount 10
	d := NewDraft("org1", "proj1", time.Now())
	if err := d.SetLineDescription(0, "Development"); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if err := d.SetLineUnitPrice(0, 100); err != nil {
		t.Fatalf("price: %v", err)
	}
	if err := d.SetLineQty(0, 2); err != nil {
		t.Fatalf("qty: %v", err)
	}
	d.AddLine()
	if err := d.SetLineDescription(1, "Support"); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if err := d.SetLineUnitPrice(1, 50); err != nil {
		t.Fatalf("price: %v", err)
	}
	d.SetDiscount(10)

	inv := d.Invoice()
	if inv.SubTotal != 250.00 {
		t.Errorf("subTotal = %v, want 250.00", inv.SubTotal)
	}
	if inv.TaxAmount != 37.50 {
		t.Errorf("taxAmount = %v, want 37.50", inv.TaxAmount)
	}
	if inv.Total != 277.50 {
		t.Errorf("total = %v, want 277.50", inv.Total)
	}
}

func TestEditedRowOnlyRecomputed(t *testing.T) {
	d := NewDraft("o", "p", time.Now())
	_ = d.SetLineUnitPrice(0, 10)
	_ = d.SetLineQty(0, 3)
	d.AddLine()
	_ = d.SetLineUnitPrice(1, 5)

	before := d.Invoice().LineItems[0].LineTotal
	if before != 30 {
		t.Fatalf("row 0 lineTotal = %v, want 30", before)
	}
	// Mutating row 1 must not disturb row 0.
	_ = d.SetLineQty(1, 4)
	inv := d.Invoice()
	if inv.LineItems[0].LineTotal != 30 {
		t.Errorf("row 0 lineTotal changed to %v", inv.LineItems[0].LineTotal)
	}
	if inv.LineItems[1].LineTotal != 20 {
		t.Errorf("row 1 lineTotal = %v, want 20", inv.LineItems[1].LineTotal)
	}
	if inv.SubTotal != 50 {
		t.Errorf("subTotal = %v, want 50", inv.SubTotal)
	}
}

func TestPerStepRounding(t *testing.T) {
	// 3 x 0.335 rounds to 1.01 at the line step; a single final rounding
	// over raw products would give 1.00 for the 15% tax on some inputs.
	d := NewDraft("o", "p", time.Now())
	_ = d.SetLineUnitPrice(0, 0.335)
	_ = d.SetLineQty(0, 3)
	inv := d.Invoice()
	if inv.LineItems[0].LineTotal != 1.01 {
		t.Fatalf("lineTotal = %v, want 1.01", inv.LineItems[0].LineTotal)
	}
	if inv.SubTotal != 1.01 {
		t.Fatalf("subTotal = %v, want 1.01", inv.SubTotal)
	}
	if inv.TaxAmount != 0.15 {
		t.Fatalf("taxAmount = %v, want 0.15", inv.TaxAmount)
	}
	if inv.Total != 1.16 {
		t.Fatalf("total = %v, want 1.16", inv.Total)
	}
}

func TestTotalIdentityAtBounds(t *testing.T) {
	for _, tc := range []struct {
		name     string
		taxRate  float64
		discount float64
	}{
		{"zero tax zero discount", 0, 0},
		{"full tax", 100, 0},
		{"discount only", 0, 25},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDraft("o", "p", time.Now())
			_ = d.SetLineUnitPrice(0, 40)
			_ = d.SetLineQty(0, 2)
			d.SetTaxRate(tc.taxRate)
			d.SetDiscount(tc.discount)
			inv := d.Invoice()
			want := inv.SubTotal + inv.TaxAmount - inv.Discount
			if inv.Total != want {
				t.Errorf("total = %v, want subTotal+tax-discount = %v", inv.Total, want)
			}
		})
	}
}

func TestRemoveLastLineRefused(t *testing.T) {
	d := NewDraft("o", "p", time.Now())
	if err := d.RemoveLine(0); !errors.Is(err, ErrLastLine) {
		t.Fatalf("RemoveLine on single row = %v, want ErrLastLine", err)
	}
	// Any add/remove sequence keeps at least one row.
	d.AddLine()
	d.AddLine()
	if err := d.RemoveLine(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := d.RemoveLine(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := d.RemoveLine(0); !errors.Is(err, ErrLastLine) {
		t.Fatalf("final remove = %v, want ErrLastLine", err)
	}
	if n := len(d.Invoice().LineItems); n != 1 {
		t.Fatalf("line count = %d, want 1", n)
	}
}

func TestValidateAggregatesFailures(t *testing.T) {
	d := NewDraft("o", "p", time.Now())
	// invoiceNo empty, line 0 has no description and zero price
	err := d.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Validate = %v, want ErrInvalid", err)
	}
	msg := err.Error()
	for _, frag := range []string{"invoiceNo", "lineItems[0].description", "lineItems[0].unitPrice"} {
		if !strings.Contains(msg, frag) {
			t.Errorf("aggregate error %q missing %q", msg, frag)
		}
	}

	d.SetInvoiceNo("INV-001")
	_ = d.SetLineDescription(0, "Work")
	_ = d.SetLineUnitPrice(0, 10)
	if err := d.Validate(); err != nil {
		t.Fatalf("valid draft rejected: %v", err)
	}
}

func TestRecalculateNormalizesPayload(t *testing.T) {
	inv := models.Invoice{
		InvoiceNo: "INV-9",
		TaxRate:   15,
		Discount:  10,
		LineItems: []models.LineItem{
			{Description: "a", UnitPrice: 100, Qty: 2, LineTotal: 999}, // stale lineTotal
			{Description: "b", UnitPrice: 50, Qty: 1},
		},
	}
	out := Recalculate(inv)
	if out.LineItems[0].LineTotal != 200 {
		t.Errorf("lineTotal = %v, want 200", out.LineItems[0].LineTotal)
	}
	if out.SubTotal != 250 || out.TaxAmount != 37.5 || out.Total != 277.5 {
		t.Errorf("totals = %v/%v/%v, want 250/37.5/277.5", out.SubTotal, out.TaxAmount, out.Total)
	}
}

func TestDraftDefaults(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	d := NewDraft("org", "proj", now)
	inv := d.Invoice()
	if inv.Status != models.InvoiceDraft {
		t.Errorf("status = %s, want Draft", inv.Status)
	}
	if inv.TaxRate != 15 || inv.Currency != "LKR" {
		t.Errorf("defaults = %v %s, want 15 LKR", inv.TaxRate, inv.Currency)
	}
	if !inv.DueDate.Equal(now.AddDate(0, 0, 30)) {
		t.Errorf("dueDate = %v, want %v", inv.DueDate, now.AddDate(0, 0, 30))
	}
	if len(inv.LineItems) != 1 {
		t.Errorf("line count = %d, want 1", len(inv.LineItems))
	}
}
