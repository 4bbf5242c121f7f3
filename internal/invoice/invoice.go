// Package invoice holds the financial calculation engine: line totals,
// subtotal, tax and grand total, recomputed on every relevant mutation.
// Rounding happens at each derived step, not once at the end; collapsing
// it into a single final rounding produces off-by-cent totals.
package invoice

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/voguesoftware/projectdash/internal/models"
	"github.com/voguesoftware/projectdash/validation"
)

// ErrLastLine is returned when removing the only remaining line item; an
// invoice always keeps at least one.
var ErrLastLine = errors.New("an invoice must have at least one line item")

// ErrInvalid wraps the aggregate validation failure raised before
// submission.
var ErrInvalid = errors.New("invoice validation failed")

const defaultTerms = "1. Payment is due within 30 days from the invoice date.\n" +
	"2. All bank or transfer fees are the responsibility of the client."

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Draft is a mutable invoice under construction. All mutators keep the
// derived fields consistent.
type Draft struct {
	inv models.Invoice
}

// NewDraft seeds a draft with the standard defaults: one zero-valued
// line, 15% tax, LKR, a 30-day due date and the standard payment terms.
func NewDraft(orgID, projectID string, now time.Time) *Draft {
	d := &Draft{inv: models.Invoice{
		OrganizationID: orgID,
		ProjectID:      projectID,
		InvoiceDate:    now,
		DueDate:        now.AddDate(0, 0, 30),
		Status:         models.InvoiceDraft,
		LineItems:      []models.LineItem{{Qty: 1}},
		Currency:       "LKR",
		TaxRate:        15,
		Terms:          defaultTerms,
	}}
	d.recalcTotals()
	return d
}

// FromInvoice wraps an existing invoice for editing. Every line total is
// recomputed from unitPrice and qty, as the edit screen does on load.
func FromInvoice(inv models.Invoice) *Draft {
	d := &Draft{inv: inv}
	for i := range d.inv.LineItems {
		d.recalcRow(i)
	}
	d.recalcTotals()
	return d
}

// Invoice returns a copy of the current state, derived fields included.
func (d *Draft) Invoice() models.Invoice {
	out := d.inv
	out.LineItems = append([]models.LineItem(nil), d.inv.LineItems...)
	return out
}

func (d *Draft) SetInvoiceNo(no string) { d.inv.InvoiceNo = no }
func (d *Draft) SetPONo(no string)      { d.inv.PONo = no }
func (d *Draft) SetNotes(s string)      { d.inv.Notes = s }
func (d *Draft) SetTerms(s string)      { d.inv.Terms = s }
func (d *Draft) SetCurrency(c string)   { d.inv.Currency = c }

func (d *Draft) SetStatus(s models.InvoiceStatus) { d.inv.Status = s }

func (d *Draft) SetDates(invoiceDate, dueDate time.Time) {
	d.inv.InvoiceDate = invoiceDate
	d.inv.DueDate = dueDate
}

// AddLine appends a zero-valued row.
func (d *Draft) AddLine() {
	d.inv.LineItems = append(d.inv.LineItems, models.LineItem{Qty: 1})
	d.recalcTotals()
}

// RemoveLine deletes row i, refusing to empty the invoice.
func (d *Draft) RemoveLine(i int) error {
	if len(d.inv.LineItems) == 1 {
		return ErrLastLine
	}
	if i < 0 || i >= len(d.inv.LineItems) {
		return fmt.Errorf("line %d out of range", i)
	}
	d.inv.LineItems = append(d.inv.LineItems[:i], d.inv.LineItems[i+1:]...)
	d.recalcTotals()
	return nil
}

func (d *Draft) SetLineDescription(i int, desc string) error {
	if i < 0 || i >= len(d.inv.LineItems) {
		return fmt.Errorf("line %d out of range", i)
	}
	d.inv.LineItems[i].Description = desc
	return nil
}

// SetLineUnitPrice recomputes the touched row only, then the aggregates.
func (d *Draft) SetLineUnitPrice(i int, price float64) error {
	if i < 0 || i >= len(d.inv.LineItems) {
		return fmt.Errorf("line %d out of range", i)
	}
	d.inv.LineItems[i].UnitPrice = price
	d.recalcRow(i)
	d.recalcTotals()
	return nil
}

func (d *Draft) SetLineQty(i int, qty float64) error {
	if i < 0 || i >= len(d.inv.LineItems) {
		return fmt.Errorf("line %d out of range", i)
	}
	d.inv.LineItems[i].Qty = qty
	d.recalcRow(i)
	d.recalcTotals()
	return nil
}

func (d *Draft) SetTaxRate(rate float64) {
	d.inv.TaxRate = rate
	d.recalcTotals()
}

func (d *Draft) SetDiscount(discount float64) {
	d.inv.Discount = discount
	d.recalcTotals()
}

func (d *Draft) recalcRow(i int) {
	li := &d.inv.LineItems[i]
	li.LineTotal = round2(li.UnitPrice * li.Qty)
}

func (d *Draft) recalcTotals() {
	var sub float64
	for _, li := range d.inv.LineItems {
		sub += li.LineTotal
	}
	d.inv.SubTotal = round2(sub)
	d.inv.TaxAmount = round2(d.inv.SubTotal * d.inv.TaxRate / 100)
	d.inv.Total = round2(d.inv.SubTotal + d.inv.TaxAmount - d.inv.Discount)
}

// Validate runs the pre-submission checks and reports all failures as one
// aggregate error. Nothing is sent to the backend when it fails.
func (d *Draft) Validate() error {
	v := validation.Violations{}
	validation.Required("invoiceNo", d.inv.InvoiceNo, v)
	validation.RangeFloat("taxRate", d.inv.TaxRate, 0, 100, v)
	validation.NonNegativeFloat("discount", d.inv.Discount, v)
	if len(d.inv.LineItems) == 0 {
		v["lineItems"] = "required"
	}
	for i, li := range d.inv.LineItems {
		validation.RequiredAt("lineItems", i, "description", li.Description, v)
		if li.UnitPrice <= 0 {
			v[fmt.Sprintf("lineItems[%d].unitPrice", i)] = "must_be_positive"
		}
		if li.Qty <= 0 {
			v[fmt.Sprintf("lineItems[%d].qty", i)] = "must_be_positive"
		}
	}
	if !v.Empty() {
		return fmt.Errorf("%w: %s", ErrInvalid, v.Summary())
	}
	return nil
}

// Recalculate normalizes an inbound invoice payload: every line total is
// recomputed from its inputs, then the aggregates, with per-step
// rounding. The returned invoice carries the derived values that get
// persisted.
func Recalculate(inv models.Invoice) models.Invoice {
	return FromInvoice(inv).Invoice()
}
