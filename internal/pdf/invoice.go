// Package pdf renders a resolved invoice to a paginated A4 document.
// The financial summary re-displays the stored derived values; it never
// recomputes them.
package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	mcfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/voguesoftware/projectdash/internal/config"
	"github.com/voguesoftware/projectdash/internal/models"
)

// Document is a fully-resolved invoice: organization and project names
// are looked up by the caller, ids alone are not enough to render.
type Document struct {
	Invoice             models.Invoice
	OrganizationName    string
	OrganizationAddress string
	ContactName         string
	ContactRole         string
	ProjectName         string
	Company             config.CompanyDetails
	Bank                config.BankDetails
}

// Filename names the download after the invoice number.
func (d Document) Filename() string {
	return "invoice-" + d.Invoice.InvoiceNo + ".pdf"
}

// Render produces the PDF bytes. Content taller than one page flows onto
// additional pages of the same fixed width; errors (including panics out
// of the document engine) are returned, never propagated.
func Render(doc Document) (out []byte, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render invoice %s: %v", doc.Invoice.InvoiceNo, rec)
		}
	}()

	cfg := mcfg.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithRightMargin(15).
		WithTopMargin(15).
		Build()
	m := maroto.New(cfg)

	addHeader(m, doc)
	addParties(m, doc)
	addLineItems(m, doc.Invoice)
	addSummaryAndBank(m, doc)
	if doc.Invoice.Terms != "" {
		addBlock(m, "Terms and Conditions", doc.Invoice.Terms)
	}
	addSignatures(m)

	rendered, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", doc.Invoice.InvoiceNo, err)
	}
	return rendered.GetBytes(), nil
}

func addHeader(m core.Maroto, doc Document) {
	m.AddRow(12,
		text.NewCol(7, doc.Company.Name, props.Text{Size: 14, Style: fontstyle.Bold}),
		text.NewCol(5, "INVOICE", props.Text{Size: 14, Style: fontstyle.Bold, Align: align.Right}),
	)
	m.AddRow(5, text.NewCol(12, "Invoice No: "+doc.Invoice.InvoiceNo, props.Text{Size: 9, Align: align.Right}))
	po := doc.Invoice.PONo
	if po == "" {
		po = "N/A"
	}
	m.AddRow(5, text.NewCol(12, "PO No: "+po, props.Text{Size: 9, Align: align.Right}))
	m.AddRow(5, text.NewCol(12, "Date: "+doc.Invoice.InvoiceDate.Format("Jan 2, 2006"), props.Text{Size: 9, Align: align.Right}))
	m.AddRow(6, line.NewCol(12, props.Line{SizePercent: 100}))
}

func addParties(m core.Maroto, doc Document) {
	m.AddRow(7,
		text.NewCol(6, "Bill From:", props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(6, "Bill To:", props.Text{Size: 11, Style: fontstyle.Bold}),
	)
	from := []string{
		doc.Company.Name,
		doc.Company.Address,
		"Phone: " + doc.Company.Phone,
		"Email: " + doc.Company.Email,
		"Web: " + doc.Company.Web,
	}
	to := []string{
		doc.OrganizationName,
		doc.OrganizationAddress,
		fmt.Sprintf("Contact: %s (%s)", doc.ContactName, doc.ContactRole),
		"Project: " + doc.ProjectName,
		"",
	}
	for i := range from {
		m.AddRow(4.5,
			text.NewCol(6, from[i], props.Text{Size: 9}),
			text.NewCol(6, to[i], props.Text{Size: 9}),
		)
	}
	m.AddRow(6, line.NewCol(12, props.Line{SizePercent: 100}))
}

func addLineItems(m core.Maroto, inv models.Invoice) {
	bold := props.Text{Size: 9, Style: fontstyle.Bold}
	m.AddRow(8,
		text.NewCol(6, "Description", bold),
		text.NewCol(2, fmt.Sprintf("Unit Price (%s)", inv.Currency), propsRight(bold)),
		text.NewCol(1, "Qty", propsCenter(bold)),
		text.NewCol(3, fmt.Sprintf("Line Total (%s)", inv.Currency), propsRight(bold)),
	)
	rows := make([]core.Row, 0, len(inv.LineItems))
	for _, li := range inv.LineItems {
		rows = append(rows, row.New(6).Add(
			text.NewCol(6, li.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%.2f", li.UnitPrice), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(1, fmt.Sprintf("%g", li.Qty), props.Text{Size: 9, Align: align.Center}),
			text.NewCol(3, fmt.Sprintf("%.2f", li.LineTotal), props.Text{Size: 9, Align: align.Right}),
		))
	}
	m.AddRows(rows...)
	m.AddRow(6, line.NewCol(12, props.Line{SizePercent: 100}))
}

func addSummaryAndBank(m core.Maroto, doc Document) {
	inv := doc.Invoice
	m.AddRow(7,
		text.NewCol(7, "Bank Details", props.Text{Size: 11, Style: fontstyle.Bold}),
		text.NewCol(3, fmt.Sprintf("Subtotal (%s):", inv.Currency), props.Text{Size: 9}),
		text.NewCol(2, fmt.Sprintf("%.2f", inv.SubTotal), props.Text{Size: 9, Align: align.Right}),
	)
	bank := []string{
		"Bank Name: " + doc.Bank.Name,
		"Account Name: " + doc.Bank.AccountName,
		"Account Number: " + doc.Bank.AccountNumber,
		"Swift Code: " + doc.Bank.SwiftCode,
		"Branch: " + doc.Bank.Branch,
	}
	summary := [][2]string{
		{fmt.Sprintf("Discount (%s):", inv.Currency), fmt.Sprintf("- %.2f", inv.Discount)},
		{fmt.Sprintf("Tax (%g%%):", inv.TaxRate), fmt.Sprintf("+ %.2f", inv.TaxAmount)},
		{fmt.Sprintf("TOTAL (%s):", inv.Currency), fmt.Sprintf("%.2f", inv.Total)},
		{"Status:", string(inv.Status)},
		{"", ""},
	}
	for i := range bank {
		valueStyle := props.Text{Size: 9, Align: align.Right}
		if summary[i][0] == fmt.Sprintf("TOTAL (%s):", inv.Currency) {
			valueStyle.Style = fontstyle.Bold
		}
		m.AddRow(4.5,
			text.NewCol(7, bank[i], props.Text{Size: 9}),
			text.NewCol(3, summary[i][0], props.Text{Size: 9}),
			text.NewCol(2, summary[i][1], valueStyle),
		)
	}
	if inv.Notes != "" {
		addBlock(m, "Notes", inv.Notes)
	}
}

func addBlock(m core.Maroto, title, body string) {
	m.AddRow(7, text.NewCol(12, title, props.Text{Size: 10, Style: fontstyle.Bold, Top: 2}))
	m.AddRow(10, text.NewCol(12, body, props.Text{Size: 8}))
}

func addSignatures(m core.Maroto) {
	m.AddRow(14,
		line.NewCol(4, props.Line{SizePercent: 90, OffsetPercent: 100}),
		col.New(4),
		line.NewCol(4, props.Line{SizePercent: 90, OffsetPercent: 100}),
	)
	m.AddRow(5,
		text.NewCol(4, "Customer Signature", props.Text{Size: 8, Align: align.Center}),
		col.New(4),
		text.NewCol(4, "Authorized Signature", props.Text{Size: 8, Align: align.Center}),
	)
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func propsCenter(p props.Text) props.Text {
	p.Align = align.Center
	return p
}
