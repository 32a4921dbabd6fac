package service

import (
	"bytes"
	"fmt"

	"transio/internal/model"

	"github.com/phpdave11/gofpdf"
)

// RenderInvoicePDF renders a printable A4 invoice. The company block is
// optional; an unset firma profile just leaves the header sparse.
func RenderInvoicePDF(invoice *model.Invoice, company *model.Company) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Factura %s", invoice.Numar), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FACTURA")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Numar: %s", invoice.Numar))
	pdf.Ln(12)

	if company != nil && company.NumeFirma != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Furnizor")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, line := range []string{
			company.NumeFirma,
			fmt.Sprintf("CUI: %s  Reg. Com.: %s", company.CUI, company.RegCom),
			company.Adresa,
			fmt.Sprintf("Cont: %s (%s)", company.ContBancar, company.Banca),
		} {
			if line != "" {
				pdf.Cell(0, 6, line)
				pdf.Ln(6)
			}
		}
		pdf.Ln(6)
	}

	if invoice.Trip != nil && invoice.Trip.Partner != nil {
		p := invoice.Trip.Partner
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Client")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, p.NumeFirma)
		pdf.Ln(6)
		if p.CUI != "" {
			pdf.Cell(0, 6, fmt.Sprintf("CUI: %s", p.CUI))
			pdf.Ln(6)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Data emitere  : %s", invoice.DataEmitere.Format("2006-01-02")),
		fmt.Sprintf("Data scadenta : %s", invoice.DataScadenta.Format("2006-01-02")),
		fmt.Sprintf("Status        : %s", invoice.Status),
	}
	if invoice.Trip != nil {
		lines = append(lines, fmt.Sprintf("Cursa         : %s", invoice.TripID))
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 9, fmt.Sprintf("Total: %s %s", invoice.Suma.StringFixed(2), invoice.Moneda))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}
