package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"transio/internal/model"
	"transio/internal/repository"
	"transio/pkg/csvutil"
	"transio/pkg/pagination"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Report identifiers, matching the /rapoarte/{tip} path segment.
const (
	ReportMonthlyRevenue    = "venit-lunar"
	ReportDriverPerformance = "performanta-soferi"
	ReportRepairCosts       = "costuri-reparatii"
	ReportPartnerDebts      = "datorii-parteneri"
)

// --- DTOs ---

type MonthlyRevenueRow struct {
	Luna  int     `json:"luna"`
	Curse int     `json:"curse"`
	Venit string  `json:"venit"`
	Km    float64 `json:"km"`
}

type DriverPerformanceRow struct {
	SoferID    string  `json:"soferId"`
	Nume       string  `json:"nume"`
	Curse      int     `json:"curse"`
	Km         float64 `json:"km"`
	Venit      string  `json:"venit"`
	VenitPerKm string  `json:"venitPerKm"`
}

type RepairCostRow struct {
	VehiculID          string `json:"vehiculId"`
	NumarInmatriculare string `json:"numarInmatriculare"`
	Reparatii          int    `json:"reparatii"`
	CostTotal          string `json:"costTotal"`
}

type PartnerDebtRow struct {
	PartenerID     string `json:"partenerId"`
	NumeFirma      string `json:"numeFirma"`
	Facturi        int    `json:"facturi"`
	SumaNeincasata string `json:"sumaNeincasata"`
}

// ReportParams narrows a report to a year or a date range.
type ReportParams struct {
	Year     int
	FromDate *time.Time
	ToDate   *time.Time
}

// ExportFile is a rendered report ready to stream as a download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// --- Interface ---

type ReportService interface {
	MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenueRow, error)
	DriverPerformance(ctx context.Context, params ReportParams) ([]DriverPerformanceRow, error)
	RepairCosts(ctx context.Context, params ReportParams) ([]RepairCostRow, error)
	PartnerDebts(ctx context.Context) ([]PartnerDebtRow, error)
	Export(ctx context.Context, report, format string, params ReportParams) (ExportFile, error)
}

type reportService struct {
	tripRepo    repository.TripRepository
	vehicleRepo repository.VehicleRepository
	invoiceRepo repository.InvoiceRepository
	now         func() time.Time
}

func NewReportService(
	tripRepo repository.TripRepository,
	vehicleRepo repository.VehicleRepository,
	invoiceRepo repository.InvoiceRepository,
) ReportService {
	return &reportService{
		tripRepo:    tripRepo,
		vehicleRepo: vehicleRepo,
		invoiceRepo: invoiceRepo,
		now:         time.Now,
	}
}

// --- Implementation ---

func (s *reportService) MonthlyRevenue(ctx context.Context, year int) ([]MonthlyRevenueRow, error) {
	trips, err := s.fetchTrips(ctx, repository.TripFilter{})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		curse int
		venit decimal.Decimal
		km    float64
	}
	months := make([]bucket, 12)
	for _, t := range trips {
		if t.CreatedAt.Year() != year || !t.Status.CountsTowardTarget() {
			continue
		}
		m := int(t.CreatedAt.Month()) - 1
		months[m].curse++
		months[m].venit = months[m].venit.Add(t.VenitNet())
		months[m].km += tripKm(t)
	}

	rows := make([]MonthlyRevenueRow, 12)
	for i, b := range months {
		rows[i] = MonthlyRevenueRow{
			Luna:  i + 1,
			Curse: b.curse,
			Venit: b.venit.StringFixed(2),
			Km:    b.km,
		}
	}
	return rows, nil
}

func (s *reportService) DriverPerformance(ctx context.Context, params ReportParams) ([]DriverPerformanceRow, error) {
	trips, err := s.fetchTrips(ctx, repository.TripFilter{
		FromDate: params.FromDate,
		ToDate:   params.ToDate,
	})
	if err != nil {
		return nil, err
	}

	type bucket struct {
		nume  string
		curse int
		km    float64
		venit decimal.Decimal
	}
	perDriver := make(map[string]*bucket)
	for _, t := range trips {
		if t.DriverID == nil || !t.Status.CountsTowardTarget() {
			continue
		}
		key := t.DriverID.String()
		b, ok := perDriver[key]
		if !ok {
			b = &bucket{}
			if t.Driver != nil {
				b.nume = t.Driver.Nume
			}
			perDriver[key] = b
		}
		b.curse++
		b.km += tripKm(t)
		b.venit = b.venit.Add(t.VenitNet())
	}

	rows := make([]DriverPerformanceRow, 0, len(perDriver))
	for id, b := range perDriver {
		perKm := decimal.Zero
		if b.km > 0 {
			perKm = b.venit.Div(decimal.NewFromFloat(b.km))
		}
		rows = append(rows, DriverPerformanceRow{
			SoferID:    id,
			Nume:       b.nume,
			Curse:      b.curse,
			Km:         b.km,
			Venit:      b.venit.StringFixed(2),
			VenitPerKm: perKm.StringFixed(2),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Nume < rows[j].Nume })
	return rows, nil
}

func (s *reportService) RepairCosts(ctx context.Context, params ReportParams) ([]RepairCostRow, error) {
	bulk := pagination.Bulk()
	vehicles, _, err := s.vehicleRepo.List(ctx, "", "", bulk.Page, bulk.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	rows := make([]RepairCostRow, 0, len(vehicles))
	for _, v := range vehicles {
		count := 0
		total := decimal.Zero
		for _, r := range v.Repairs {
			if params.FromDate != nil && r.Data.Before(*params.FromDate) {
				continue
			}
			if params.ToDate != nil && r.Data.After(*params.ToDate) {
				continue
			}
			count++
			total = total.Add(r.Cost)
		}
		rows = append(rows, RepairCostRow{
			VehiculID:          v.ID.String(),
			NumarInmatriculare: v.NumarInmatriculare,
			Reparatii:          count,
			CostTotal:          total.StringFixed(2),
		})
	}
	return rows, nil
}

func (s *reportService) PartnerDebts(ctx context.Context) ([]PartnerDebtRow, error) {
	bulk := pagination.Bulk()
	invoices, _, err := s.invoiceRepo.List(ctx, repository.InvoiceFilter{}, bulk.Page, bulk.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	type bucket struct {
		nume    string
		facturi int
		suma    decimal.Decimal
	}
	perPartner := make(map[string]*bucket)
	for _, inv := range invoices {
		if !inv.Status.IsUnpaid() {
			continue
		}
		if inv.Trip == nil || inv.Trip.Partner == nil {
			continue
		}
		key := inv.Trip.Partner.ID.String()
		b, ok := perPartner[key]
		if !ok {
			b = &bucket{nume: inv.Trip.Partner.NumeFirma}
			perPartner[key] = b
		}
		b.facturi++
		b.suma = b.suma.Add(inv.Suma)
	}

	rows := make([]PartnerDebtRow, 0, len(perPartner))
	for id, b := range perPartner {
		rows = append(rows, PartnerDebtRow{
			PartenerID:     id,
			NumeFirma:      b.nume,
			Facturi:        b.facturi,
			SumaNeincasata: b.suma.StringFixed(2),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].NumeFirma < rows[j].NumeFirma })
	return rows, nil
}

// Export renders a report as a CSV or XLSX attachment.
func (s *reportService) Export(ctx context.Context, report, format string, params ReportParams) (ExportFile, error) {
	table, scope, err := s.buildTable(ctx, report, params)
	if err != nil {
		return ExportFile{}, err
	}

	switch format {
	case "", "csv":
		data, err := csvutil.Render(table)
		if err != nil {
			return ExportFile{}, fmt.Errorf("failed to render csv: %w", err)
		}
		return ExportFile{
			Name:        csvutil.Filename(report, scope, "csv", s.now()),
			ContentType: "text/csv; charset=utf-8",
			Data:        data,
		}, nil
	case "xlsx":
		data, err := renderXLSX(table)
		if err != nil {
			return ExportFile{}, fmt.Errorf("failed to render xlsx: %w", err)
		}
		return ExportFile{
			Name:        csvutil.Filename(report, scope, "xlsx", s.now()),
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Data:        data,
		}, nil
	default:
		return ExportFile{}, fmt.Errorf("unsupported export format: %s", format)
	}
}

func (s *reportService) buildTable(ctx context.Context, report string, params ReportParams) (csvutil.Table, string, error) {
	switch report {
	case ReportMonthlyRevenue:
		year := params.Year
		if year == 0 {
			year = s.now().Year()
		}
		rows, err := s.MonthlyRevenue(ctx, year)
		if err != nil {
			return csvutil.Table{}, "", err
		}
		table := csvutil.Table{Header: []string{"Luna", "Curse", "Venit", "Km"}}
		for _, r := range rows {
			table.Rows = append(table.Rows, []string{
				fmt.Sprintf("%d", r.Luna), fmt.Sprintf("%d", r.Curse), r.Venit, fmt.Sprintf("%.1f", r.Km),
			})
		}
		return table, fmt.Sprintf("%d", year), nil

	case ReportDriverPerformance:
		rows, err := s.DriverPerformance(ctx, params)
		if err != nil {
			return csvutil.Table{}, "", err
		}
		table := csvutil.Table{Header: []string{"Sofer", "Curse", "Km", "Venit", "Venit/Km"}}
		for _, r := range rows {
			table.Rows = append(table.Rows, []string{
				r.Nume, fmt.Sprintf("%d", r.Curse), fmt.Sprintf("%.1f", r.Km), r.Venit, r.VenitPerKm,
			})
		}
		return table, "soferi", nil

	case ReportRepairCosts:
		rows, err := s.RepairCosts(ctx, params)
		if err != nil {
			return csvutil.Table{}, "", err
		}
		table := csvutil.Table{Header: []string{"Vehicul", "Reparatii", "Cost total"}}
		for _, r := range rows {
			table.Rows = append(table.Rows, []string{
				r.NumarInmatriculare, fmt.Sprintf("%d", r.Reparatii), r.CostTotal,
			})
		}
		return table, "vehicule", nil

	case ReportPartnerDebts:
		rows, err := s.PartnerDebts(ctx)
		if err != nil {
			return csvutil.Table{}, "", err
		}
		table := csvutil.Table{Header: []string{"Partener", "Facturi neincasate", "Suma"}}
		for _, r := range rows {
			table.Rows = append(table.Rows, []string{
				r.NumeFirma, fmt.Sprintf("%d", r.Facturi), r.SumaNeincasata,
			})
		}
		return table, "parteneri", nil

	default:
		return csvutil.Table{}, "", fmt.Errorf("unknown report: %s", report)
	}
}

func renderXLSX(table csvutil.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, h := range table.Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for rowIdx, row := range table.Rows {
		for col, val := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Helpers ---

func (s *reportService) fetchTrips(ctx context.Context, filter repository.TripFilter) ([]model.Trip, error) {
	bulk := pagination.Bulk()
	trips, _, err := s.tripRepo.List(ctx, filter, bulk.Page, bulk.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}
	return trips, nil
}

func tripKm(t model.Trip) float64 {
	if t.KmReali > 0 {
		return t.KmReali
	}
	return t.KmEstimati
}
