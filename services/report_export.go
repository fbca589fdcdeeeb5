package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/yeremiapane/restaurant-manager/utils"
)

var (
	salesCSVHeader = []string{"Order ID", "Date", "Customer", "Total Amount", "Payment Mode", "Amount Paid"}
	menuCSVHeader  = []string{"Item Name", "Category", "Quantity Sold", "Total Revenue"}
)

// ErrNoChartData is returned when there is nothing to plot.
var ErrNoChartData = errors.New("no menu performance data to chart")

func WriteSalesCSV(w io.Writer, report *SalesReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(salesCSVHeader); err != nil {
		return err
	}
	for _, row := range report.Rows {
		record := []string{
			strconv.FormatUint(uint64(row.OrderID), 10),
			row.Date.Format("2006-01-02 15:04"),
			row.CustomerName,
			row.TotalAmount.StringFixed(2),
			string(row.PaymentMode),
			row.AmountPaid.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteMenuPerformanceCSV(w io.Writer, rows []MenuPerformanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(menuCSVHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Name,
			string(row.Category),
			strconv.Itoa(row.QuantitySold),
			row.Revenue.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSalesPDF renders the sales report as a one-table A4 document.
func WriteSalesPDF(w io.Writer, report *SalesReport) error {
	return salesPDF(report).Output(w)
}

// salesPDF lays out the document. The core fonts only cover cp1252, so
// free text goes through the translator.
func salesPDF(report *SalesReport) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Sales Report", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Sales Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	period := fmt.Sprintf("%s to %s", report.Start.Format("2006-01-02"), report.End.Format("2006-01-02"))
	pdf.CellFormat(0, 6, period, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(60, 6, "Total Revenue", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, utils.FormatCurrency(report.Summary.TotalRevenue), "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 6, "Total Orders", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, strconv.Itoa(report.Summary.TotalOrders), "", 1, "L", false, 0, "")
	pdf.CellFormat(60, 6, "Average Order Value", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, utils.FormatCurrency(report.Summary.AverageOrderValue), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{20, 32, 48, 30, 28, 30}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range salesCSVHeader {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range report.Rows {
		pdf.CellFormat(widths[0], 6, strconv.FormatUint(uint64(row.OrderID), 10), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[1], 6, row.Date.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tr(row.CustomerName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, utils.FormatCurrency(row.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, string(row.PaymentMode), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, utils.FormatCurrency(row.AmountPaid), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	if len(report.Rows) == 0 {
		pdf.CellFormat(0, 6, "No sales data found for the selected period.", "", 1, "L", false, 0, "")
	}
	return pdf
}

// RenderMenuPerformanceChart draws quantity sold and revenue per menu item as
// grouped bars on a shared axis, quantity first.
func RenderMenuPerformanceChart(w io.Writer, rows []MenuPerformanceRow) error {
	if len(rows) == 0 {
		return ErrNoChartData
	}

	bars, maxValue := menuChartBars(rows)
	graph := chart.BarChart{
		Title: "Item Performance",
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		Width:      200 + len(bars)*60,
		Height:     480,
		BarWidth:   40,
		BarSpacing: 20,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

func menuChartBars(rows []MenuPerformanceRow) ([]chart.Value, float64) {
	quantityStyle := chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue, StrokeWidth: 1}
	revenueStyle := chart.Style{FillColor: chart.ColorOrange, StrokeColor: chart.ColorOrange, StrokeWidth: 1}

	bars := make([]chart.Value, 0, len(rows)*2)
	maxValue := 0.0
	for _, row := range rows {
		quantity := float64(row.QuantitySold)
		revenue := row.Revenue.InexactFloat64()
		maxValue = math.Max(maxValue, math.Max(quantity, revenue))
		bars = append(bars,
			chart.Value{Label: row.Name + " (qty)", Value: quantity, Style: quantityStyle},
			chart.Value{Label: row.Name + " (rev)", Value: revenue, Style: revenueStyle},
		)
	}
	if maxValue <= 0 {
		maxValue = 1
	}
	return bars, maxValue
}
