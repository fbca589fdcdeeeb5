package controllers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/restaurant-manager/services"
	"github.com/yeremiapane/restaurant-manager/utils"
)

const dateLayout = "2006-01-02"

type ReportController struct {
	Reports *services.ReportService
}

func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{Reports: reports}
}

// GetRevenueMetrics -> ?period=Last 7 Days|Last 30 Days|Last 90 Days
func (rc *ReportController) GetRevenueMetrics(c *gin.Context) {
	period := services.RevenuePeriod(c.DefaultQuery("period", string(services.PeriodLast7Days)))
	metrics, err := rc.Reports.GetRevenueMetrics(c.Request.Context(), period)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Revenue metrics", metrics)
}

// GetSalesReport -> ?start=YYYY-MM-DD&end=YYYY-MM-DD[&format=csv|pdf]
func (rc *ReportController) GetSalesReport(c *gin.Context) {
	start, end, ok := dateQuery(c)
	if !ok {
		return
	}
	report, err := rc.Reports.GetSalesReport(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	switch c.Query("format") {
	case "csv":
		var buf bytes.Buffer
		if err := services.WriteSalesCSV(&buf, report); err != nil {
			respondServiceError(c, err)
			return
		}
		attach(c, "sales_report.csv", "text/csv", buf.Bytes())
	case "pdf":
		var buf bytes.Buffer
		if err := services.WriteSalesPDF(&buf, report); err != nil {
			respondServiceError(c, err)
			return
		}
		attach(c, "sales_report.pdf", "application/pdf", buf.Bytes())
	case "", "json":
		utils.RespondJSON(c, http.StatusOK, "Sales report", report)
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unsupported format %q", c.Query("format")))
	}
}

// GetMenuPerformance -> ?start=YYYY-MM-DD&end=YYYY-MM-DD[&format=csv|png]
func (rc *ReportController) GetMenuPerformance(c *gin.Context) {
	start, end, ok := dateQuery(c)
	if !ok {
		return
	}
	rows, err := rc.Reports.GetMenuPerformance(c.Request.Context(), start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	switch c.Query("format") {
	case "csv":
		var buf bytes.Buffer
		if err := services.WriteMenuPerformanceCSV(&buf, rows); err != nil {
			respondServiceError(c, err)
			return
		}
		attach(c, "menu_report.csv", "text/csv", buf.Bytes())
	case "png":
		var buf bytes.Buffer
		if err := services.RenderMenuPerformanceChart(&buf, rows); err != nil {
			if errors.Is(err, services.ErrNoChartData) {
				utils.RespondError(c, http.StatusNotFound, err)
				return
			}
			respondServiceError(c, err)
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	case "", "json":
		utils.RespondJSON(c, http.StatusOK, "Menu performance", rows)
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unsupported format %q", c.Query("format")))
	}
}

func (rc *ReportController) GetDashboard(c *gin.Context) {
	summary, err := rc.Reports.GetDashboardSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dashboard summary", summary)
}

func dateQuery(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateLayout, c.Query("start"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("start: expected %s", dateLayout))
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateLayout, c.Query("end"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("end: expected %s", dateLayout))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func attach(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
