package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"trasporto-backend/internal/service"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportHandler serves the per-user, per-driver and per-destination
// aggregations, as JSON or as a CSV/XLSX download (?format=csv|xlsx).
// Optional ?from and ?to bound the date range, inclusive.
type ReportHandler struct {
	reportService service.ReportService
	requireAuth   gin.HandlerFunc
}

func NewReportHandler(reportService service.ReportService, requireAuth gin.HandlerFunc) *ReportHandler {
	return &ReportHandler{reportService: reportService, requireAuth: requireAuth}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports", h.requireAuth)
	{
		reports.GET("/users", h.UserReports)
		reports.GET("/drivers", h.DriverReports)
		reports.GET("/destinations", h.DestinationReports)
	}
}

// UserReports aggregates trips per ride recipient
// @Summary      Per-user report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from    query  string  false  "Start date YYYY-MM-DD"
// @Param        to      query  string  false  "End date YYYY-MM-DD"
// @Param        format  query  string  false  "csv or xlsx for a download"
// @Success      200  {object}  response.Response{data=[]service.UserReport}
// @Router       /api/reports/users [get]
func (h *ReportHandler) UserReports(c *gin.Context) {
	reports, err := h.reportService.UserReports(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}

	headers := []string{"User", "Date", "Time", "Destination", "Cost", "Driver"}
	var rows [][]string
	for _, r := range reports {
		for _, t := range r.Trips {
			rows = append(rows, []string{r.UserName, t.Date, t.StartTime, t.DestinationName, t.Cost.StringFixed(2), t.DriverName})
		}
	}
	h.respond(c, "report_users", headers, rows, reports)
}

// DriverReports aggregates trips per driver
// @Summary      Per-driver report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from    query  string  false  "Start date YYYY-MM-DD"
// @Param        to      query  string  false  "End date YYYY-MM-DD"
// @Param        format  query  string  false  "csv or xlsx for a download"
// @Success      200  {object}  response.Response{data=[]service.DriverReport}
// @Router       /api/reports/drivers [get]
func (h *ReportHandler) DriverReports(c *gin.Context) {
	reports, err := h.reportService.DriverReports(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}

	headers := []string{"Driver", "Date", "Time", "User", "Destination", "Cost"}
	var rows [][]string
	for _, r := range reports {
		for _, t := range r.Trips {
			rows = append(rows, []string{r.DriverName, t.Date, t.StartTime, t.UserName, t.DestinationName, t.Cost.StringFixed(2)})
		}
	}
	h.respond(c, "report_drivers", headers, rows, reports)
}

// DestinationReports aggregates trip counts and totals per destination
// @Summary      Per-destination report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from    query  string  false  "Start date YYYY-MM-DD"
// @Param        to      query  string  false  "End date YYYY-MM-DD"
// @Param        format  query  string  false  "csv or xlsx for a download"
// @Success      200  {object}  response.Response{data=[]service.DestinationReport}
// @Router       /api/reports/destinations [get]
func (h *ReportHandler) DestinationReports(c *gin.Context) {
	reports, err := h.reportService.DestinationReports(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		writeError(c, err)
		return
	}

	headers := []string{"Destination", "Trips", "Total cost"}
	var rows [][]string
	for _, r := range reports {
		rows = append(rows, []string{r.DestinationName, strconv.Itoa(r.TripCount), r.TotalCost.StringFixed(2)})
	}
	h.respond(c, "report_destinations", headers, rows, reports)
}

func (h *ReportHandler) respond(c *gin.Context, name string, headers []string, rows [][]string, payload interface{}) {
	switch c.Query("format") {
	case "csv":
		h.writeCSV(c, name, headers, rows)
	case "xlsx":
		h.writeXLSX(c, name, headers, rows)
	default:
		c.JSON(http.StatusOK, response.Success(http.StatusOK, payload))
	}
}

func (h *ReportHandler) writeCSV(c *gin.Context, name string, headers []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.csv\"", name, time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(headers)
	for _, row := range rows {
		writer.Write(row)
	}
}

func (h *ReportHandler) writeXLSX(c *gin.Context, name string, headers []string, rows [][]string) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for r, row := range rows {
		for i, value := range row {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s_%s.xlsx\"", name, time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		writeError(c, err)
	}
}
