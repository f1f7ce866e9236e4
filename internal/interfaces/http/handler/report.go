package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/propmanager/backend/internal/application/report"
	"github.com/propmanager/backend/internal/domain/report"
)

// ReportHandler serves the admin reports
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RevenueQuery bounds the revenue report by property creation date
type RevenueQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,date"`
	EndDate   string `form:"endDate" binding:"omitempty,date"`
}

// Occupancy godoc
// @Summary      Occupancy report
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=report.Occupancy}
// @Security     BearerAuth
// @Router       /reports/occupancy [get]
func (h *ReportHandler) Occupancy(c *gin.Context) {
	o, err := h.reportService.Occupancy(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, o)
}

// Revenue godoc
// @Summary      Revenue report
// @Description  Expected rent from let properties, grouped by the month the property was added
// @Tags         reports
// @Produce      json
// @Param        startDate query string false "YYYY-MM-DD"
// @Param        endDate   query string false "YYYY-MM-DD"
// @Success      200 {object} dto.Response{data=report.Revenue}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	var q RevenueQuery
	if !h.bindQuery(c, &q) {
		return
	}

	r, err := h.reportService.Revenue(c.Request.Context(), q.StartDate, q.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// PropertiesSummary godoc
// @Summary      Properties with their tenants
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response{data=[]report.PropertySummary}
// @Security     BearerAuth
// @Router       /reports/properties-summary [get]
func (h *ReportHandler) PropertiesSummary(c *gin.Context) {
	rows, err := h.reportService.PropertiesSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// Export godoc
// @Summary      Download a report as a spreadsheet
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        kind      path  string true  "occupancy, revenue or properties-summary"
// @Param        startDate query string false "Revenue only, YYYY-MM-DD"
// @Param        endDate   query string false "Revenue only, YYYY-MM-DD"
// @Success      200 {file} file
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/{kind}/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	var q RevenueQuery
	if !h.bindQuery(c, &q) {
		return
	}

	file, err := h.reportService.Export(c.Request.Context(), report.Kind(c.Param("kind")), q.StartDate, q.EndDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Content-Length", strconv.Itoa(len(file.Data)))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Archive godoc
// @Summary      Archive a report to object storage
// @Description  Returns a time-limited download link
// @Tags         reports
// @Produce      json
// @Param        kind path string true "occupancy, revenue or properties-summary"
// @Success      201 {object} dto.Response{data=reportapp.ArchiveResult}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /reports/{kind}/archive [post]
func (h *ReportHandler) Archive(c *gin.Context) {
	var createdBy *uuid.UUID
	if id, err := getUserID(c); err == nil {
		createdBy = &id
	}

	result, err := h.reportService.Archive(c.Request.Context(), report.Kind(c.Param("kind")), createdBy)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ListArchives godoc
// @Summary      Stored report archives, newest first
// @Tags         reports
// @Produce      json
// @Param        limit query int false "Maximum rows" default(50)
// @Success      200 {object} dto.Response{data=[]reportapp.ArchiveInfo}
// @Security     BearerAuth
// @Router       /reports/archives [get]
func (h *ReportHandler) ListArchives(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	archives, err := h.reportService.ListArchives(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, archives)
}
