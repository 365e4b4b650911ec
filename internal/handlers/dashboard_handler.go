package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grosik/internal/services"
)

// DashboardHandler serves the spending summary.
type DashboardHandler struct {
	reportService  services.ReportServicer
	profileService services.ProfileServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService services.ReportServicer, profileService services.ProfileServicer) *DashboardHandler {
	return &DashboardHandler{reportService: reportService, profileService: profileService}
}

// ChartData holds parallel label/value arrays for a chart widget. This is
// the one place exact decimals degrade to floats; everything upstream stays
// decimal.
type ChartData struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// DashboardResponse is the dashboard payload.
type DashboardResponse struct {
	Summary        *services.DashboardSummary `json:"summary"`
	CategoryChart  ChartData                  `json:"category_chart"`
	MonthlyChart   ChartData                  `json:"monthly_chart"`
	Currency       string                     `json:"currency"`
	CurrencySymbol string                     `json:"currency_symbol"`
}

// GetDashboard handles the dashboard summary request
// @Summary     Dashboard summary
// @Description Spending totals, top categories, and monthly trend for the authenticated user
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} DashboardResponse "Dashboard data"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.DashboardSummary(userID, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	resp := DashboardResponse{
		Summary:        summary,
		Currency:       string(profile.Currency),
		CurrencySymbol: profile.CurrencySymbol(),
	}
	for _, row := range summary.ByCategory {
		resp.CategoryChart.Labels = append(resp.CategoryChart.Labels, row.Name)
		resp.CategoryChart.Values = append(resp.CategoryChart.Values, row.Total.InexactFloat64())
	}
	for _, row := range summary.MonthlyTrend {
		resp.MonthlyChart.Labels = append(resp.MonthlyChart.Labels, row.Month)
		resp.MonthlyChart.Values = append(resp.MonthlyChart.Values, row.Total.InexactFloat64())
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": resp})
}
