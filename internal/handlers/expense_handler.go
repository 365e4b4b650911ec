package handlers

import (
	"encoding/csv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "grosik/internal/errors"
	"grosik/internal/logger"
	"grosik/internal/models"
	"grosik/internal/pagination"
	"grosik/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	reportService  services.ReportServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, reportService services.ReportServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, reportService: reportService}
}

// ExpenseRequest represents the payload for creating or updating an
// expense. Amount travels as a string so it stays an exact decimal end to
// end; JSON numbers would round through float64.
type ExpenseRequest struct {
	CategoryID  *uint  `json:"category_id"`
	Amount      string `json:"amount" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Date        string `json:"date" binding:"required"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	CategoryID  *uint  `json:"category_id,omitempty"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// parseExpenseRequest validates the amount and date fields, reporting
// problems per field.
func parseExpenseRequest(req ExpenseRequest) (amount models.Expense, err error) {
	fields := make(map[string]string)

	parsed, amountErr := models.ParseAmount(req.Amount)
	if amountErr != nil {
		fields["amount"] = "amount must be a monetary value with at most 2 decimal places"
	}
	date, dateErr := time.Parse(dateLayout, req.Date)
	if dateErr != nil {
		fields["date"] = "date must be in YYYY-MM-DD format"
	}

	if len(fields) > 0 {
		return models.Expense{}, apperrors.WithFields(apperrors.ErrValidation, fields)
	}
	return models.Expense{Amount: parsed, Date: date}, nil
}

// CreateExpense handles the creation of a new expense
// @Summary     Create an expense
// @Description Record a new expense, optionally assigned to one of the user's categories
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} ExpenseResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	parsed, err := parseExpenseRequest(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.CreateExpense(userID, req.CategoryID, parsed.Amount, req.Description, parsed.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"expense": expense})
}

// GetExpenses handles the paginated, filtered expense list
// @Summary     List expenses
// @Description List the user's expenses, most recent first, with optional category and inclusive date filters
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       category  query string false "Category ID filter"
// @Param       date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       date_to   query string false "Inclusive end date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (1-based; clamped to the last page)"
// @Param       page_size query int    false "Page size (default 10)"
// @Success     200 {array} ExpenseResponse "Page of expenses"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		// Malformed paging input falls back to defaults, mirroring the
		// forgiving filter parsing.
		page = pagination.PageRequest{}
	}
	filter := parseExpenseFilter(c)

	result, err := h.expenseService.ListExpenses(userID, filter, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": result})
}

// UpdateExpense handles updating an expense
// @Summary     Update expense
// @Description Replace the editable fields of one of the user's expenses
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Param       request body ExpenseRequest true "Updated expense details"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrValidation, err.Error()))
		return
	}

	parsed, err := parseExpenseRequest(req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.UpdateExpense(userID, expenseID, req.CategoryID, parsed.Amount, req.Description, parsed.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

// DeleteExpense handles deleting an expense
// @Summary     Delete expense
// @Description Delete one of the user's expenses
// @Tags        expenses
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// csvHeader is the export header row.
var csvHeader = []string{"Date", "Category", "Description", "Amount"}

// ExportCSV streams the user's filtered expenses as a CSV attachment
// @Summary     Export expenses as CSV
// @Description Download the full filtered expense set (unpaginated), oldest first
// @Tags        expenses
// @Produce     text/csv
// @Security    BearerAuth
// @Param       category  query string false "Category ID filter"
// @Param       date_from query string false "Inclusive start date (YYYY-MM-DD)"
// @Param       date_to   query string false "Inclusive end date (YYYY-MM-DD)"
// @Success     200 {string} string "CSV file"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/export/csv [get]
func (h *ExpenseHandler) ExportCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter := parseExpenseFilter(c)

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="expenses.csv"`)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(csvHeader); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	err = h.reportService.ForEachExportRow(userID, filter, func(row services.ExportRow) error {
		return w.Write([]string{
			row.Date.Format(dateLayout),
			row.Category,
			row.Description,
			row.Amount.StringFixed(models.AmountScale),
		})
	})
	if err != nil {
		// The CSV header already went out, so a JSON error body would
		// corrupt the download. Log and cut the stream short.
		logger.Get().Errorw("csv export failed", "error", err.Error(), "user_id", userID)
		return
	}

	w.Flush()
	if err := w.Error(); err != nil {
		logger.Get().Errorw("csv export flush failed", "error", err.Error(), "user_id", userID)
	}
}
