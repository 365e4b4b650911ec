package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grosik/internal/errors"
	"grosik/internal/models"
)

// monthLabelLayout formats a calendar month as YYYY-MM.
const monthLabelLayout = "2006-01"

// reportService computes aggregated reads over a user's expenses. The data
// volume per user is small, so aggregation is a single pass over the rows
// with exact decimal arithmetic rather than SQL SUMs, which on some engines
// would round through floats.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// categoryNames returns the user's category names keyed by ID.
func (s *reportService) categoryNames(userID uint) (map[uint]string, error) {
	var categories []models.Category
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

// DashboardSummary computes the user's spending totals as of the given
// date: the all-time total, the total from the first of the as-of month
// through the as-of date inclusive, the top five categories by total, and
// the per-month trend in ascending month order.
func (s *reportService) DashboardSummary(userID uint, asOf time.Time) (*DashboardSummary, error) {
	names, err := s.categoryNames(userID)
	if err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	asOfDate := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC)
	startOfMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary := &DashboardSummary{
		TotalAll:       decimal.Zero,
		TotalThisMonth: decimal.Zero,
	}

	byCategory := make(map[uint]decimal.Decimal)
	var categoryOrder []uint
	byMonth := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		summary.TotalAll = summary.TotalAll.Add(e.Amount)

		date := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
		if !date.Before(startOfMonth) && !date.After(asOfDate) {
			summary.TotalThisMonth = summary.TotalThisMonth.Add(e.Amount)
		}

		// Key 0 collects uncategorized expenses.
		var key uint
		if e.CategoryID != nil {
			key = *e.CategoryID
		}
		if _, seen := byCategory[key]; !seen {
			categoryOrder = append(categoryOrder, key)
		}
		byCategory[key] = byCategory[key].Add(e.Amount)

		label := date.Format(monthLabelLayout)
		byMonth[label] = byMonth[label].Add(e.Amount)
	}

	// Ties keep category ID order, with uncategorized last.
	sort.Slice(categoryOrder, func(i, j int) bool {
		a, b := categoryOrder[i], categoryOrder[j]
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
	for _, key := range categoryOrder {
		name := NoCategoryLabel
		if key != 0 {
			name = names[key]
		}
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Name: name, Total: byCategory[key]})
	}
	sort.SliceStable(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
	})
	if len(summary.ByCategory) > TopCategoryCount {
		summary.ByCategory = summary.ByCategory[:TopCategoryCount]
	}

	months := make([]string, 0, len(byMonth))
	for label := range byMonth {
		months = append(months, label)
	}
	sort.Strings(months)
	for _, label := range months {
		summary.MonthlyTrend = append(summary.MonthlyTrend, MonthTotal{Month: label, Total: byMonth[label]})
	}

	return summary, nil
}

// ForEachExportRow streams the user's expenses matching the filter in
// ascending date order, one callback per row, without loading the whole
// set into memory.
func (s *reportService) ForEachExportRow(userID uint, filter ExpenseFilter, fn func(ExportRow) error) error {
	names, err := s.categoryNames(userID)
	if err != nil {
		return err
	}

	q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	q = applyExpenseFilters(q, filter)

	rows, err := q.Order("date ASC, id ASC").Rows()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Expense
		if err := s.db.ScanRows(rows, &e); err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		row := ExportRow{
			Date:        e.Date,
			Description: e.Description,
			Amount:      e.Amount,
		}
		if e.CategoryID != nil {
			row.Category = names[*e.CategoryID]
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
