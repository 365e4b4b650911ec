package services

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "grosik/internal/errors"
	"grosik/internal/models"
	"grosik/internal/pagination"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// validateExpenseInput checks the field constraints shared by create and
// update. The category, when given, must resolve scoped to the owner; a
// foreign or unknown category ID fails identically.
func (s *expenseService) validateExpenseInput(userID uint, categoryID *uint, amount decimal.Decimal, description string, date time.Time) error {
	fields := make(map[string]string)
	if err := models.ValidateAmount(amount); err != nil {
		fields["amount"] = "amount must be a monetary value with at most 2 decimal places"
	}
	if date.IsZero() {
		fields["date"] = "date is required"
	}
	if utf8.RuneCountInString(description) > models.DescriptionMaxLen {
		fields["description"] = "description must be at most 255 characters"
	}
	if len(fields) > 0 {
		return apperrors.WithFields(apperrors.ErrValidation, fields)
	}

	if categoryID != nil {
		var count int64
		if err := s.db.Model(&models.Category{}).
			Where("id = ? AND user_id = ?", *categoryID, userID).
			Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

// CreateExpense records a new expense for the user.
func (s *expenseService) CreateExpense(userID uint, categoryID *uint, amount decimal.Decimal, description string, date time.Time) (*models.Expense, error) {
	if err := s.validateExpenseInput(userID, categoryID, amount, description, date); err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:      userID,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
		Date:        date,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return expense, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user. An expense
// owned by someone else yields the same NOT_FOUND as a nonexistent ID.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// UpdateExpense replaces the editable fields of an expense. The creation
// timestamp is never touched; last write wins.
func (s *expenseService) UpdateExpense(userID, expenseID uint, categoryID *uint, amount decimal.Decimal, description string, date time.Time) (*models.Expense, error) {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return nil, err
	}

	if err := s.validateExpenseInput(userID, categoryID, amount, description, date); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"category_id": categoryID,
		"amount":      amount,
		"description": description,
		"date":        date,
	}
	if err := s.db.Model(expense).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.GetExpenseByID(userID, expenseID)
}

// DeleteExpense removes an expense, with the same ownership semantics as
// GetExpenseByID.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// applyExpenseFilters narrows q by the optional conjunctive filters.
func applyExpenseFilters(q *gorm.DB, f ExpenseFilter) *gorm.DB {
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.DateFrom != nil {
		q = q.Where("date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("date <= ?", *f.DateTo)
	}
	return q
}

// ListExpenses retrieves a filtered page of the user's expenses, most
// recent first (date, then creation time, then ID). A page number past the
// end of the result set returns the last page.
func (s *expenseService) ListExpenses(userID uint, filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	page.Clamp(totalItems)

	var expenses []models.Expense
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}
