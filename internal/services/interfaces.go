package services

import (
	"time"

	"github.com/shopspring/decimal"

	"grosik/internal/models"
	"grosik/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	DeleteUser(userID uint) error
}

// ProfileServicer defines the contract for user profile preferences.
type ProfileServicer interface {
	GetProfile(userID uint) (*models.UserProfile, error)
	UpdateProfile(userID uint, currency, language *string) (*models.UserProfile, error)
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID uint, name string) (*models.Category, error)
	GetUserCategories(userID uint) ([]models.Category, error)
	GetCategoryByID(userID, categoryID uint) (*models.Category, error)
	DeleteCategory(userID, categoryID uint) error
}

// ExpenseFilter holds optional filter parameters for listing and exporting
// expenses. All filters are conjunctive; nil means "no filter". Date bounds
// are inclusive.
type ExpenseFilter struct {
	CategoryID *uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ExpenseServicer defines the contract for expense-related business logic.
// Every method takes the owning user's ID; operations never see another
// user's rows.
type ExpenseServicer interface {
	CreateExpense(userID uint, categoryID *uint, amount decimal.Decimal, description string, date time.Time) (*models.Expense, error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	UpdateExpense(userID, expenseID uint, categoryID *uint, amount decimal.Decimal, description string, date time.Time) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	ListExpenses(userID uint, filter ExpenseFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
}

// NoCategoryLabel is the display placeholder for uncategorized expenses in
// the category breakdown.
const NoCategoryLabel = "(No category)"

// TopCategoryCount limits the dashboard category breakdown.
const TopCategoryCount = 5

// CategoryTotal is one row of the dashboard category breakdown.
type CategoryTotal struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

// MonthTotal is one row of the dashboard monthly trend, labeled YYYY-MM.
type MonthTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// DashboardSummary aggregates a user's spending. All totals are exact
// decimals; only chart payloads built from them may degrade to floats.
type DashboardSummary struct {
	TotalAll       decimal.Decimal `json:"total_all"`
	TotalThisMonth decimal.Decimal `json:"total_this_month"`
	ByCategory     []CategoryTotal `json:"by_category"`
	MonthlyTrend   []MonthTotal    `json:"monthly_trend"`
}

// ExportRow is one CSV export line. Category is empty for uncategorized
// expenses.
type ExportRow struct {
	Date        time.Time
	Category    string
	Description string
	Amount      decimal.Decimal
}

// ReportServicer defines the contract for aggregated reads.
type ReportServicer interface {
	DashboardSummary(userID uint, asOf time.Time) (*DashboardSummary, error)
	ForEachExportRow(userID uint, filter ExpenseFilter, fn func(ExportRow) error) error
}
