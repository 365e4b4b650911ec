package services

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"grosik/internal/models"
	"grosik/internal/pagination"
	"grosik/internal/testutil"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

func TestCreateExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, "Food")

		expense, err := svc.CreateExpense(user.ID, &cat.ID, mustDecimal(t, "12.34"), "Lunch", testutil.Date(2024, 3, 15))
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		testutil.AssertDecimalEqual(t, expense.Amount, "12.34")
		if expense.CategoryID == nil || *expense.CategoryID != cat.ID {
			t.Errorf("expected category %d, got %v", cat.ID, expense.CategoryID)
		}
		if expense.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("uncategorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		expense, err := svc.CreateExpense(user.ID, nil, mustDecimal(t, "5.00"), "", testutil.Date(2024, 3, 15))
		testutil.AssertNoError(t, err)

		if expense.CategoryID != nil {
			t.Errorf("expected nil category, got %v", expense.CategoryID)
		}
	})

	t.Run("too_many_decimal_places", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, nil, mustDecimal(t, "1.999"), "", testutil.Date(2024, 3, 15))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("amount_out_of_range", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, nil, mustDecimal(t, "100000000.00"), "", testutil.Date(2024, 3, 15))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateExpense(user.ID, nil, mustDecimal(t, "5.00"), "", time.Time{})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("description_too_long", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		desc := make([]byte, models.DescriptionMaxLen+1)
		for i := range desc {
			desc[i] = 'x'
		}
		_, err := svc.CreateExpense(user.ID, nil, mustDecimal(t, "5.00"), string(desc), testutil.Date(2024, 3, 15))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("multibyte_description_at_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		// 255 characters but 510 bytes; the limit counts characters.
		desc := strings.Repeat("ż", models.DescriptionMaxLen)
		_, err := svc.CreateExpense(user.ID, nil, mustDecimal(t, "5.00"), desc, testutil.Date(2024, 3, 15))
		testutil.AssertNoError(t, err)

		_, err = svc.CreateExpense(user.ID, nil, mustDecimal(t, "5.00"), desc+"ż", testutil.Date(2024, 3, 15))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("other_users_category_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		foreign := testutil.CreateTestCategory(t, db, user2.ID, "Theirs")

		_, err := svc.CreateExpense(user1.ID, &foreign.ID, mustDecimal(t, "5.00"), "", testutil.Date(2024, 3, 15))
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})
}

func TestUpdateExpense(t *testing.T) {
	t.Run("replaces_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, "Food")
		expense := testutil.CreateTestExpense(t, db, user.ID, &cat.ID, "10.00", testutil.Date(2024, 1, 10))

		updated, err := svc.UpdateExpense(user.ID, expense.ID, nil, mustDecimal(t, "20.50"), "Corrected", testutil.Date(2024, 1, 12))
		testutil.AssertNoError(t, err)

		testutil.AssertDecimalEqual(t, updated.Amount, "20.50")
		if updated.CategoryID != nil {
			t.Errorf("expected category cleared, got %v", updated.CategoryID)
		}
		if updated.Description != "Corrected" {
			t.Errorf("expected description Corrected, got %s", updated.Description)
		}
	})

	t.Run("other_users_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user2.ID, nil, "10.00", testutil.Date(2024, 1, 10))

		_, err := svc.UpdateExpense(user1.ID, expense.ID, nil, mustDecimal(t, "1.00"), "", testutil.Date(2024, 1, 10))
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})

	t.Run("nonexistent_expense_same_error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.UpdateExpense(user.ID, 99999, nil, mustDecimal(t, "1.00"), "", testutil.Date(2024, 1, 10))
		testutil.AssertAppError(t, err, "NOT_FOUND")
	})
}

func TestDeleteExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user.ID, nil, "10.00", testutil.Date(2024, 1, 10))

		testutil.AssertNoError(t, svc.DeleteExpense(user.ID, expense.ID))

		var count int64
		db.Model(&models.Expense{}).Where("user_id = ?", user.ID).Count(&count)
		if count != 0 {
			t.Errorf("expected 0 expenses after delete, got %d", count)
		}
	})

	t.Run("other_users_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		expense := testutil.CreateTestExpense(t, db, user2.ID, nil, "10.00", testutil.Date(2024, 1, 10))

		testutil.AssertAppError(t, svc.DeleteExpense(user1.ID, expense.ID), "NOT_FOUND")
	})
}

func TestListExpenses(t *testing.T) {
	t.Run("most_recent_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, nil, "1.00", testutil.Date(2024, 1, 1))
		testutil.CreateTestExpense(t, db, user.ID, nil, "2.00", testutil.Date(2024, 3, 1))
		testutil.CreateTestExpense(t, db, user.ID, nil, "3.00", testutil.Date(2024, 2, 1))

		result, err := svc.ListExpenses(user.ID, ExpenseFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 3 {
			t.Fatalf("expected 3 expenses, got %d", len(result.Data))
		}
		for i, want := range []string{"2.00", "3.00", "1.00"} {
			testutil.AssertDecimalEqual(t, result.Data[i].Amount, want)
		}
	})

	t.Run("same_date_newest_insert_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user.ID, nil, "1.00", testutil.Date(2024, 1, 1))
		testutil.CreateTestExpense(t, db, user.ID, nil, "2.00", testutil.Date(2024, 1, 1))

		result, err := svc.ListExpenses(user.ID, ExpenseFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(result.Data))
		}
		testutil.AssertDecimalEqual(t, result.Data[0].Amount, "2.00")
		testutil.AssertDecimalEqual(t, result.Data[1].Amount, "1.00")
	})

	t.Run("date_filter_bounds_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		for _, d := range []time.Time{
			testutil.Date(2023, 12, 31),
			testutil.Date(2024, 1, 1),
			testutil.Date(2024, 1, 15),
			testutil.Date(2024, 1, 31),
			testutil.Date(2024, 2, 1),
		} {
			testutil.CreateTestExpense(t, db, user.ID, nil, "1.00", d)
		}

		from := testutil.Date(2024, 1, 1)
		to := testutil.Date(2024, 1, 31)
		result, err := svc.ListExpenses(user.ID, ExpenseFilter{DateFrom: &from, DateTo: &to}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 3 {
			t.Fatalf("expected the three January expenses, got %d", result.TotalItems)
		}
		for _, e := range result.Data {
			if e.Date.Before(from) || e.Date.After(to) {
				t.Errorf("expense date %s outside inclusive range", e.Date.Format("2006-01-02"))
			}
		}
	})

	t.Run("category_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db, user.ID, "Food")
		transport := testutil.CreateTestCategory(t, db, user.ID, "Transport")

		testutil.CreateTestExpense(t, db, user.ID, &food.ID, "1.00", testutil.Date(2024, 1, 1))
		testutil.CreateTestExpense(t, db, user.ID, &transport.ID, "2.00", testutil.Date(2024, 1, 2))
		testutil.CreateTestExpense(t, db, user.ID, nil, "3.00", testutil.Date(2024, 1, 3))

		result, err := svc.ListExpenses(user.ID, ExpenseFilter{CategoryID: &food.ID}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected 1 expense, got %d", result.TotalItems)
		}
		testutil.AssertDecimalEqual(t, result.Data[0].Amount, "1.00")
	})

	t.Run("page_beyond_end_returns_last_page", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		// 15 expenses with page size 10 make a 2-page result set.
		for day := 1; day <= 15; day++ {
			testutil.CreateTestExpense(t, db, user.ID, nil, "1.00", testutil.Date(2024, 1, day))
		}

		last, err := svc.ListExpenses(user.ID, ExpenseFilter{}, pagination.PageRequest{Page: 2})
		testutil.AssertNoError(t, err)

		beyond, err := svc.ListExpenses(user.ID, ExpenseFilter{}, pagination.PageRequest{Page: 999})
		testutil.AssertNoError(t, err)

		if beyond.Page != 2 {
			t.Errorf("expected page clamped to 2, got %d", beyond.Page)
		}
		if len(beyond.Data) != len(last.Data) {
			t.Fatalf("expected %d rows on clamped page, got %d", len(last.Data), len(beyond.Data))
		}
		for i := range last.Data {
			if beyond.Data[i].ID != last.Data[i].ID {
				t.Errorf("row %d: expected expense %d, got %d", i, last.Data[i].ID, beyond.Data[i].ID)
			}
		}
	})

	t.Run("empty_set_reports_page_one", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user := testutil.CreateTestUser(t, db)

		result, err := svc.ListExpenses(user.ID, ExpenseFilter{}, pagination.PageRequest{Page: 999})
		testutil.AssertNoError(t, err)

		if result.Page != 1 {
			t.Errorf("expected page 1 for empty set, got %d", result.Page)
		}
		if len(result.Data) != 0 || result.TotalItems != 0 {
			t.Errorf("expected empty page, got %d rows, %d total", len(result.Data), result.TotalItems)
		}
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewExpenseService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestExpense(t, db, user1.ID, nil, "1.00", testutil.Date(2024, 1, 1))
		testutil.CreateTestExpense(t, db, user2.ID, nil, "2.00", testutil.Date(2024, 1, 1))

		result, err := svc.ListExpenses(user1.ID, ExpenseFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Fatalf("expected only user1's expense, got %d rows", result.TotalItems)
		}
		testutil.AssertDecimalEqual(t, result.Data[0].Amount, "1.00")
	})
}
