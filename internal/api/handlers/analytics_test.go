package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/service"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/testutil"
)

func setupAnalyticsHandler(t *testing.T) (*AnalyticsHandler, *service.AnalyticsService, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAnalyticsService(t, db)
	return NewAnalyticsHandler(svc), svc, db
}

func TestAnalyticsHandler_Snapshot(t *testing.T) {
	t.Run("serves revision zero before the first recompute", func(t *testing.T) {
		handler, _, _ := setupAnalyticsHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/snapshot", nil)
		w := httptest.NewRecorder()

		handler.Snapshot(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		snapshot := decodeBody[model.Snapshot](t, w)
		if snapshot.Revision != 0 {
			t.Errorf("Expected revision 0, got %d", snapshot.Revision)
		}
	})

	t.Run("serves the published snapshot after a recompute", func(t *testing.T) {
		handler, svc, db := setupAnalyticsHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		testutil.CreateExpense(t, db, 25, groceries.ID)

		if err := svc.Recompute(context.Background()); err != nil {
			t.Fatalf("Recompute() failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/snapshot", nil)
		w := httptest.NewRecorder()

		handler.Snapshot(w, req)

		snapshot := decodeBody[model.Snapshot](t, w)
		if snapshot.Revision != 1 {
			t.Errorf("Expected revision 1, got %d", snapshot.Revision)
		}
		if len(snapshot.FilteredTransactions) != 1 {
			t.Errorf("Expected 1 transaction in the view, got %d", len(snapshot.FilteredTransactions))
		}
	})
}

func TestAnalyticsHandler_DailySpending(t *testing.T) {
	t.Run("pairs the series with its average", func(t *testing.T) {
		handler, svc, db := setupAnalyticsHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		testutil.NewTransaction().
			WithAmount(100).
			WithCategory(groceries.ID).
			WithDate(testutil.Date(2026, 3, 2)).
			Build(t, db)

		svc.SetFilter(model.TransactionFilter{
			StartDate: testutil.Date(2026, 3, 1),
			EndDate:   testutil.Date(2026, 3, 4),
		})
		if err := svc.Recompute(context.Background()); err != nil {
			t.Fatalf("Recompute() failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/analytics/daily-spending", nil)
		w := httptest.NewRecorder()

		handler.DailySpending(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		result := decodeBody[DailySpendingResponse](t, w)
		if len(result.Series) != 4 {
			t.Fatalf("Expected a gap-filled series of 4 days, got %d", len(result.Series))
		}
		if result.Average != 25 {
			t.Errorf("Expected average 25, got %v", result.Average)
		}
	})
}

func TestAnalyticsHandler_SetFilter(t *testing.T) {
	t.Run("accepts a filter and echoes it back", func(t *testing.T) {
		handler, _, _ := setupAnalyticsHandler(t)

		minAmount := 10.0
		req := newJSONRequest(t, http.MethodPut, "/api/analytics/filter",
			request.SetFilterRequest{
				StartDate:  "2026-03-01",
				EndDate:    "2026-03-31",
				SearchText: "bakery",
				MinAmount:  &minAmount,
			}, nil)
		w := httptest.NewRecorder()

		handler.SetFilter(w, req)

		if w.Code != http.StatusAccepted {
			t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
		}
		filter := decodeBody[model.TransactionFilter](t, w)
		if filter.SearchText != "bakery" {
			t.Errorf("Expected search text echoed back, got %q", filter.SearchText)
		}
		if filter.MinAmount == nil || *filter.MinAmount != 10 {
			t.Errorf("Expected min amount 10, got %v", filter.MinAmount)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		handler, _, _ := setupAnalyticsHandler(t)

		req := newJSONRequest(t, http.MethodPut, "/api/analytics/filter",
			request.SetFilterRequest{StartDate: "03/01/2026"}, nil)
		w := httptest.NewRecorder()

		handler.SetFilter(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects an inverted date range", func(t *testing.T) {
		handler, _, _ := setupAnalyticsHandler(t)

		req := newJSONRequest(t, http.MethodPut, "/api/analytics/filter",
			request.SetFilterRequest{StartDate: "2026-03-31", EndDate: "2026-03-01"}, nil)
		w := httptest.NewRecorder()

		handler.SetFilter(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects an unknown transaction type", func(t *testing.T) {
		handler, _, _ := setupAnalyticsHandler(t)

		req := newJSONRequest(t, http.MethodPut, "/api/analytics/filter",
			request.SetFilterRequest{Types: []string{"withdrawal"}}, nil)
		w := httptest.NewRecorder()

		handler.SetFilter(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestAnalyticsHandler_Recompute(t *testing.T) {
	t.Run("forces a recompute and returns the fresh snapshot", func(t *testing.T) {
		handler, _, db := setupAnalyticsHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		testutil.CreateExpense(t, db, 42, groceries.ID)

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/recompute", nil)
		w := httptest.NewRecorder()

		handler.Recompute(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		snapshot := decodeBody[model.Snapshot](t, w)
		if snapshot.Revision != 1 {
			t.Errorf("Expected revision 1, got %d", snapshot.Revision)
		}
	})

	t.Run("returns 500 when the store is unavailable", func(t *testing.T) {
		handler, _, db := setupAnalyticsHandler(t)
		db.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/analytics/recompute", nil)
		w := httptest.NewRecorder()

		handler.Recompute(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d: %s", w.Code, w.Body.String())
		}
	})
}
