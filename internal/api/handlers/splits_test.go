package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/api/request"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/testutil"
)

func setupSplitHandler(t *testing.T) (*SplitHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ss := testutil.NewTestSplitService(t, db)
	return NewSplitHandler(ss), db
}

func TestSplitHandler_CreateSplit(t *testing.T) {
	t.Run("returns 201 with the split parent", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		original := testutil.NewTransaction().WithAmount(500).Build(t, db)

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+original.ID+"/split",
			request.CreateSplitRequest{
				Splits: []request.SplitItemRequest{
					{Amount: 300, CategoryID: groceries.ID},
					{Amount: 200, CategoryID: household.ID},
				},
				RetainParent: true,
			},
			map[string]string{"uuid": original.ID})
		w := httptest.NewRecorder()

		handler.CreateSplit(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		result := decodeBody[model.Transaction](t, w)
		if result.ID != original.ID {
			t.Errorf("Expected parent to keep ID %s, got %s", original.ID, result.ID)
		}
		if len(result.Children) != 2 {
			t.Errorf("Expected 2 children, got %d", len(result.Children))
		}
	})

	t.Run("returns 422 for an unbalanced split", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		original := testutil.NewTransaction().WithAmount(500).Build(t, db)

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+original.ID+"/split",
			request.CreateSplitRequest{
				Splits:       []request.SplitItemRequest{{Amount: 300, CategoryID: groceries.ID}},
				RetainParent: true,
			},
			map[string]string{"uuid": original.ID})
		w := httptest.NewRecorder()

		handler.CreateSplit(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}

		// Nothing applied
		testutil.AssertRowCount(t, db, `"transaction"`, 1)
	})

	t.Run("returns 404 for a missing transaction", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		id := testutil.MakeID()

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+id+"/split",
			request.CreateSplitRequest{
				Splits: []request.SplitItemRequest{{Amount: 10, CategoryID: groceries.ID}},
			},
			map[string]string{"uuid": id})
		w := httptest.NewRecorder()

		handler.CreateSplit(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for an empty split list", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		original := testutil.NewTransaction().WithAmount(10).Build(t, db)

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+original.ID+"/split",
			request.CreateSplitRequest{},
			map[string]string{"uuid": original.ID})
		w := httptest.NewRecorder()

		handler.CreateSplit(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 400 for a non-positive split amount", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		original := testutil.NewTransaction().WithAmount(10).Build(t, db)

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+original.ID+"/split",
			request.CreateSplitRequest{
				Splits: []request.SplitItemRequest{{Amount: 0, CategoryID: groceries.ID}},
			},
			map[string]string{"uuid": original.ID})
		w := httptest.NewRecorder()

		handler.CreateSplit(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSplitHandler_UpdateSplit(t *testing.T) {
	t.Run("returns 200 with the rebuilt split", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		household := testutil.CreateCategory(t, db, "Household")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 300, 200)

		req := newJSONRequest(t, http.MethodPut, "/api/transaction/"+parent.ID+"/split",
			request.CreateSplitRequest{
				Splits: []request.SplitItemRequest{
					{Amount: 400, CategoryID: household.ID},
					{Amount: 100, CategoryID: groceries.ID},
				},
				RetainParent: true,
			},
			map[string]string{"uuid": parent.ID})
		w := httptest.NewRecorder()

		handler.UpdateSplit(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		result := decodeBody[model.Transaction](t, w)
		if len(result.Children) != 2 {
			t.Errorf("Expected 2 children, got %d", len(result.Children))
		}
		if result.Children[0].Amount != 400 {
			t.Errorf("Expected first child 400, got %v", result.Children[0].Amount)
		}
	})

	t.Run("returns 422 when the target is not a split parent", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		plain := testutil.NewTransaction().WithAmount(100).Build(t, db)

		req := newJSONRequest(t, http.MethodPut, "/api/transaction/"+plain.ID+"/split",
			request.CreateSplitRequest{
				Splits:       []request.SplitItemRequest{{Amount: 100, CategoryID: groceries.ID}},
				RetainParent: true,
			},
			map[string]string{"uuid": plain.ID})
		w := httptest.NewRecorder()

		handler.UpdateSplit(w, req)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSplitHandler_ConvertToRegular(t *testing.T) {
	t.Run("returns 200 with the collapsed transaction", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 300, 200)

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+parent.ID+"/convert",
			request.ConvertToRegularRequest{CategoryID: groceries.ID},
			map[string]string{"uuid": parent.ID})
		w := httptest.NewRecorder()

		handler.ConvertToRegular(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		result := decodeBody[model.Transaction](t, w)
		if result.Amount != 500 {
			t.Errorf("Expected recovered amount 500, got %v", result.Amount)
		}
		if result.CategoryID != groceries.ID {
			t.Errorf("Expected category applied, got %q", result.CategoryID)
		}
	})

	t.Run("returns 400 when categoryId is missing", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 50, 50)

		req := newJSONRequest(t, http.MethodPost, "/api/transaction/"+parent.ID+"/convert",
			request.ConvertToRegularRequest{},
			map[string]string{"uuid": parent.ID})
		w := httptest.NewRecorder()

		handler.ConvertToRegular(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestSplitHandler_DeleteSplit(t *testing.T) {
	t.Run("cascade removes the whole split", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 30, 20)

		req := newJSONRequest(t, http.MethodDelete,
			"/api/transaction/"+parent.ID+"/split?cascade=true", nil,
			map[string]string{"uuid": parent.ID})
		w := httptest.NewRecorder()

		handler.DeleteSplit(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 0)
	})

	t.Run("without cascade promotes the children", func(t *testing.T) {
		handler, db := setupSplitHandler(t)

		groceries := testutil.CreateCategory(t, db, "Groceries")
		parent := testutil.CreateSplitParent(t, db, groceries.ID, 30, 20)

		req := newJSONRequest(t, http.MethodDelete,
			"/api/transaction/"+parent.ID+"/split", nil,
			map[string]string{"uuid": parent.ID})
		w := httptest.NewRecorder()

		handler.DeleteSplit(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		testutil.AssertRowCount(t, db, `"transaction"`, 2)
	})
}
