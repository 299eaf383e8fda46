package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/apperrors"
)

// TestParseTime tests the layered date parsing used when scanning rows.
//
// WHY: Transaction dates persist as "2006-01-02" but created_at columns carry
// RFC3339 or SQLite's CURRENT_TIMESTAMP format; all three must round-trip.
func TestParseTime(t *testing.T) {
	t.Run("parses the supported layouts", func(t *testing.T) {
		cases := []struct {
			input string
			want  time.Time
		}{
			{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
			{"2026-03-15T10:30:00Z", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
			{"2026-03-15 10:30:00", time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)},
		}

		for _, tc := range cases {
			got, err := ParseTime(tc.input)
			if err != nil {
				t.Errorf("ParseTime(%q) returned unexpected error: %v", tc.input, err)
				continue
			}
			if !got.Equal(tc.want) {
				t.Errorf("ParseTime(%q) = %v, want %v", tc.input, got, tc.want)
			}
		}
	})

	t.Run("rejects an unparseable value", func(t *testing.T) {
		if _, err := ParseTime("15/03/2026"); err == nil {
			t.Error("Expected error for unsupported layout, got nil")
		}
	})
}

// TestStoreError tests the driver-failure classification.
//
// WHY: Services and handlers match on the store sentinels, never on driver
// error types. Any failure that is not a busy/locked conflict must come back
// wrapped in ErrStoreIO so it still matches the taxonomy.
func TestStoreError(t *testing.T) {
	t.Run("wraps generic failures as store I/O", func(t *testing.T) {
		cause := fmt.Errorf("disk unplugged")

		err := storeError("insert transaction", cause)

		if !errors.Is(err, apperrors.ErrStoreIO) {
			t.Errorf("Expected ErrStoreIO, got %v", err)
		}
		if errors.Is(err, apperrors.ErrStoreConflict) {
			t.Errorf("Generic failure must not classify as a conflict: %v", err)
		}
	})
}
