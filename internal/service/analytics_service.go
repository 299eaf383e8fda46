package service

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jmolenaar/Expense-Ledger-Backend/internal/model"
	"github.com/jmolenaar/Expense-Ledger-Backend/internal/repository"
)

// DefaultDebounce is the window after the last input change before a
// recompute fires. Changes arriving within the window coalesce into a single
// pass.
const DefaultDebounce = 50 * time.Millisecond

// AnalyticsService derives the filtered transaction view and all aggregate
// statistics from the raw transaction set.
//
// Mutating services call Invalidate after every write; filter changes arrive
// through SetFilter. Both only arm a debounced recompute. A single worker
// goroutine performs the recompute, so no two recomputations ever run
// concurrently, and a change arriving mid-window supersedes the pending one
// (last write wins). Every recompute publishes a complete new immutable
// Snapshot; consumers poll Snapshot() and never see a partial update.
type AnalyticsService struct {
	transactionRepo *repository.TransactionRepository
	categoryRepo    *repository.CategoryRepository
	debounce        time.Duration

	notify chan struct{}

	// recomputeMu serializes whole recompute passes (load, build, publish).
	// The worker loop is one caller; the startup warm-up and the internal
	// recompute endpoint invoke Recompute directly from their own goroutines,
	// and without this lock a slow pass that loaded an older transaction set
	// could publish after, and thus over, a fresher snapshot.
	recomputeMu sync.Mutex

	mu       sync.RWMutex
	filter   model.TransactionFilter
	snapshot model.Snapshot
}

// NewAnalyticsService creates a new AnalyticsService with the provided
// repository dependencies. A debounce of 0 falls back to DefaultDebounce.
func NewAnalyticsService(
	transactionRepo *repository.TransactionRepository,
	categoryRepo *repository.CategoryRepository,
	debounce time.Duration,
) *AnalyticsService {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &AnalyticsService{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		debounce:        debounce,
		notify:          make(chan struct{}, 1),
	}
}

// Run is the recompute worker loop. It blocks until ctx is cancelled and is
// intended to run in its own goroutine for the lifetime of the process.
func (s *AnalyticsService) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.notify:
		}

		// Debounce: keep re-arming while changes continue to arrive.
		timer := time.NewTimer(s.debounce)
	drain:
		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-s.notify:
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(s.debounce)
			case <-timer.C:
				break drain
			}
		}

		if err := s.Recompute(ctx); err != nil {
			log.Printf("analytics recompute failed: %v", err)
		}
	}
}

// Invalidate schedules a debounced recompute. Safe to call from any
// goroutine; calls while one is already pending are coalesced.
func (s *AnalyticsService) Invalidate() {
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// SetFilter replaces the active filter predicate and schedules a recompute.
func (s *AnalyticsService) SetFilter(filter model.TransactionFilter) {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.Invalidate()
}

// Filter returns the currently active filter predicate.
func (s *AnalyticsService) Filter() model.TransactionFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// Snapshot returns the latest published snapshot. The zero snapshot
// (revision 0) is returned before the first recompute completes.
func (s *AnalyticsService) Snapshot() model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Recompute loads the raw sets and rebuilds every derived view in one pass,
// publishing them together as a new snapshot. Normally driven by the worker
// loop; exposed for startup warm-up and the internal recompute endpoint.
// Passes are mutually exclusive, so a snapshot's revision order always
// matches the order the underlying data was read.
func (s *AnalyticsService) Recompute(ctx context.Context) error {
	s.recomputeMu.Lock()
	defer s.recomputeMu.Unlock()

	transactions, err := s.transactionRepo.GetAll()
	if err != nil {
		return err
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return err
	}

	categoryNames := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	filter := s.Filter()

	filtered := make([]model.Transaction, 0, len(transactions))
	for i := range transactions {
		if filter.Matches(&transactions[i], categoryNames) {
			filtered = append(filtered, transactions[i])
		}
	}

	// Expense-only flattened subset feeds the per-category, per-merchant and
	// daily views; the month comparison deliberately ignores the filter.
	expenses := flattenByType(filtered, model.TypeExpense)
	rangeStart, rangeEnd := dailyRange(filter, expenses)

	next := model.Snapshot{
		ComputedAt:           time.Now().UTC(),
		Filter:               filter,
		FilteredTransactions: filtered,
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		next.CategoryBreakdown = categoryBreakdown(expenses, categoryNames)
		return nil
	})
	g.Go(func() error {
		next.TopMerchants = merchantBreakdown(expenses)
		return nil
	})
	g.Go(func() error {
		next.DailySpending = dailySpending(expenses, rangeStart, rangeEnd)
		next.AverageDailySpending = averageDailySpending(next.DailySpending)
		return nil
	})
	g.Go(func() error {
		next.MonthComparison = monthComparison(transactions, time.Now().UTC())
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	next.Revision = s.snapshot.Revision + 1
	s.snapshot = next
	s.mu.Unlock()

	return nil
}
