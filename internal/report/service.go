package report

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aQ-codes/expense-tracker-backend/internal/expense"
	"github.com/aQ-codes/expense-tracker-backend/internal/format"
)

const recentCount = 5

// Service assembles reports from the grouping queries and the expense
// repository.
type Service struct {
	groups   Grouper
	expenses expense.Repository
	log      *slog.Logger
}

func NewService(groups Grouper, expenses expense.Repository, log *slog.Logger) *Service {
	return &Service{groups: groups, expenses: expenses, log: log}
}

// MonthlyBreakdown runs the four sub-queries of a monthly report
// concurrently and joins the results. The grouping queries are allowed to
// fail or come back empty; in that case the groupings are recomputed from
// the month's full expense set so the report still reflects the data the
// summary was built from.
func (s *Service) MonthlyBreakdown(ctx context.Context, userID string, month, year, page, limit int) (*Breakdown, int, error) {
	from, to := format.MonthRange(year, month)

	var (
		totalSpent float64
		count      int
		items      []expense.Expense
		total      int
		dist       []CategorySlice
		daily      []DayTotal
		distErr    error
		dailyErr   error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totalSpent, count, err = s.groups.Totals(gctx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		items, total, err = s.expenses.List(gctx, userID, expense.Filter{From: from, To: to}, page, limit)
		return err
	})
	g.Go(func() error {
		dist, distErr = s.groups.GroupByCategory(gctx, userID, from, to)
		return nil
	})
	g.Go(func() error {
		daily, dailyErr = s.groups.GroupByDay(gctx, userID, from, to)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	needDist := distErr != nil || (len(dist) == 0 && count > 0)
	needDaily := dailyErr != nil || (len(daily) == 0 && count > 0)
	if needDist || needDaily {
		all, err := s.expenses.ListRange(ctx, userID, from, to)
		if err != nil {
			return nil, 0, err
		}
		if needDist {
			if distErr != nil {
				s.log.Warn("category grouping failed, recomputed from rows", "error", distErr)
			}
			dist = DistributionOf(all)
		}
		if needDaily {
			if dailyErr != nil {
				s.log.Warn("daily grouping failed, recomputed from rows", "error", dailyErr)
			}
			daily = DailyOf(all)
		}
	}

	return &Breakdown{
		Month:        month,
		Year:         year,
		Summary:      monthSummary(totalSpent, count, year, month),
		Expenses:     expense.FormatList(items),
		Distribution: dist,
		Daily:        daily,
	}, total, nil
}

// MonthExpenses returns every expense of the month, newest first.
func (s *Service) MonthExpenses(ctx context.Context, userID string, month, year int) ([]expense.Expense, error) {
	from, to := format.MonthRange(year, month)
	all, err := s.expenses.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

// MonthSummary computes the summary and distribution for one month,
// applying the same fallback as MonthlyBreakdown.
func (s *Service) MonthSummary(ctx context.Context, userID string, month, year int) (Summary, []CategorySlice, error) {
	from, to := format.MonthRange(year, month)

	totalSpent, count, err := s.groups.Totals(ctx, userID, from, to)
	if err != nil {
		return Summary{}, nil, err
	}

	dist, distErr := s.groups.GroupByCategory(ctx, userID, from, to)
	if distErr != nil || (len(dist) == 0 && count > 0) {
		all, err := s.expenses.ListRange(ctx, userID, from, to)
		if err != nil {
			return Summary{}, nil, err
		}
		if distErr != nil {
			s.log.Warn("category grouping failed, recomputed from rows", "error", distErr)
		}
		dist = DistributionOf(all)
	}
	return monthSummary(totalSpent, count, year, month), dist, nil
}

// Dashboard gathers the all-time totals, the running month's summary and
// the most recent expenses concurrently.
func (s *Service) Dashboard(ctx context.Context, userID string, now time.Time) (*Dashboard, error) {
	year, month := now.UTC().Year(), int(now.UTC().Month())
	from, to := format.MonthRange(year, month)

	var (
		stats  expense.Stats
		spent  float64
		count  int
		recent []expense.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.expenses.Stats(gctx, userID, expense.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		spent, count, err = s.groups.Totals(gctx, userID, from, to)
		return err
	})
	g.Go(func() error {
		var err error
		recent, _, err = s.expenses.List(gctx, userID, expense.Filter{}, 1, recentCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		TotalSpent:     stats.TotalSpent,
		TotalExpenses:  stats.TotalExpenses,
		CurrentMonth:   monthSummary(spent, count, year, month),
		RecentExpenses: expense.FormatList(recent),
	}, nil
}

func monthSummary(totalSpent float64, count, year, month int) Summary {
	return Summary{
		TotalSpent:    totalSpent,
		TotalExpenses: count,
		AveragePerDay: totalSpent / float64(format.DaysInMonth(year, month)),
	}
}

// DistributionOf buckets expenses by category name, largest total first,
// ties broken alphabetically.
func DistributionOf(all []expense.Expense) []CategorySlice {
	totals := make(map[string]float64)
	for i := range all {
		totals[all[i].CategoryName] += all[i].Amount
	}

	out := make([]CategorySlice, 0, len(totals))
	for name, amount := range totals {
		out = append(out, CategorySlice{Category: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// DailyOf buckets expenses by ISO day, oldest first.
func DailyOf(all []expense.Expense) []DayTotal {
	totals := make(map[string]float64)
	for i := range all {
		totals[format.InputDate(all[i].SpentOn)] += all[i].Amount
	}

	out := make([]DayTotal, 0, len(totals))
	for day, amount := range totals {
		out = append(out, DayTotal{Date: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
