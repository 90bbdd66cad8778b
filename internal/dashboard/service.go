// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

const topProductLimit = 5

const (
	SectionSummary     = "summary"
	SectionDaily       = "dailySales"
	SectionWeekly      = "weeklySales"
	SectionMonthly     = "monthlySales"
	SectionTopProducts = "topProducts"
)

type Stats struct {
	Summary     Summary
	Daily       []Bucket
	Weekly      []Bucket
	Monthly     []Bucket
	TopProducts []TopProduct
	Degraded    []string
}

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Stats reads every dashboard section concurrently. A section that fails is
// logged and left at its zero value; only an unauthenticated caller fails
// the whole report.
func (s *Service) Stats(ctx context.Context, actor *auth.Identity) (*Stats, error) {
	if err := actor.Require(); err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	ctx, span := core.StartSpan(ctx, "dashboard.stats")
	defer core.EndSpan(span, nil)

	now := s.now()
	stats := &Stats{
		Summary:     Summary{Revenue: decimal.Zero},
		Daily:       []Bucket{},
		Weekly:      []Bucket{},
		Monthly:     []Bucket{},
		TopProducts: []TopProduct{},
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	degrade := func(section string, err error) {
		s.logger.WarnContext(ctx, "dashboard section unavailable",
			"section", section,
			"error", err,
		)
		mu.Lock()
		stats.Degraded = append(stats.Degraded, section)
		mu.Unlock()
	}

	wg.Go(func() {
		summary, err := s.repo.Summary(ctx)
		if err != nil {
			degrade(SectionSummary, err)
			return
		}
		stats.Summary = *summary
	})

	series := []struct {
		section string
		unit    Unit
		dest    *[]Bucket
	}{
		{SectionDaily, Day, &stats.Daily},
		{SectionWeekly, Week, &stats.Weekly},
		{SectionMonthly, Month, &stats.Monthly},
	}
	for _, sr := range series {
		wg.Go(func() {
			points, err := s.repo.DailyTotals(ctx, Window(now, sr.unit))
			if err != nil {
				degrade(sr.section, err)
				return
			}
			*sr.dest = Group(points, sr.unit)
		})
	}

	wg.Go(func() {
		top, err := s.repo.TopProducts(ctx, topProductLimit)
		if err != nil {
			degrade(SectionTopProducts, err)
			return
		}
		stats.TopProducts = top
	})

	wg.Wait()
	sort.Strings(stats.Degraded)

	return stats, nil
}
