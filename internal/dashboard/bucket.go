// AngelaMos | 2026
// bucket.go

package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type Unit int

const (
	Day Unit = iota
	Week
	Month
)

// SalePoint is a summed total at an instant. The repository hands back one
// point per UTC day.
type SalePoint struct {
	At    time.Time       `db:"day"`
	Total decimal.Decimal `db:"total"`
}

type Bucket struct {
	Start time.Time
	Total decimal.Decimal
}

// Truncate returns the UTC start of the day, Monday-based week or month
// containing t.
func Truncate(t time.Time, unit Unit) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	switch unit {
	case Week:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case Month:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Group sums points per unit and returns the buckets in ascending order.
// Empty buckets are not emitted.
func Group(points []SalePoint, unit Unit) []Bucket {
	sums := make(map[time.Time]decimal.Decimal)
	for _, p := range points {
		start := Truncate(p.At, unit)
		sums[start] = sums[start].Add(p.Total)
	}

	buckets := make([]Bucket, 0, len(sums))
	for start, total := range sums {
		buckets = append(buckets, Bucket{Start: start, Total: total})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Start.Before(buckets[j].Start)
	})

	return buckets
}

// Window is the first instant included in a trailing series ending at now.
func Window(now time.Time, unit Unit) time.Time {
	switch unit {
	case Week:
		return Truncate(now, Day).AddDate(0, 0, -27)
	case Month:
		return Truncate(now, Month).AddDate(0, -5, 0)
	default:
		return Truncate(now, Day).AddDate(0, 0, -6)
	}
}
