// AngelaMos | 2026
// spec.go

package query

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

var ErrUnknownField = errors.New("unknown query field")

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxOffset bounds page*limit so the OFFSET never overflows.
	MaxOffset = math.MaxInt32
)

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Schema declares every field a listing accepts. Sorts and Filters map the
// public parameter name to the SQL expression it controls.
type Schema struct {
	Sorts            map[string]string
	Filters          map[string]string
	Search           []string
	DefaultSort      string
	DefaultDirection Direction
	DefaultLimit     int
}

// Spec is a parsed listing request.
type Spec struct {
	Page      int
	Limit     int
	Search    string
	Filters   map[string]string
	SortBy    string
	Direction Direction
}

func (s Spec) Offset() int {
	return (clampPage(s.Page, s.Limit) - 1) * s.Limit
}

// Parse reads page, limit, search, sortBy, sortOrder and the declared filters
// from values. Malformed or out-of-range values fall back to defaults and
// parameters the schema does not declare are not read.
func (sc Schema) Parse(values url.Values) Spec {
	spec := Spec{
		Page:      parsePositive(values.Get("page"), DefaultPage),
		Limit:     parsePositive(values.Get("limit"), sc.defaultLimit()),
		Search:    strings.TrimSpace(values.Get("search")),
		Filters:   make(map[string]string),
		SortBy:    sc.DefaultSort,
		Direction: sc.defaultDirection(),
	}

	if spec.Limit > MaxLimit {
		spec.Limit = MaxLimit
	}
	spec.Page = clampPage(spec.Page, spec.Limit)

	if sortBy := values.Get("sortBy"); sortBy != "" {
		if _, ok := sc.Sorts[sortBy]; ok {
			spec.SortBy = sortBy
		}
	}

	switch strings.ToLower(values.Get("sortOrder")) {
	case "asc":
		spec.Direction = Asc
	case "desc":
		spec.Direction = Desc
	}

	for name := range sc.Filters {
		if v := strings.TrimSpace(values.Get(name)); v != "" {
			spec.Filters[name] = v
		}
	}

	return spec
}

// Clause is the SQL produced from a Spec. Args are numbered from $1 and the
// placeholders in Where refer to them.
type Clause struct {
	Where   string
	Args    []any
	OrderBy string
	Limit   int
	Offset  int
}

// Page appends LIMIT/OFFSET placeholders after Args.
func (c *Clause) Page() (string, []any) {
	n := len(c.Args)
	args := make([]any, 0, n+2)
	args = append(args, c.Args...)
	args = append(args, c.Limit, c.Offset)
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", n+1, n+2), args
}

// Build renders spec against the schema. A sort or filter that the schema does
// not declare is rejected with ErrUnknownField.
func (sc Schema) Build(spec Spec) (*Clause, error) {
	var conditions []string
	var args []any

	if spec.Search != "" && len(sc.Search) > 0 {
		args = append(args, "%"+EscapeLike(spec.Search)+"%")
		placeholder := len(args)
		parts := make([]string, 0, len(sc.Search))
		for _, col := range sc.Search {
			parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, placeholder))
		}
		conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")
	}

	names := make([]string, 0, len(spec.Filters))
	for name := range spec.Filters {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		column, ok := sc.Filters[name]
		if !ok {
			return nil, fmt.Errorf("filter %q: %w", name, ErrUnknownField)
		}
		args = append(args, spec.Filters[name])
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	sortBy := spec.SortBy
	if sortBy == "" {
		sortBy = sc.DefaultSort
	}
	sortExpr, ok := sc.Sorts[sortBy]
	if !ok {
		return nil, fmt.Errorf("sort %q: %w", sortBy, ErrUnknownField)
	}

	direction := spec.Direction
	if direction != Asc && direction != Desc {
		direction = sc.defaultDirection()
	}

	where := "TRUE"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	limit := spec.Limit
	if limit < 1 {
		limit = sc.defaultLimit()
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	page := clampPage(spec.Page, limit)

	return &Clause{
		Where:   where,
		Args:    args,
		OrderBy: fmt.Sprintf("%s %s", sortExpr, direction),
		Limit:   limit,
		Offset:  (page - 1) * limit,
	}, nil
}

func (sc Schema) defaultLimit() int {
	if sc.DefaultLimit > 0 {
		return sc.DefaultLimit
	}
	return DefaultLimit
}

func (sc Schema) defaultDirection() Direction {
	if sc.DefaultDirection == "" {
		return Desc
	}
	return sc.DefaultDirection
}

// clampPage returns page, or DefaultPage when page is below 1 or its offset
// would pass MaxOffset.
func clampPage(page, limit int) int {
	if page < 1 {
		return DefaultPage
	}
	if limit > 0 && page-1 > MaxOffset/limit {
		return DefaultPage
	}
	return page
}

func parsePositive(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
