// AngelaMos | 2026
// dto.go

package dashboard

import (
	"github.com/shopspring/decimal"
)

type DailySale struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type WeeklySale struct {
	Week  string          `json:"week"`
	Total decimal.Decimal `json:"total"`
}

type MonthlySale struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

type TopProductResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`
}

// StatsResponse is the dashboard payload. Degraded names the sections that
// could not be read and were replaced by empty values.
type StatsResponse struct {
	TotalRevenue      decimal.Decimal      `json:"totalRevenue"`
	TotalTransactions int                  `json:"totalTransactions"`
	TotalProducts     int                  `json:"totalProducts"`
	DailySales        []DailySale          `json:"dailySales"`
	WeeklySales       []WeeklySale         `json:"weeklySales"`
	MonthlySales      []MonthlySale        `json:"monthlySales"`
	TopProducts       []TopProductResponse `json:"topProducts"`
	Degraded          []string             `json:"degraded,omitempty"`
}

func ToStatsResponse(s *Stats) StatsResponse {
	resp := StatsResponse{
		TotalRevenue:      s.Summary.Revenue,
		TotalTransactions: s.Summary.Transactions,
		TotalProducts:     s.Summary.Products,
		DailySales:        make([]DailySale, 0, len(s.Daily)),
		WeeklySales:       make([]WeeklySale, 0, len(s.Weekly)),
		MonthlySales:      make([]MonthlySale, 0, len(s.Monthly)),
		TopProducts:       make([]TopProductResponse, 0, len(s.TopProducts)),
		Degraded:          s.Degraded,
	}

	for _, b := range s.Daily {
		resp.DailySales = append(resp.DailySales, DailySale{
			Date:  b.Start.Format("2006-01-02"),
			Total: b.Total,
		})
	}
	for _, b := range s.Weekly {
		resp.WeeklySales = append(resp.WeeklySales, WeeklySale{
			Week:  b.Start.Format("2006-01-02"),
			Total: b.Total,
		})
	}
	for _, b := range s.Monthly {
		resp.MonthlySales = append(resp.MonthlySales, MonthlySale{
			Month: b.Start.Format("January 2006"),
			Total: b.Total,
		})
	}
	for _, p := range s.TopProducts {
		item := TopProductResponse{
			Quantity: p.Quantity,
			Total:    p.Total,
		}
		if p.ID != nil {
			item.ID = *p.ID
		}
		if p.Name != nil {
			item.Name = *p.Name
		}
		resp.TopProducts = append(resp.TopProducts, item)
	}

	return resp
}
