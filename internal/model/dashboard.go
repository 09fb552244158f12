// internal/model/dashboard.go
package model

import "time"

// ProductRevenue é a fatia de faturamento de um produto no período.
type ProductRevenue struct {
	ProductID    string `json:"product_id"`
	ProductName  string `json:"product_name"`
	Sales        int64  `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
}

// DailyRevenue é um ponto da série diária de faturamento.
type DailyRevenue struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Sales        int64  `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
}

// FinancialSummary é o relatório financeiro do dashboard do admin, derivado
// exclusivamente das linhas de Purchase com status completed.
type FinancialSummary struct {
	From              time.Time        `json:"from"`
	To                time.Time        `json:"to"`
	GrossRevenueCents int64            `json:"gross_revenue_cents"`
	CompletedSales    int64            `json:"completed_sales"`
	AverageTicket     float64          `json:"average_ticket_cents"`
	ByProduct         []ProductRevenue `json:"by_product"`
	Daily             []DailyRevenue   `json:"daily"`
}
