// internal/service/dashboard_service.go
package service

import (
	"context"
	"sort"
	"time"

	"proposito24h/internal/model"
	"proposito24h/internal/repository"

	"gorm.io/gorm"
)

// DashboardService produz o relatório financeiro do admin. Tudo é derivado das
// linhas de Purchase completadas no período; nenhum agregado é persistido.
type DashboardService interface {
	GetFinancialSummary(ctx context.Context, from, to time.Time) (*model.FinancialSummary, error)
}

type dashboardService struct {
	db           *gorm.DB
	purchaseRepo repository.PurchaseRepository
}

func NewDashboardService(db *gorm.DB, purchaseRepo repository.PurchaseRepository) DashboardService {
	return &dashboardService{db: db, purchaseRepo: purchaseRepo}
}

func (s *dashboardService) GetFinancialSummary(ctx context.Context, from, to time.Time) (*model.FinancialSummary, error) {
	purchases, err := s.purchaseRepo.FindCompletedBetween(ctx, s.db, from, to)
	if err != nil {
		return nil, model.ErrInternalServer
	}

	summary := &model.FinancialSummary{From: from, To: to}

	byProduct := make(map[string]*model.ProductRevenue)
	byDay := make(map[string]*model.DailyRevenue)

	for _, p := range purchases {
		summary.GrossRevenueCents += p.AmountCents
		summary.CompletedSales++

		productID := p.ProductID.String()
		pr, ok := byProduct[productID]
		if !ok {
			name := ""
			if p.Product != nil {
				name = p.Product.Name
			}
			pr = &model.ProductRevenue{ProductID: productID, ProductName: name}
			byProduct[productID] = pr
		}
		pr.Sales++
		pr.RevenueCents += p.AmountCents

		day := p.CreatedAt.Format("2006-01-02")
		dr, ok := byDay[day]
		if !ok {
			dr = &model.DailyRevenue{Date: day}
			byDay[day] = dr
		}
		dr.Sales++
		dr.RevenueCents += p.AmountCents
	}

	if summary.CompletedSales > 0 {
		summary.AverageTicket = float64(summary.GrossRevenueCents) / float64(summary.CompletedSales)
	}

	summary.ByProduct = make([]model.ProductRevenue, 0, len(byProduct))
	for _, pr := range byProduct {
		summary.ByProduct = append(summary.ByProduct, *pr)
	}
	// produto que mais fatura primeiro
	sort.Slice(summary.ByProduct, func(i, j int) bool {
		return summary.ByProduct[i].RevenueCents > summary.ByProduct[j].RevenueCents
	})

	summary.Daily = make([]model.DailyRevenue, 0, len(byDay))
	for _, dr := range byDay {
		summary.Daily = append(summary.Daily, *dr)
	}
	sort.Slice(summary.Daily, func(i, j int) bool {
		return summary.Daily[i].Date < summary.Daily[j].Date
	})

	return summary, nil
}
