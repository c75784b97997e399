package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/prasadvm/storekart/internal/repo"
)

type AnalyticsService struct {
	Repo *repo.GormRepo
}

type ProductSales struct {
	Name    string  `json:"name"`
	Sold    uint    `json:"sold"`
	Revenue float64 `json:"revenue"`
}

type SellerAnalytics struct {
	TotalSales           float64                 `json:"totalSales"`
	TotalOrders          int                     `json:"totalOrders"`
	TotalProductsSold    uint                    `json:"totalProductsSold"`
	TotalProducts        int                     `json:"totalProducts"`
	MonthlySales         map[string]float64      `json:"monthlySales"`
	ProductSales         map[string]ProductSales `json:"productSales"`
	OrderStatusBreakdown map[string]int          `json:"orderStatusBreakdown"`
}

// Analytics folds the seller's full order history into revenue, unit and
// status accumulators. No pagination and no time-range filter: the fold
// always covers everything the seller has ever sold.
func (s *AnalyticsService) Analytics(ctx context.Context, sellerID uuid.UUID) (*SellerAnalytics, error) {
	productIDs, err := s.Repo.SellerProductIDs(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	orders, err := s.Repo.ListOrdersWithProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	owned := make(map[uuid.UUID]bool, len(productIDs))
	for _, id := range productIDs {
		owned[id] = true
	}

	out := &SellerAnalytics{
		TotalProducts:        len(productIDs),
		MonthlySales:         map[string]float64{},
		ProductSales:         map[string]ProductSales{},
		OrderStatusBreakdown: map[string]int{},
	}

	for _, order := range orders {
		var monthTotal float64
		matched := false

		for _, item := range order.Items {
			if !owned[item.ProductID] {
				continue
			}
			matched = true
			itemTotal := item.Price * float64(item.Quantity)

			out.TotalSales += itemTotal
			out.TotalProductsSold += item.Quantity
			monthTotal += itemTotal

			key := item.ProductID.String()
			ps := out.ProductSales[key]
			ps.Name = item.Name
			ps.Sold += item.Quantity
			ps.Revenue += itemTotal
			out.ProductSales[key] = ps
		}

		if !matched {
			continue
		}

		// One per qualifying order, not per line.
		out.TotalOrders++
		out.OrderStatusBreakdown[order.Status]++

		monthKey := order.OrderDate.Format("2006-01")
		out.MonthlySales[monthKey] += monthTotal
	}

	return out, nil
}
