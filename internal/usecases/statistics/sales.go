package statistics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"github.com/vfg2006/petshop-admin-api/pkg/metrics"
	"github.com/vfg2006/petshop-admin-api/pkg/utils"
)

const (
	salesKind     = "sales"
	topItemsLimit = 5
)

var paymentPalette = []string{"#8B5CF6", "#EC4899", "#10B981", "#3B82F6", "#F59E0B"}

type SalesStatsService interface {
	Refresh(ctx context.Context) (*domain.SalesStats, error)
}

// SalesService calcula as estatísticas de vendas sob demanda a partir da tabela vendas
type SalesService struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

func NewSalesService(saleRepo repository.SaleRepository) *SalesService {
	return &SalesService{
		saleRepo: saleRepo,
		now:      time.Now,
	}
}

func (s *SalesService) Refresh(ctx context.Context) (*domain.SalesStats, error) {
	logger := log.ForComponent(ctx, "stats")
	startedAt := time.Now()

	total, err := s.saleRepo.CountConcluded(ctx)
	if err != nil {
		metrics.StatsRefreshes.WithLabelValues(salesKind, "error").Inc()
		logger.WithError(err).Error("stats: falha ao contar vendas")
		return nil, NewStatsError(ErrFetchSales, apiErrors.ErrDatabaseOperation, err.Error())
	}

	sales, err := s.saleRepo.ListConcluded(ctx)
	if err != nil {
		metrics.StatsRefreshes.WithLabelValues(salesKind, "error").Inc()
		logger.WithError(err).Error("stats: falha ao listar vendas")
		return nil, NewStatsError(ErrFetchSales, apiErrors.ErrDatabaseOperation, err.Error())
	}

	stats := ComputeSales(s.now(), total, sales)

	metrics.StatsRefreshes.WithLabelValues(salesKind, "success").Inc()
	metrics.StatsRefreshDuration.WithLabelValues(salesKind).Observe(time.Since(startedAt).Seconds())

	return &stats, nil
}

// ComputeSales espera as vendas concluídas ordenadas da mais recente para a mais antiga
func ComputeSales(now time.Time, total int64, sales []*domain.Sale) domain.SalesStats {
	monthStart := utils.StartOfMonth(now)

	stats := domain.SalesStats{
		TotalSales:       total,
		TotalRevenue:     decimal.Zero,
		RevenueThisMonth: decimal.Zero,
		TopProducts:      make([]domain.TopItem, 0, topItemsLimit),
		TopServices:      make([]domain.TopItem, 0, topItemsLimit),
		UpdatedAt:        now,
	}

	for _, sale := range sales {
		stats.TotalRevenue = stats.TotalRevenue.Add(sale.ValorTotal)

		if !sale.DataVenda.Before(monthStart) {
			stats.SalesThisMonth++
			stats.RevenueThisMonth = stats.RevenueThisMonth.Add(sale.ValorTotal)
		}

		item := domain.TopItem{Name: sale.ItemNome, Quantity: sale.Quantidade}
		switch sale.Tipo {
		case domain.SaleTypeProduct:
			if len(stats.TopProducts) < topItemsLimit {
				stats.TopProducts = append(stats.TopProducts, item)
			}
		case domain.SaleTypeService:
			if len(stats.TopServices) < topItemsLimit {
				stats.TopServices = append(stats.TopServices, item)
			}
		}
	}

	stats.TotalRevenue = utils.RoundMoney(stats.TotalRevenue)
	stats.RevenueThisMonth = utils.RoundMoney(stats.RevenueThisMonth)
	stats.MonthlySalesData = monthlySales(now, sales)
	stats.PaymentMethods = paymentMethods(sales)

	return stats
}

// monthlySales segue o mesmo limite do crescimento de clientes: meia-noite do último dia
func monthlySales(now time.Time, sales []*domain.Sale) []domain.MonthlySales {
	data := make([]domain.MonthlySales, 0, len(domain.MonthLabels))
	for i, label := range domain.MonthLabels {
		month := time.Month(i + 1)
		start := time.Date(now.Year(), month, 1, 0, 0, 0, 0, now.Location())
		end := utils.LastDayOfMonth(now.Year(), month, now.Location())

		count := 0
		for _, sale := range sales {
			if !sale.DataVenda.Before(start) && !sale.DataVenda.After(end) {
				count++
			}
		}

		data = append(data, domain.MonthlySales{Month: label, Sales: count})
	}
	return data
}

func paymentMethods(sales []*domain.Sale) []domain.ChartSlice {
	methods := make([]domain.ChartSlice, 0)
	index := make(map[string]int)

	for _, sale := range sales {
		if !domain.NonEmpty(sale.MetodoPagamento) {
			continue
		}

		method := *sale.MetodoPagamento
		if i, ok := index[method]; ok {
			methods[i].Value++
			continue
		}

		index[method] = len(methods)
		methods = append(methods, domain.ChartSlice{
			Name:  method,
			Value: 1,
			Color: paymentPalette[len(methods)%len(paymentPalette)],
		})
	}

	return methods
}
