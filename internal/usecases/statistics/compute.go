package statistics

import (
	"sort"
	"time"

	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/utils"
)

const recentClientsLimit = 5

var breedPalette = []string{
	"#8B5CF6", "#EC4899", "#10B981", "#3B82F6", "#F59E0B", "#EF4444",
	"#6366F1", "#14B8A6", "#F97316", "#8B5CF6", "#06B6D4", "#D946EF",
}

// Compute monta o snapshot do painel a partir das tabelas completas.
// Não acessa o banco: now define o mês corrente e o ano dos buckets.
func Compute(
	now time.Time,
	clients []*domain.Client,
	products []*domain.Product,
	services []*domain.Product,
	employees []*domain.Employee,
) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalClients:        len(clients),
		TotalPets:           countPets(clients),
		TotalProducts:       countActive(products),
		TotalServices:       countActive(services),
		TotalEmployees:      countActiveEmployees(employees),
		NewClientsThisMonth: countCreatedBetween(clients, utils.StartOfMonth(now), now),
		MonthlyGrowth:       monthlyGrowth(now, clients),
		PetBreeds:           petBreeds(clients),
		RecentClients:       recentClients(clients),
		UpdatedAt:           now,
	}

	return stats
}

func countPets(clients []*domain.Client) int {
	total := 0
	for _, c := range clients {
		if c.HasPet() {
			total++
		}
	}
	return total
}

func countActive(items []*domain.Product) int {
	total := 0
	for _, p := range items {
		if p.Ativo {
			total++
		}
	}
	return total
}

func countActiveEmployees(employees []*domain.Employee) int {
	total := 0
	for _, e := range employees {
		if e.IsActive() {
			total++
		}
	}
	return total
}

// countCreatedBetween conta clientes com created_at em [start, end], limites inclusos
func countCreatedBetween(clients []*domain.Client, start, end time.Time) int {
	total := 0
	for _, c := range clients {
		if c.CreatedAt == nil {
			continue
		}
		if !c.CreatedAt.Before(start) && !c.CreatedAt.After(end) {
			total++
		}
	}
	return total
}

// monthlyGrowth usa a meia-noite do último dia como limite superior de cada mês
func monthlyGrowth(now time.Time, clients []*domain.Client) []domain.MonthlyGrowth {
	growth := make([]domain.MonthlyGrowth, 0, len(domain.MonthLabels))
	for i, label := range domain.MonthLabels {
		month := time.Month(i + 1)
		start := time.Date(now.Year(), month, 1, 0, 0, 0, 0, now.Location())
		end := utils.LastDayOfMonth(now.Year(), month, now.Location())

		growth = append(growth, domain.MonthlyGrowth{
			Month:   label,
			Clients: countCreatedBetween(clients, start, end),
		})
	}
	return growth
}

func petBreeds(clients []*domain.Client) []domain.ChartSlice {
	breeds := make([]domain.ChartSlice, 0)
	index := make(map[string]int)

	for _, c := range clients {
		if !domain.NonEmpty(c.RacaPet) {
			continue
		}

		breed := *c.RacaPet
		if i, ok := index[breed]; ok {
			breeds[i].Value++
			continue
		}

		index[breed] = len(breeds)
		breeds = append(breeds, domain.ChartSlice{
			Name:  breed,
			Value: 1,
			Color: breedPalette[len(breeds)%len(breedPalette)],
		})
	}

	return breeds
}

func recentClients(clients []*domain.Client) []domain.RecentClient {
	sorted := make([]*domain.Client, len(clients))
	copy(sorted, clients)

	epoch := time.Unix(0, 0)
	createdAt := func(c *domain.Client) time.Time {
		if c.CreatedAt == nil {
			return epoch
		}
		return *c.CreatedAt
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return createdAt(sorted[i]).After(createdAt(sorted[j]))
	})

	if len(sorted) > recentClientsLimit {
		sorted = sorted[:recentClientsLimit]
	}

	recent := make([]domain.RecentClient, 0, len(sorted))
	for _, c := range sorted {
		pets := 0
		if c.HasPet() {
			pets = 1
		}

		lastVisit := "Desconhecido"
		if c.CreatedAt != nil {
			lastVisit = utils.FormatBRDate(*c.CreatedAt)
		}

		recent = append(recent, domain.RecentClient{
			ID:        c.ID,
			Name:      domain.ValueOr(c.Nome, "Sem nome"),
			Phone:     domain.ValueOr(c.Telefone, "Sem telefone"),
			Pets:      pets,
			LastVisit: lastVisit,
		})
	}

	return recent
}
