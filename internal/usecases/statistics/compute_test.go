package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
)

func stringPtr(s string) *string {
	return &s
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newClient(id int64, name, pet, breed string, createdAt *time.Time) *domain.Client {
	c := &domain.Client{ID: id, CreatedAt: createdAt}
	if name != "" {
		c.Nome = stringPtr(name)
	}
	if pet != "" {
		c.NomePet = stringPtr(pet)
	}
	if breed != "" {
		c.RacaPet = stringPtr(breed)
	}
	return c
}

func TestCompute_EmptyTables(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	stats := Compute(now, nil, nil, nil, nil)

	assert.Zero(t, stats.TotalClients)
	assert.Zero(t, stats.TotalPets)
	assert.Zero(t, stats.NewClientsThisMonth)
	assert.Empty(t, stats.PetBreeds)
	assert.Empty(t, stats.RecentClients)
	require.Len(t, stats.MonthlyGrowth, 12)
	for _, m := range stats.MonthlyGrowth {
		assert.Zero(t, m.Clients)
	}
}

func TestCompute_Totals(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	clients := []*domain.Client{
		newClient(1, "Ana", "Thor", "Labrador", timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))),
		newClient(2, "Bruno", "  ", "", timePtr(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC))),
		newClient(3, "Carla", "Mel", "Poodle", timePtr(time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC))),
		newClient(4, "Davi", "Bob", "Labrador", nil),
	}
	products := []*domain.Product{{ID: "p1", Ativo: true}, {ID: "p2", Ativo: false}}
	services := []*domain.Product{{ID: "s1", Ativo: true}, {ID: "s2", Ativo: true}}
	employees := []*domain.Employee{
		{ID: "f1", Status: domain.EmployeeStatusActive},
		{ID: "f2", Status: domain.EmployeeStatusInactive},
	}

	stats := Compute(now, clients, products, services, employees)

	assert.Equal(t, 4, stats.TotalClients)
	assert.Equal(t, 3, stats.TotalPets)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalServices)
	assert.Equal(t, 1, stats.TotalEmployees)
	// limites inclusos: dia 1 00:00 e o próprio instante now
	assert.Equal(t, 2, stats.NewClientsThisMonth)
	assert.LessOrEqual(t, stats.NewClientsThisMonth, stats.TotalClients)

	assert.Equal(t, []domain.ChartSlice{
		{Name: "Labrador", Value: 2, Color: "#8B5CF6"},
		{Name: "Poodle", Value: 1, Color: "#EC4899"},
	}, stats.PetBreeds)
}

func TestCompute_MonthlyGrowth(t *testing.T) {
	now := time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC)

	clients := []*domain.Client{
		newClient(1, "", "", "", timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
		newClient(2, "", "", "", timePtr(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))),
		// depois da meia-noite do último dia fica fora do bucket
		newClient(3, "", "", "", timePtr(time.Date(2024, 1, 31, 15, 0, 0, 0, time.UTC))),
		newClient(4, "", "", "", timePtr(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))),
		newClient(5, "", "", "", timePtr(time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC))),
	}

	stats := Compute(now, clients, nil, nil, nil)

	require.Len(t, stats.MonthlyGrowth, 12)
	assert.Equal(t, domain.MonthlyGrowth{Month: "Jan", Clients: 2}, stats.MonthlyGrowth[0])
	assert.Equal(t, domain.MonthlyGrowth{Month: "Fev", Clients: 1}, stats.MonthlyGrowth[1])
	assert.Equal(t, domain.MonthlyGrowth{Month: "Mar", Clients: 0}, stats.MonthlyGrowth[2])
	assert.Equal(t, "Dez", stats.MonthlyGrowth[11].Month)
}

func TestCompute_RecentClients(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	sameDay := timePtr(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		clients  []*domain.Client
		validate func(t *testing.T, recent []domain.RecentClient)
	}{
		{
			name: "Menos de cinco clientes retorna todos",
			clients: []*domain.Client{
				newClient(1, "Ana", "Thor", "", timePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))),
				newClient(2, "", "", "", nil),
			},
			validate: func(t *testing.T, recent []domain.RecentClient) {
				require.Len(t, recent, 2)
				assert.Equal(t, domain.RecentClient{ID: 1, Name: "Ana", Phone: "Sem telefone", Pets: 1, LastVisit: "01/06/2024"}, recent[0])
				assert.Equal(t, domain.RecentClient{ID: 2, Name: "Sem nome", Phone: "Sem telefone", Pets: 0, LastVisit: "Desconhecido"}, recent[1])
			},
		},
		{
			name: "Limita a cinco em ordem decrescente com empates estáveis",
			clients: []*domain.Client{
				newClient(1, "A", "", "", timePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))),
				newClient(2, "B", "", "", sameDay),
				newClient(3, "C", "", "", timePtr(time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC))),
				newClient(4, "D", "", "", sameDay),
				newClient(5, "E", "", "", nil),
				newClient(6, "F", "", "", timePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))),
				newClient(7, "G", "", "", timePtr(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))),
			},
			validate: func(t *testing.T, recent []domain.RecentClient) {
				require.Len(t, recent, 5)
				ids := make([]int64, 0, len(recent))
				for _, r := range recent {
					ids = append(ids, r.ID)
				}
				assert.Equal(t, []int64{3, 2, 4, 6, 7}, ids)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := Compute(now, tt.clients, nil, nil, nil)
			tt.validate(t, stats.RecentClients)
		})
	}
}

func TestCompute_BreedPaletteWraps(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	clients := make([]*domain.Client, 0, 13)
	for i := 0; i < 13; i++ {
		clients = append(clients, newClient(int64(i), "", "", string(rune('A'+i)), nil))
	}

	stats := Compute(now, clients, nil, nil, nil)

	require.Len(t, stats.PetBreeds, 13)
	assert.Equal(t, "#D946EF", stats.PetBreeds[11].Color)
	assert.Equal(t, "#8B5CF6", stats.PetBreeds[12].Color)
}
