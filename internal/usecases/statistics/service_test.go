package statistics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/petshop-admin-api/infrastructure/repository/mocks"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockClientRepository, *mocks.MockCatalogRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	clientRepo := mocks.NewMockClientRepository(ctrl)
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)

	service := NewService(clientRepo, catalogRepo)
	service.now = func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) }

	return service, clientRepo, catalogRepo
}

func expectCatalog(catalogRepo *mocks.MockCatalogRepository) {
	catalogRepo.EXPECT().ListProducts(gomock.Any()).Return([]*domain.Product{{ID: "p1", Ativo: true}}, nil)
	catalogRepo.EXPECT().ListServices(gomock.Any()).Return([]*domain.Product{}, nil)
	catalogRepo.EXPECT().ListEmployees(gomock.Any()).Return([]*domain.Employee{}, nil)
}

func TestService_Refresh(t *testing.T) {
	t.Run("Sucesso - publica o snapshot", func(t *testing.T) {
		service, clientRepo, catalogRepo := newTestService(t)

		clientRepo.EXPECT().ListClients(gomock.Any()).Return([]*domain.Client{
			newClient(1, "Ana", "Thor", "Labrador", nil),
		}, nil)
		expectCatalog(catalogRepo)

		_, ok := service.Snapshot()
		assert.False(t, ok)

		stats, err := service.Refresh(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalClients)
		assert.Equal(t, 1, stats.TotalProducts)

		snapshot, ok := service.Snapshot()
		require.True(t, ok)
		assert.Equal(t, 1, snapshot.TotalPets)
	})

	t.Run("Erro ao buscar clientes mantém o snapshot anterior", func(t *testing.T) {
		service, clientRepo, catalogRepo := newTestService(t)

		clientRepo.EXPECT().ListClients(gomock.Any()).Return([]*domain.Client{
			newClient(1, "Ana", "", "", nil),
			newClient(2, "Bia", "", "", nil),
		}, nil)
		expectCatalog(catalogRepo)

		_, err := service.Refresh(context.Background())
		require.NoError(t, err)

		clientRepo.EXPECT().ListClients(gomock.Any()).Return(nil, errors.New("timeout"))
		expectCatalog(catalogRepo)

		stats, err := service.Refresh(context.Background())
		assert.Nil(t, stats)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetchClients)

		var statsErr *StatsError
		require.ErrorAs(t, err, &statsErr)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, statsErr.Code)

		snapshot, ok := service.Snapshot()
		require.True(t, ok)
		assert.Equal(t, 2, snapshot.TotalClients)
	})

	t.Run("Erro no catálogo aborta o recálculo", func(t *testing.T) {
		service, clientRepo, catalogRepo := newTestService(t)

		clientRepo.EXPECT().ListClients(gomock.Any()).Return([]*domain.Client{}, nil)
		catalogRepo.EXPECT().ListProducts(gomock.Any()).Return([]*domain.Product{}, nil)
		catalogRepo.EXPECT().ListServices(gomock.Any()).Return(nil, errors.New("relation servicos does not exist"))
		catalogRepo.EXPECT().ListEmployees(gomock.Any()).Return([]*domain.Employee{}, nil)

		_, err := service.Refresh(context.Background())
		assert.ErrorIs(t, err, ErrFetchCatalog)

		_, ok := service.Snapshot()
		assert.False(t, ok)
	})
}

func TestService_PublishKeepsNewestGeneration(t *testing.T) {
	service, _, _ := newTestService(t)

	older := service.nextGeneration()
	newer := service.nextGeneration()

	assert.True(t, service.publish(newer, domain.DashboardStats{TotalClients: 20}))
	assert.False(t, service.publish(older, domain.DashboardStats{TotalClients: 10}))

	snapshot, ok := service.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 20, snapshot.TotalClients)
}

func TestService_Subscribe(t *testing.T) {
	service, _, _ := newTestService(t)

	updates, unsubscribe := service.Subscribe()

	service.publish(service.nextGeneration(), domain.DashboardStats{TotalClients: 1})
	service.publish(service.nextGeneration(), domain.DashboardStats{TotalClients: 2})

	// só o snapshot mais novo fica pendente
	select {
	case stats := <-updates:
		assert.Equal(t, 2, stats.TotalClients)
	case <-time.After(time.Second):
		t.Fatal("snapshot não entregue")
	}

	unsubscribe()
	unsubscribe()

	_, open := <-updates
	assert.False(t, open)

	assert.True(t, service.publish(service.nextGeneration(), domain.DashboardStats{TotalClients: 3}))
}
