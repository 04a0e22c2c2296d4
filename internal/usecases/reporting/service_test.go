package reporting

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

func newTestService(t *testing.T) (*Service, *mocks.MockTableRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tableRepo := mocks.NewMockTableRepository(ctrl)
	service := &Service{
		tableRepo: tableRepo,
		now:       func() time.Time { return time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC) },
	}

	return service, tableRepo
}

func TestService_GenerateReport(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		reportType domain.ReportType
		start, end *time.Time
		setup      func(repo *mocks.MockTableRepository)
		validate   func(t *testing.T, report *domain.Report, err error)
	}{
		{
			name:       "Relatório geral busca as cinco entidades em ordem",
			reportType: domain.ReportGeneral,
			setup: func(repo *mocks.MockTableRepository) {
				gomock.InOrder(
					repo.EXPECT().Select(gomock.Any(), domain.TableClients, domain.Query{OrderBy: "created_at", Descending: true}).
						Return([]domain.Record{{{Key: "id", Value: int64(1)}}}, nil),
					repo.EXPECT().Select(gomock.Any(), domain.TableSales, domain.Query{OrderBy: "data_venda", Descending: true}).
						Return([]domain.Record{}, nil),
					repo.EXPECT().Select(gomock.Any(), domain.TableProducts, domain.Query{OrderBy: "nome"}).
						Return([]domain.Record{}, nil),
					repo.EXPECT().Select(gomock.Any(), domain.TableServices, domain.Query{OrderBy: "nome"}).
						Return([]domain.Record{}, nil),
					repo.EXPECT().Select(gomock.Any(), domain.TableEmployees, domain.Query{OrderBy: "nome"}).
						Return([]domain.Record{}, nil),
				)
			},
			validate: func(t *testing.T, report *domain.Report, err error) {
				require.NoError(t, err)
				require.Len(t, report.Sections, 5)
				assert.Len(t, report.Section(domain.ReportClients), 1)
				assert.Equal(t, domain.ReportEmployees, report.Sections[4].Entity)
			},
		},
		{
			name:       "Período filtra vendas até o fim do dia final",
			reportType: domain.ReportSales,
			start:      &start,
			end:        &end,
			setup: func(repo *mocks.MockTableRepository) {
				repo.EXPECT().Select(gomock.Any(), domain.TableSales, domain.Query{
					Filters: []domain.Filter{
						domain.Gte("data_venda", start),
						domain.Lte("data_venda", time.Date(2024, 6, 10, 23, 59, 59, 999999999, time.UTC)),
					},
					OrderBy:    "data_venda",
					Descending: true,
				}).Return([]domain.Record{}, nil)
			},
			validate: func(t *testing.T, report *domain.Report, err error) {
				require.NoError(t, err)
				assert.Equal(t, &start, report.StartDate)
			},
		},
		{
			name:       "Período não se aplica a outras entidades",
			reportType: domain.ReportProducts,
			start:      &start,
			end:        &end,
			setup: func(repo *mocks.MockTableRepository) {
				repo.EXPECT().Select(gomock.Any(), domain.TableProducts, domain.Query{OrderBy: "nome"}).
					Return([]domain.Record{}, nil)
			},
			validate: func(t *testing.T, report *domain.Report, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:       "Tipo desconhecido",
			reportType: "pets",
			setup:      func(repo *mocks.MockTableRepository) {},
			validate: func(t *testing.T, report *domain.Report, err error) {
				assert.ErrorIs(t, err, ErrInvalidReportType)
				var reportErr *ReportError
				require.ErrorAs(t, err, &reportErr)
				assert.Equal(t, apiErrors.ErrInvalidReportType, reportErr.Code)
			},
		},
		{
			name:       "Período invertido",
			reportType: domain.ReportSales,
			start:      &end,
			end:        &start,
			setup:      func(repo *mocks.MockTableRepository) {},
			validate: func(t *testing.T, report *domain.Report, err error) {
				assert.ErrorIs(t, err, ErrInvalidDateRange)
			},
		},
		{
			name:       "Falha em uma entidade aborta o relatório",
			reportType: domain.ReportGeneral,
			setup: func(repo *mocks.MockTableRepository) {
				repo.EXPECT().Select(gomock.Any(), domain.TableClients, gomock.Any()).Return([]domain.Record{}, nil)
				repo.EXPECT().Select(gomock.Any(), domain.TableSales, gomock.Any()).Return(nil, errors.New("timeout"))
			},
			validate: func(t *testing.T, report *domain.Report, err error) {
				assert.Nil(t, report)
				var reportErr *ReportError
				require.ErrorAs(t, err, &reportErr)
				assert.Equal(t, string(domain.ReportSales), reportErr.Entity)
				assert.ErrorIs(t, err, ErrFetchReportData)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo := newTestService(t)
			tt.setup(repo)

			report, err := service.GenerateReport(context.Background(), tt.reportType, tt.start, tt.end)
			tt.validate(t, report, err)
		})
	}
}

func TestService_Export(t *testing.T) {
	t.Run("Exporta CSV da entidade", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().Select(gomock.Any(), domain.TableEmployees, gomock.Any()).
			Return([]domain.Record{{{Key: "nome", Value: "Carlos"}}}, nil)

		file, err := service.Export(context.Background(), domain.ReportEmployees, FormatCSV, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, "funcionarios_2024-06-15.csv", file.Name)
		assert.Equal(t, "nome\nCarlos\n", string(file.Content))
	})

	t.Run("Entidade vazia retorna aviso sem arquivo", func(t *testing.T) {
		service, repo := newTestService(t)
		repo.EXPECT().Select(gomock.Any(), domain.TableServices, gomock.Any()).Return([]domain.Record{}, nil)

		file, err := service.Export(context.Background(), domain.ReportServices, FormatXLSX, nil, nil)

		assert.Nil(t, file)
		assert.ErrorIs(t, err, ErrNoDataToExport)
	})

	t.Run("Formato não suportado", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Export(context.Background(), domain.ReportServices, "pdf", nil, nil)

		assert.ErrorIs(t, err, ErrUnsupportedExportFormat)
	})

	t.Run("Relatório geral não é exportável como arquivo único", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.Export(context.Background(), domain.ReportGeneral, FormatCSV, nil, nil)

		assert.ErrorIs(t, err, ErrInvalidReportType)
	})
}
