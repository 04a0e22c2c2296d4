package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/petshop-admin-api/infrastructure/repository"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/log"
	"github.com/vfg2006/petshop-admin-api/pkg/metrics"
	"github.com/vfg2006/petshop-admin-api/pkg/utils"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// coluna de ordenação de cada entidade no relatório
var reportOrder = map[domain.ReportType]struct {
	column     string
	descending bool
}{
	domain.ReportClients:   {column: "created_at", descending: true},
	domain.ReportSales:     {column: "data_venda", descending: true},
	domain.ReportProducts:  {column: "nome"},
	domain.ReportServices:  {column: "nome"},
	domain.ReportEmployees: {column: "nome"},
}

type ReportService interface {
	GenerateReport(ctx context.Context, reportType domain.ReportType, startDate, endDate *time.Time) (*domain.Report, error)
	Export(ctx context.Context, entity domain.ReportType, format string, startDate, endDate *time.Time) (*domain.ExportFile, error)
}

type Service struct {
	tableRepo repository.TableRepository
	now       func() time.Time
}

func NewService(tableRepo repository.TableRepository) ReportService {
	return &Service{
		tableRepo: tableRepo,
		now:       time.Now,
	}
}

// GenerateReport busca as entidades do tipo pedido. O período filtra apenas vendas
// e a data final vale até o fim do dia.
func (s *Service) GenerateReport(ctx context.Context, reportType domain.ReportType, startDate, endDate *time.Time) (*domain.Report, error) {
	entities := reportType.Entities()
	if entities == nil {
		return nil, NewReportError(ErrInvalidReportType, apiErrors.ErrInvalidReportType, string(reportType))
	}

	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		return nil, NewReportError(ErrInvalidDateRange, apiErrors.ErrInvalidFormat, "")
	}

	logger := log.ForComponent(ctx, "reports").WithField("entity", string(reportType))

	report := &domain.Report{
		Type:        reportType,
		GeneratedAt: s.now(),
		StartDate:   startDate,
		EndDate:     endDate,
		Sections:    make([]domain.ReportSection, 0, len(entities)),
	}

	for _, entity := range entities {
		records, err := s.tableRepo.Select(ctx, entity.Table(), buildQuery(entity, startDate, endDate))
		if err != nil {
			logger.WithError(err).Errorf("reports: falha ao buscar %s", entity)
			return nil, NewReportErrorWithEntity(ErrFetchReportData, apiErrors.ErrDatabaseOperation, string(entity), err.Error())
		}

		report.Sections = append(report.Sections, domain.ReportSection{
			Entity:  entity,
			Records: records,
		})
	}

	logger.Infof("reports: relatório gerado com %d seções", len(report.Sections))

	return report, nil
}

func buildQuery(entity domain.ReportType, startDate, endDate *time.Time) domain.Query {
	order := reportOrder[entity]
	query := domain.Query{
		OrderBy:    order.column,
		Descending: order.descending,
	}

	if entity != domain.ReportSales {
		return query
	}

	if startDate != nil {
		query.Filters = append(query.Filters, domain.Gte("data_venda", *startDate))
	}
	if endDate != nil {
		query.Filters = append(query.Filters, domain.Lte("data_venda", utils.EndOfDay(*endDate)))
	}

	return query
}

// Export gera o arquivo de uma única entidade no formato pedido
func (s *Service) Export(ctx context.Context, entity domain.ReportType, format string, startDate, endDate *time.Time) (*domain.ExportFile, error) {
	if entity == domain.ReportGeneral || entity.Entities() == nil {
		return nil, NewReportError(ErrInvalidReportType, apiErrors.ErrInvalidReportType, string(entity))
	}

	if format != FormatCSV && format != FormatXLSX {
		return nil, NewReportError(ErrUnsupportedExportFormat, apiErrors.ErrUnsupportedExportFormat, format)
	}

	report, err := s.GenerateReport(ctx, entity, startDate, endDate)
	if err != nil {
		return nil, err
	}

	filename := ExportFileName(string(entity), s.now())
	records := report.Section(entity)

	var file *domain.ExportFile
	if format == FormatXLSX {
		file, err = ExportXLSX(records, filename)
	} else {
		file, err = ExportCSV(records, filename)
	}
	if err != nil {
		return nil, err
	}

	metrics.ReportExports.WithLabelValues(string(entity), format).Inc()

	return file, nil
}
