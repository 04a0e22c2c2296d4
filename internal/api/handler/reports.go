package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/internal/usecases/reporting"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/vfg2006/petshop-admin-api/pkg/utils"
)

// parsePeriod lê ?start= e ?end= no formato AAAA-MM-DD
func parsePeriod(r *http.Request) (start, end *time.Time, err error) {
	query := r.URL.Query()

	start, err = utils.ParseDate(query.Get("start"))
	if err != nil {
		return nil, nil, fmt.Errorf("data inicial inválida: %w", err)
	}

	end, err = utils.ParseDate(query.Get("end"))
	if err != nil {
		return nil, nil, fmt.Errorf("data final inválida: %w", err)
	}

	return start, end, nil
}

func GetReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reportType := domain.ReportType(httprouter.ParamsFromContext(r.Context()).ByName("type"))

		start, end, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := service.GenerateReport(r.Context(), reportType, start, end)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// ExportReport devolve o arquivo como anexo; ?format=csv (padrão) ou xlsx
func ExportReport(service reporting.ReportService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entity := domain.ReportType(httprouter.ParamsFromContext(r.Context()).ByName("type"))

		format := r.URL.Query().Get("format")
		if format == "" {
			format = reporting.FormatCSV
		}

		start, end, err := parsePeriod(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		file, err := service.Export(r.Context(), entity, format, start, end)
		if err != nil {
			writeUseCaseError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(file.Content)
	}
}
