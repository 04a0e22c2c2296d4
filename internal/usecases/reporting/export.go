package reporting

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/petshop-admin-api/internal/domain"
	"github.com/vfg2006/petshop-admin-api/pkg/apiErrors"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetName = "Dados"
)

// ExportFileName monta o nome base <entidade>_<AAAA-MM-DD>
func ExportFileName(entity string, now time.Time) string {
	return fmt.Sprintf("%s_%s", entity, now.Format(time.DateOnly))
}

// ExportCSV usa as chaves da primeira linha como cabeçalho. Colunas ausentes nas
// demais linhas ficam vazias.
func ExportCSV(records []domain.Record, filename string) (*domain.ExportFile, error) {
	if len(records) == 0 {
		return nil, NewReportError(ErrNoDataToExport, apiErrors.ErrNoDataToExport, "")
	}

	header := records[0].Keys()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(header); err != nil {
		return nil, NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
	}

	for _, record := range records {
		row := make([]string, len(header))
		for i, key := range header {
			value, _ := record.Get(key)
			row[i] = FormatCell(value)
		}

		if err := writer.Write(row); err != nil {
			return nil, NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
	}

	return &domain.ExportFile{
		Name:        filename + ".csv",
		ContentType: ContentTypeCSV,
		Content:     buf.Bytes(),
	}, nil
}

func ExportXLSX(records []domain.Record, filename string) (*domain.ExportFile, error) {
	if len(records) == 0 {
		return nil, NewReportError(ErrNoDataToExport, apiErrors.ErrNoDataToExport, "")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
	}

	header := records[0].Keys()
	for col, key := range header {
		if err := setCell(f, col+1, 1, key); err != nil {
			return nil, err
		}
	}

	for i, record := range records {
		for col, key := range header {
			value, _ := record.Get(key)
			if err := setCell(f, col+1, i+2, xlsxValue(value)); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
	}

	return &domain.ExportFile{
		Name:        filename + ".xlsx",
		ContentType: ContentTypeXLSX,
		Content:     buf.Bytes(),
	}, nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
	}

	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return NewReportError(ErrBuildExportFile, apiErrors.ErrInternalServer, err.Error())
	}

	return nil
}

// xlsxValue mantém números e booleanos nativos na planilha
func xlsxValue(value any) any {
	switch v := value.(type) {
	case int, int32, int64, float32, float64, bool:
		return v
	case nil:
		return ""
	default:
		return FormatCell(v)
	}
}

// FormatCell converte o valor de uma coluna para texto
func FormatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(time.RFC3339)
	case decimal.Decimal:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
