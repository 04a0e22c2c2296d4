package domain

import "time"

type ReportType string

const (
	ReportGeneral   ReportType = "geral"
	ReportClients   ReportType = "clientes"
	ReportSales     ReportType = "vendas"
	ReportProducts  ReportType = "produtos"
	ReportServices  ReportType = "servicos"
	ReportEmployees ReportType = "funcionarios"
)

var reportTables = map[ReportType]string{
	ReportClients:   TableClients,
	ReportSales:     TableSales,
	ReportProducts:  TableProducts,
	ReportServices:  TableServices,
	ReportEmployees: TableEmployees,
}

// ReportEntities lista as entidades na ordem em que aparecem no relatório geral
var ReportEntities = []ReportType{ReportClients, ReportSales, ReportProducts, ReportServices, ReportEmployees}

// Entities expande "geral" nas cinco entidades; tipos desconhecidos retornam nil
func (t ReportType) Entities() []ReportType {
	if t == ReportGeneral {
		return ReportEntities
	}
	if _, ok := reportTables[t]; ok {
		return []ReportType{t}
	}
	return nil
}

func (t ReportType) Table() string {
	return reportTables[t]
}

type ReportSection struct {
	Entity  ReportType `json:"entity"`
	Records []Record   `json:"records"`
}

type Report struct {
	Type        ReportType      `json:"type"`
	GeneratedAt time.Time       `json:"generatedAt"`
	StartDate   *time.Time      `json:"startDate,omitempty"`
	EndDate     *time.Time      `json:"endDate,omitempty"`
	Sections    []ReportSection `json:"sections"`
}

// Section devolve as linhas de uma entidade do relatório
func (r *Report) Section(entity ReportType) []Record {
	for _, s := range r.Sections {
		if s.Entity == entity {
			return s.Records
		}
	}
	return nil
}

type ExportFile struct {
	Name        string
	ContentType string
	Content     []byte
}
