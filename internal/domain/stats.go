package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MonthlyGrowth struct {
	Month   string `json:"month"`
	Clients int    `json:"clients"`
}

// ChartSlice é uma fatia de gráfico (raças, métodos de pagamento)
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type RecentClient struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Pets      int    `json:"pets"`
	LastVisit string `json:"lastVisit"`
}

type DashboardStats struct {
	TotalClients        int             `json:"totalClients"`
	TotalPets           int             `json:"totalPets"`
	TotalProducts       int             `json:"totalProducts"`
	TotalServices       int             `json:"totalServices"`
	TotalEmployees      int             `json:"totalEmployees"`
	NewClientsThisMonth int             `json:"newClientsThisMonth"`
	MonthlyGrowth       []MonthlyGrowth `json:"monthlyGrowth"`
	PetBreeds           []ChartSlice    `json:"petBreeds"`
	RecentClients       []RecentClient  `json:"recentClients"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

type TopItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type MonthlySales struct {
	Month string `json:"month"`
	Sales int    `json:"sales"`
}

type SalesStats struct {
	TotalSales       int64           `json:"totalSales"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	SalesThisMonth   int             `json:"salesThisMonth"`
	RevenueThisMonth decimal.Decimal `json:"revenueThisMonth"`
	TopProducts      []TopItem       `json:"topProducts"`
	TopServices      []TopItem       `json:"topServices"`
	MonthlySalesData []MonthlySales  `json:"monthlySalesData"`
	PaymentMethods   []ChartSlice    `json:"paymentMethods"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// MonthLabels são os rótulos abreviados usados nos gráficos mensais
var MonthLabels = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
