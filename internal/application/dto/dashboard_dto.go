package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalProducts int             `json:"totalProdutos"`
	LowStock      int             `json:"estoqueBaixo"`      // cantidad <= umbral configurado
	StockValue    decimal.Decimal `json:"valorEstoqueCusto"` // Σ cantidad × precio de costo
	Last24h       MovementCounts  `json:"ultimas24h"`
}

// MovementCounts cantidad de movimientos por tipo en una ventana de tiempo.
type MovementCounts struct {
	Entries int `json:"entradas"`
	Exits   int `json:"saidas"`
}
