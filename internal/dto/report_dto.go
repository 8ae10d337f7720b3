package dto

import "github.com/shopspring/decimal"

type StatsResponse struct {
	Total         int               `json:"total"`
	WindowDays    int               `json:"window_days"`
	ByStatus      map[string]int    `json:"by_status"`
	ByDay         []DayCount        `json:"by_day"`
	ByProductType []ProductTypeStat `json:"by_product_type"`
	TotalProducts int               `json:"total_products"`
}

type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

type ProductTypeStat struct {
	ProductType string          `json:"product_type"`
	Count       int             `json:"count"`
	Percentage  decimal.Decimal `json:"percentage"`
}

type ExportFilter struct {
	Format string `form:"format,default=csv" validate:"oneof=csv json"`
	Status string `form:"status"             validate:"omitempty,oneof=pending processing completed cancelled"`
	From   string `form:"from"`
	To     string `form:"to"`
}

type SheetsTestResponse struct {
	Spreadsheet string `json:"spreadsheet"`
	Tab         string `json:"tab"`
	Created     bool   `json:"tab_created"`
}

type SheetsExportResponse struct {
	Orders int `json:"orders"`
	Rows   int `json:"rows"`
}

type IntegrationCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Skipped bool   `json:"skipped,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

type IntegrationsResponse struct {
	OK     bool               `json:"ok"`
	Checks []IntegrationCheck `json:"checks"`
}
