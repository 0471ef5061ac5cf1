// Package sales defines the outbound ports of the ledger and the flat wire
// representation shared by every adapter (JSON file, CSV export, SQLite,
// Google Sheets). Field names match the historical storage format.
package sales

import (
	"strconv"

	"github.com/shopspring/decimal"

	"ventas/internal/core"
)

// Row is one sale record in the flat storage/export shape.
type Row struct {
	Datetime            string  `json:"datetime"`
	Tipo                string  `json:"tipo"`
	Color               string  `json:"color"`
	Cantidad            int     `json:"cantidad"`
	PrecioUnitario      float64 `json:"precio_unitario"`
	CostoUnitario       float64 `json:"costo_unitario"`
	Total               float64 `json:"total"`
	InversionRecuperada float64 `json:"inversion_recuperada"`
	Ganancia            float64 `json:"ganancia"`
	AlertaPrecio        bool    `json:"alerta_precio"`
}

// Fields returns the column names in canonical order.
func Fields() []string {
	return []string{
		"datetime", "tipo", "color", "cantidad", "precio_unitario",
		"costo_unitario", "total", "inversion_recuperada", "ganancia",
		"alerta_precio",
	}
}

// ToRow flattens a record for persistence or export.
func ToRow(rec core.SaleRecord) Row {
	return Row{
		Datetime:            core.FormatTimestamp(rec.Timestamp),
		Tipo:                string(rec.Category),
		Color:               rec.Color,
		Cantidad:            rec.Quantity,
		PrecioUnitario:      rec.UnitPrice.InexactFloat64(),
		CostoUnitario:       rec.UnitCost.InexactFloat64(),
		Total:               rec.Total.InexactFloat64(),
		InversionRecuperada: rec.InvestmentRecovered.InexactFloat64(),
		Ganancia:            rec.Profit.InexactFloat64(),
		AlertaPrecio:        rec.PriceAlert,
	}
}

// FromRow rebuilds a full record from the raw stored fields. Derived fields
// are recomputed from (tipo, cantidad, precio_unitario) and never trusted
// from storage.
func FromRow(costs *core.CostTable, row Row) (core.SaleRecord, error) {
	ts, err := core.ParseTimestamp(row.Datetime, nil)
	if err != nil {
		return core.SaleRecord{}, err
	}
	price := decimal.NewFromFloat(row.PrecioUnitario)
	return core.NewSaleRecord(costs, ts, core.Category(row.Tipo), row.Color, row.Cantidad, price)
}

// Strings renders the row as CSV cells, in Fields() order.
func (r Row) Strings() []string {
	return []string{
		r.Datetime,
		r.Tipo,
		r.Color,
		strconv.Itoa(r.Cantidad),
		formatAmount(r.PrecioUnitario),
		formatAmount(r.CostoUnitario),
		formatAmount(r.Total),
		formatAmount(r.InversionRecuperada),
		formatAmount(r.Ganancia),
		strconv.FormatBool(r.AlertaPrecio),
	}
}

// Values renders the row as spreadsheet cells, in Fields() order.
func (r Row) Values() []any {
	return []any{
		r.Datetime, r.Tipo, r.Color, r.Cantidad, r.PrecioUnitario,
		r.CostoUnitario, r.Total, r.InversionRecuperada, r.Ganancia,
		r.AlertaPrecio,
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
