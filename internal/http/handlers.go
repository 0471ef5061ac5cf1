package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ventas/internal/core"
	"ventas/internal/export"
	"ventas/internal/sales"
)

type createSaleRequest struct {
	Datetime       string      `json:"datetime"`
	Tipo           string      `json:"tipo"`
	Color          string      `json:"color"`
	Cantidad       json.Number `json:"cantidad"`
	PrecioUnitario json.Number `json:"precio_unitario"`
}

type createSaleResponse struct {
	Ref string `json:"ref"`
	sales.Row
}

type summaryResponse struct {
	Window            string             `json:"window"`
	TotalRevenue      float64            `json:"total_revenue"`
	AccumulatedProfit float64            `json:"accumulated_profit"`
	MostProfitable    string             `json:"most_profitable"`
	ProfitByCategory  map[string]float64 `json:"profit_by_category"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSale(w, r)
	case http.MethodGet:
		s.handleListSales(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ts, err := core.ParseTimestamp(req.Datetime, time.Now)
	if err != nil {
		writeValidationError(w, err)
		return
	}
	quantity, err := core.ParseQuantity(req.Cantidad.String())
	if err != nil {
		writeValidationError(w, err)
		return
	}
	price, err := core.ParsePrice(req.PrecioUnitario.String())
	if err != nil {
		writeValidationError(w, err)
		return
	}

	rec, err := core.NewSaleRecord(s.costs, ts, core.Category(strings.TrimSpace(req.Tipo)),
		strings.TrimSpace(req.Color), quantity, price)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	ref, err := s.writer.Append(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Sale append error", "error", err,
			"category", rec.Category, "quantity", rec.Quantity)
		writeError(w, http.StatusInternalServerError, "failed to save sale")
		return
	}

	s.invalidateSummaries(rec.Timestamp)

	writeJSON(w, http.StatusCreated, createSaleResponse{
		Ref: ref,
		Row: sales.ToRow(rec),
	})
}

func (s *Server) handleListSales(w http.ResponseWriter, r *http.Request) {
	records, err := s.listRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Sale list error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	rows := make([]sales.Row, len(records))
	for i, rec := range records {
		rows[i] = sales.ToRow(rec)
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDaySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	day, err := core.ParseDay(r.URL.Query().Get("date"), time.Now)
	if err != nil {
		writeValidationError(w, err)
		return
	}

	key := dayCacheKey(day)
	summary, cached := s.summaryCache.Get(key)
	if !cached {
		records, err := s.listRecords(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Day summary error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to compute summary")
			return
		}
		summary = core.SummarizeByDay(records, day)
		s.summaryCache.Set(key, summary)
	}

	writeJSON(w, http.StatusOK, toSummaryResponse(day.Format("2006-01-02"), summary))
}

func (s *Server) handleWeekSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var isoYear, isoWeek int
	if raw := strings.TrimSpace(r.URL.Query().Get("week")); raw == "" {
		isoYear, isoWeek = time.Now().ISOWeek()
	} else {
		var err error
		isoYear, isoWeek, err = core.ParseWeek(raw)
		if err != nil {
			writeValidationError(w, err)
			return
		}
	}

	key := weekCacheKey(isoYear, isoWeek)
	summary, cached := s.summaryCache.Get(key)
	if !cached {
		records, err := s.listRecords(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Week summary error", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to compute summary")
			return
		}
		summary = core.SummarizeByWeek(records, isoYear, isoWeek)
		s.summaryCache.Set(key, summary)
	}

	window := fmt.Sprintf("%04d-W%02d", isoYear, isoWeek)
	writeJSON(w, http.StatusOK, toSummaryResponse(window, summary))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	records, err := s.listRecords(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export ledger")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ventas_export.csv"`)
	if err := export.WriteCSV(w, records); err != nil {
		slog.ErrorContext(r.Context(), "CSV write error", "error", err)
	}
}

func (s *Server) listRecords(ctx context.Context) ([]core.SaleRecord, error) {
	cctx, cancel := context.WithTimeout(ctx, 7*time.Second)
	defer cancel()
	return s.lister.ListAll(cctx)
}

// invalidateSummaries drops the cached windows the new record falls into.
// Other cached summaries stay valid because a record only affects its own
// day and week.
func (s *Server) invalidateSummaries(ts time.Time) {
	s.summaryCache.Delete(dayCacheKey(ts))
	isoYear, isoWeek := ts.ISOWeek()
	s.summaryCache.Delete(weekCacheKey(isoYear, isoWeek))
}

func dayCacheKey(day time.Time) string {
	return "day:" + day.Format("2006-01-02")
}

func weekCacheKey(isoYear, isoWeek int) string {
	return "week:" + strconv.Itoa(isoYear) + "-" + strconv.Itoa(isoWeek)
}

func toSummaryResponse(window string, sum core.Summary) summaryResponse {
	byCategory := make(map[string]float64, len(sum.ProfitByCategory))
	for c, p := range sum.ProfitByCategory {
		byCategory[string(c)] = p.Round(2).InexactFloat64()
	}
	return summaryResponse{
		Window:            window,
		TotalRevenue:      sum.TotalRevenue.InexactFloat64(),
		AccumulatedProfit: sum.AccumulatedProfit.InexactFloat64(),
		MostProfitable:    string(sum.MostProfitable),
		ProfitByCategory:  byCategory,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeValidationError maps domain validation errors to 422 responses.
func writeValidationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidQuantity),
		errors.Is(err, core.ErrInvalidPrice),
		errors.Is(err, core.ErrInvalidDateFormat),
		errors.Is(err, core.ErrInvalidWindow):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
