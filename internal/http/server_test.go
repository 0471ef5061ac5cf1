package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ventas/internal/core"
	"ventas/internal/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	store := memory.New()
	s := NewServer(":0", store, store, core.DefaultCostTable())
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, store
}

func doJSON(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rr, req)
	return rr
}

func TestCreateSale(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"datetime":"2025-12-29 10:15","tipo":"hombre","color":"negro","cantidad":3,"precio_unitario":40}`
	rr := doJSON(t, s, http.MethodPost, "/sales", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Ref      string  `json:"ref"`
		Tipo     string  `json:"tipo"`
		Total    float64 `json:"total"`
		Ganancia float64 `json:"ganancia"`
		Datetime string  `json:"datetime"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Ref != "mem:1" {
		t.Fatalf("ref = %q", resp.Ref)
	}
	if resp.Total != 120 || resp.Ganancia != 15 {
		t.Fatalf("total = %v, ganancia = %v", resp.Total, resp.Ganancia)
	}
	if resp.Datetime != "2025-12-29 10:15:00" {
		t.Fatalf("datetime = %q, want canonical format", resp.Datetime)
	}
}

func TestCreateSaleValidation(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"unknown category", `{"datetime":"now","tipo":"gorra","cantidad":1,"precio_unitario":10}`, http.StatusUnprocessableEntity},
		{"zero quantity", `{"datetime":"now","tipo":"hombre","cantidad":0,"precio_unitario":10}`, http.StatusUnprocessableEntity},
		{"negative price", `{"datetime":"now","tipo":"hombre","cantidad":1,"precio_unitario":-5}`, http.StatusUnprocessableEntity},
		{"bad datetime", `{"datetime":"29/12/2025","tipo":"hombre","cantidad":1,"precio_unitario":10}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"tipo":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doJSON(t, s, http.MethodPost, "/sales", tt.body)
			if rr.Code != tt.want {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.want, rr.Body.String())
			}
		})
	}
}

func TestListSales(t *testing.T) {
	s, store := newTestServer(t)
	if err := store.SeedDemo(core.DefaultCostTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rr := doJSON(t, s, http.MethodGet, "/sales", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var rows []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0]["tipo"] != "hombre" {
		t.Fatalf("first row tipo = %v", rows[0]["tipo"])
	}
}

func TestDaySummary(t *testing.T) {
	s, store := newTestServer(t)
	if err := store.SeedDemo(core.DefaultCostTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rr := doJSON(t, s, http.MethodGet, "/summary/day?date=2025-12-29", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var resp summaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalRevenue != 176 {
		t.Fatalf("total_revenue = %v, want 176", resp.TotalRevenue)
	}
	if resp.AccumulatedProfit != 11 {
		t.Fatalf("accumulated_profit = %v, want 11", resp.AccumulatedProfit)
	}
	if resp.MostProfitable != "hombre" {
		t.Fatalf("most_profitable = %q", resp.MostProfitable)
	}
	if resp.ProfitByCategory["mujer"] != -4 {
		t.Fatalf("mujer profit = %v, want -4", resp.ProfitByCategory["mujer"])
	}
}

func TestDaySummaryInvalidDate(t *testing.T) {
	s, _ := newTestServer(t)
	rr := doJSON(t, s, http.MethodGet, "/summary/day?date=bogus", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
}

func TestWeekSummaryISOBoundary(t *testing.T) {
	s, store := newTestServer(t)
	if err := store.SeedDemo(core.DefaultCostTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// 2025-12-29 belongs to ISO week 2026-W01.
	rr := doJSON(t, s, http.MethodGet, "/summary/week?week=2026-01", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp summaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Window != "2026-W01" {
		t.Fatalf("window = %q", resp.Window)
	}
	// hombre 3x40 + mujer 2x28 + hombre 1x30, niño on 12-28 is week 2025-W52
	if resp.TotalRevenue != 206 {
		t.Fatalf("total_revenue = %v, want 206", resp.TotalRevenue)
	}

	rr = doJSON(t, s, http.MethodGet, "/summary/week?week=2025-12-28", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Window != "2025-W52" || resp.TotalRevenue != 100 {
		t.Fatalf("window = %q revenue = %v, want 2025-W52 / 100", resp.Window, resp.TotalRevenue)
	}
}

func TestWeekSummaryInvalidSpec(t *testing.T) {
	s, _ := newTestServer(t)
	rr := doJSON(t, s, http.MethodGet, "/summary/week?week=week-one", "")
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rr.Code)
	}
}

func TestSummaryCacheInvalidatedOnAppend(t *testing.T) {
	s, _ := newTestServer(t)

	post := `{"datetime":"2025-12-29 10:00","tipo":"hombre","color":"negro","cantidad":1,"precio_unitario":40}`
	if rr := doJSON(t, s, http.MethodPost, "/sales", post); rr.Code != http.StatusCreated {
		t.Fatalf("post status = %d", rr.Code)
	}

	rr := doJSON(t, s, http.MethodGet, "/summary/day?date=2025-12-29", "")
	var before summaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &before); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if before.TotalRevenue != 40 {
		t.Fatalf("total_revenue = %v, want 40", before.TotalRevenue)
	}

	// The cached summary for that day must not be served after an append.
	if rr := doJSON(t, s, http.MethodPost, "/sales", post); rr.Code != http.StatusCreated {
		t.Fatalf("post status = %d", rr.Code)
	}
	rr = doJSON(t, s, http.MethodGet, "/summary/day?date=2025-12-29", "")
	var after summaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if after.TotalRevenue != 80 {
		t.Fatalf("total_revenue = %v after second sale, want 80", after.TotalRevenue)
	}
}

func TestEmptyWindowSummary(t *testing.T) {
	s, _ := newTestServer(t)
	rr := doJSON(t, s, http.MethodGet, "/summary/day?date=1999-01-01", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, empty window is not an error", rr.Code)
	}
	var resp summaryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalRevenue != 0 || resp.MostProfitable != "" {
		t.Fatalf("empty window summary = %+v", resp)
	}
}

func TestExportCSV(t *testing.T) {
	s, store := newTestServer(t)
	if err := store.SeedDemo(core.DefaultCostTable()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rr := doJSON(t, s, http.MethodGet, "/export.csv", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4 rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "datetime,tipo,color,cantidad") {
		t.Fatalf("header = %q", lines[0])
	}
}

func TestHealthEndpoints(t *testing.T) {
	s, _ := newTestServer(t)
	if rr := doJSON(t, s, http.MethodGet, "/healthz", ""); rr.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rr.Code)
	}
	if rr := doJSON(t, s, http.MethodGet, "/readyz", ""); rr.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t)
	if rr := doJSON(t, s, http.MethodDelete, "/sales", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if rr := doJSON(t, s, http.MethodPost, "/summary/day", ""); rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
