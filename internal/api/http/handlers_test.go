package apihttp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"solarcalc/internal/history"
	"solarcalc/internal/history/infrastructure/memory"
	"solarcalc/internal/sizing/application"
)

func newService(t *testing.T, records history.Repository) *application.CalculationService {
	t.Helper()
	service, err := application.NewCalculationService(application.DefaultSettings(), records, nil, nil)
	if err != nil {
		t.Fatalf("new calculation service: %v", err)
	}
	return service
}

func calculateBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	consumption := make([]float64, 12)
	for i := range consumption {
		consumption[i] = 500
	}
	body, err := json.Marshal(map[string]any{
		"consumption":    consumption,
		"module_power_w": 550,
		"irradiation":    6.25,
		"losses": map[string]float64{
			"temperature_pct": 10,
			"shading_pct":     0,
			"conversion_pct":  11.11111111111111,
			"inverter_pct":    0,
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestCalculateHandler(t *testing.T) {
	records := memory.NewRepository()
	handler := NewCalculateHandler(newService(t, records))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/calculate", calculateBody(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var result application.CalculationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Sizing.RecommendedModuleCount != 7 {
		t.Fatalf("recommended %d modules, expected 7", result.Sizing.RecommendedModuleCount)
	}
	if result.Warning != "" {
		t.Fatalf("unexpected warning: %q", result.Warning)
	}

	saved, err := records.ListRecent(req.Context(), 10)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(saved) != 1 {
		t.Fatalf("expected one history record, got %d", len(saved))
	}
}

func TestCalculateHandlerRejectsInvalidInput(t *testing.T) {
	handler := NewCalculateHandler(newService(t, nil))

	body := strings.NewReader(`{"consumption":[500],"module_power_w":550,"irradiation":6.25}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/calculate", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sizing/calculate", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 for malformed body", rec.Code)
	}
}

func TestCalculateHandlerMethodNotAllowed(t *testing.T) {
	handler := NewCalculateHandler(newService(t, nil))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sizing/calculate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, expected 405", rec.Code)
	}
}

func TestImportHandlerCSV(t *testing.T) {
	handler := NewImportHandler()

	var csv strings.Builder
	csv.WriteString("month,consumption_kwh\n")
	for i := 0; i < 12; i++ {
		csv.WriteString("m,420\n")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/import?format=csv", strings.NewReader(csv.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Consumption []float64 `json:"consumption"`
		TotalKWh    float64   `json:"total_kwh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Consumption) != 12 {
		t.Fatalf("expected 12 values, got %d", len(payload.Consumption))
	}
	if payload.TotalKWh != 12*420 {
		t.Fatalf("total = %.1f, expected %.1f", payload.TotalKWh, 12*420.0)
	}
}

func TestImportHandlerRejectsBadFile(t *testing.T) {
	handler := NewImportHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/import?format=csv", strings.NewReader("consumption\n100\n200\n"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 for short file", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sizing/import?format=tsv", strings.NewReader(""))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 for unknown format", rec.Code)
	}
}

func TestImportFormatDetection(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/import", nil)
	req.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if got := importFormat(req); got != "xlsx" {
		t.Fatalf("importFormat = %q, expected xlsx", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sizing/import", nil)
	req.Header.Set("Content-Type", "text/csv")
	if got := importFormat(req); got != "csv" {
		t.Fatalf("importFormat = %q, expected csv", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/sizing/import?format=XLSX", nil)
	if got := importFormat(req); got != "xlsx" {
		t.Fatalf("importFormat = %q, expected xlsx from query", got)
	}
}

func TestReportHandlerPDF(t *testing.T) {
	handler := NewReportHandler(newService(t, nil), "pdf")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/report.pdf", calculateBody(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("content type = %q", got)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("response body is not a PDF document")
	}
}

func TestReportHandlerXLSX(t *testing.T) {
	handler := NewReportHandler(newService(t, nil), "xlsx")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sizing/report.xlsx", calculateBody(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() == 0 {
		t.Fatalf("empty workbook response")
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "sizing-report.xlsx") {
		t.Fatalf("content disposition = %q", got)
	}
}

func TestHistoryHandler(t *testing.T) {
	records := memory.NewRepository()
	calculate := NewCalculateHandler(newService(t, records))
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		calculate.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sizing/calculate", calculateBody(t)))
		if rec.Code != http.StatusOK {
			t.Fatalf("seed run %d: status %d", i, rec.Code)
		}
	}

	handler := NewHistoryHandler(records)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/sizing/history?limit=2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var listed []history.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 records, got %d", len(listed))
	}
}

func TestHistoryHandlerValidation(t *testing.T) {
	handler := NewHistoryHandler(memory.NewRepository())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sizing/history?limit=0", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400 for limit=0", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/sizing/history", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, expected 405", rec.Code)
	}

	unconfigured := NewHistoryHandler(nil)
	rec = httptest.NewRecorder()
	unconfigured.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sizing/history", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, expected 503 when no store is wired", rec.Code)
	}
}
