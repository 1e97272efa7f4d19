package apihttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	finance "solarcalc/internal/finance/domain"
	"solarcalc/internal/history"
	"solarcalc/internal/ingest"
	"solarcalc/internal/observability/metrics"
	"solarcalc/internal/report"
	"solarcalc/internal/sizing/application"
	sizing "solarcalc/internal/sizing/domain"
)

// calculateRequest is the wire form of one calculation run.
type calculateRequest struct {
	Consumption         []float64           `json:"consumption"`
	ModulePowerW        float64             `json:"module_power_w"`
	Irradiation         float64             `json:"irradiation"`
	DaysInMonth         int                 `json:"days_in_month,omitempty"`
	Losses              *sizing.LossFactors `json:"losses,omitempty"`
	MaxModuleCount      int                 `json:"max_module_count,omitempty"`
	OversizingMarginPct *float64            `json:"oversizing_margin_pct,omitempty"`
	Financial           *finance.Params     `json:"financial,omitempty"`
}

func (r calculateRequest) toApplication() application.CalculationRequest {
	return application.CalculationRequest{
		Consumption:         r.Consumption,
		ModulePowerW:        r.ModulePowerW,
		Irradiation:         r.Irradiation,
		DaysInMonth:         r.DaysInMonth,
		Losses:              r.Losses,
		MaxModuleCount:      r.MaxModuleCount,
		OversizingMarginPct: r.OversizingMarginPct,
		Financial:           r.Financial,
	}
}

// CalculateHandler serves sizing calculations.
type CalculateHandler struct {
	service *application.CalculationService
}

// NewCalculateHandler constructs a CalculateHandler.
func NewCalculateHandler(service *application.CalculationService) *CalculateHandler {
	return &CalculateHandler{service: service}
}

// ServeHTTP handles POST /api/v1/sizing/calculate.
func (h *CalculateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	start := time.Now()
	result, status, err := runCalculation(h.service, r)
	if err != nil {
		metrics.ObserveCalculate(metrics.ResultError, time.Since(start))
		http.Error(w, err.Error(), status)
		return
	}
	if result.Warning != "" {
		metrics.ObserveCalculate(metrics.ResultWarning, time.Since(start))
	} else {
		metrics.ObserveCalculate(metrics.ResultSuccess, time.Since(start))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func runCalculation(service *application.CalculationService, r *http.Request) (*application.CalculationResult, int, error) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, http.StatusBadRequest, errors.New("invalid request body")
	}
	result, err := service.Calculate(r.Context(), req.toApplication())
	if err != nil {
		if errors.Is(err, sizing.ErrInvalidParameter) || errors.Is(err, finance.ErrInvalidParameter) {
			return nil, http.StatusBadRequest, err
		}
		return nil, http.StatusInternalServerError, errors.New("calculation error")
	}
	return result, http.StatusOK, nil
}

// ImportHandler turns uploaded consumption files into profiles.
type ImportHandler struct{}

// NewImportHandler constructs an ImportHandler.
func NewImportHandler() *ImportHandler {
	return &ImportHandler{}
}

// ServeHTTP handles POST /api/v1/sizing/import?format=csv|xlsx.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	format := importFormat(r)
	var (
		profile sizing.ConsumptionProfile
		err     error
	)
	switch format {
	case "csv":
		profile, err = ingest.ReadConsumptionCSV(r.Body)
	case "xlsx":
		profile, err = ingest.ReadConsumptionXLSX(r.Body)
	default:
		http.Error(w, "format must be csv or xlsx", http.StatusBadRequest)
		return
	}
	if err != nil {
		metrics.IncImport(format, metrics.ResultError)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	metrics.IncImport(format, metrics.ResultSuccess)

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"consumption": profile.Values(),
		"total_kwh":   profile.Total(),
		"mean_kwh":    profile.Mean(),
	})
}

func importFormat(r *http.Request) string {
	if format := r.URL.Query().Get("format"); format != "" {
		return strings.ToLower(format)
	}
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "spreadsheet") || strings.Contains(contentType, "excel") {
		return "xlsx"
	}
	return "csv"
}

// ReportHandler calculates and renders a downloadable report.
type ReportHandler struct {
	service *application.CalculationService
	format  string
}

// NewReportHandler constructs a ReportHandler for "pdf" or "xlsx".
func NewReportHandler(service *application.CalculationService, format string) *ReportHandler {
	return &ReportHandler{service: service, format: format}
}

// ServeHTTP handles POST /api/v1/sizing/report.{pdf,xlsx}.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.service == nil {
		http.Error(w, "server not ready", http.StatusServiceUnavailable)
		return
	}

	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	result, err := h.service.Calculate(r.Context(), req.toApplication())
	if err != nil {
		if errors.Is(err, sizing.ErrInvalidParameter) || errors.Is(err, finance.ErrInvalidParameter) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "calculation error", http.StatusInternalServerError)
		return
	}

	input := report.Input{
		Consumption:  req.Consumption,
		ModulePowerW: req.ModulePowerW,
		Irradiation:  req.Irradiation,
		Sizing:       result.Sizing,
		Summary:      result.Summary,
		Payback:      result.Payback,
		Params:       req.Financial,
		GeneratedAt:  time.Now().UTC(),
	}

	var data []byte
	switch h.format {
	case "pdf":
		data, err = report.BuildPDF(input)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="sizing-report.pdf"`)
	case "xlsx":
		data, err = report.BuildXLSX(input)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="sizing-report.xlsx"`)
	default:
		http.Error(w, "unsupported report format", http.StatusInternalServerError)
		return
	}
	if err != nil {
		metrics.IncExport(h.format, metrics.ResultError)
		http.Error(w, "report error", http.StatusInternalServerError)
		return
	}
	metrics.IncExport(h.format, metrics.ResultSuccess)
	_, _ = w.Write(data)
}

// HistoryHandler lists recent calculation runs.
type HistoryHandler struct {
	records history.Repository
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(records history.Repository) *HistoryHandler {
	return &HistoryHandler{records: records}
}

// ServeHTTP handles GET /api/v1/sizing/history.
func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if h == nil || h.records == nil {
		http.Error(w, "history not configured", http.StatusServiceUnavailable)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 500 {
			http.Error(w, "limit must be a positive integer up to 500", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	records, err := h.records.ListRecent(r.Context(), limit)
	if err != nil {
		http.Error(w, "history query error", http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(records)
}
