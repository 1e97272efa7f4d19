package application

import (
	"context"
	"errors"
	"time"

	finance "solarcalc/internal/finance/domain"
	"solarcalc/internal/history"
	sizing "solarcalc/internal/sizing/domain"
)

// Settings are server-side defaults applied when a request leaves a knob
// unset.
type Settings struct {
	DaysInMonth         int                `yaml:"days_in_month"`
	OversizingMarginPct float64            `yaml:"oversizing_margin_pct"`
	MaxCandidates       int                `yaml:"max_candidates"`
	Losses              sizing.LossFactors `yaml:"losses"`
}

// DefaultSettings returns the stock defaults: 30-day months, 15% inverter
// margin, candidates 1..30, default loss factors.
func DefaultSettings() Settings {
	return Settings{
		DaysInMonth:         sizing.DefaultDaysInMonth,
		OversizingMarginPct: sizing.DefaultOversizingMarginPct,
		MaxCandidates:       30,
		Losses:              sizing.DefaultLossFactors(),
	}
}

// CalculationRequest is the input contract of one "Calculate" action.
type CalculationRequest struct {
	Consumption         []float64
	ModulePowerW        float64
	Irradiation         float64
	DaysInMonth         int                 // 0 uses the server default
	Losses              *sizing.LossFactors // nil uses the server default
	MaxModuleCount      int                 // 0 uses the server default
	OversizingMarginPct *float64            // nil uses the server default
	Financial           *finance.Params     // nil skips payback analysis
}

// CalculationResult is the complete report payload for one run.
type CalculationResult struct {
	Sizing     sizing.SizingResult    `json:"sizing"`
	Summary    sizing.AnnualSummary   `json:"summary"`
	Payback    *finance.PaybackResult `json:"payback,omitempty"`
	CostPerKWp float64                `json:"cost_per_kwp,omitempty"`
	Warning    string                 `json:"warning,omitempty"`
}

// CalculationCompleted is published after every successful run.
type CalculationCompleted struct {
	RecordID               string
	RecommendedModuleCount int
	InstalledPowerW        float64
	InverterPowerW         float64
	RangeExhausted         bool
	OccurredAt             time.Time
}

// Publisher emits calculation events.
type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// CalculationService runs the full sizing pass: derating, scenario
// evaluation, inverter sizing, payback analysis, history, events.
type CalculationService struct {
	settings Settings
	records  history.Repository
	bus      Publisher
	clock    Clock
}

// NewCalculationService constructs the service. Records and bus are
// optional; nil disables history and events respectively.
func NewCalculationService(settings Settings, records history.Repository, bus Publisher, clock Clock) (*CalculationService, error) {
	if settings.DaysInMonth <= 0 {
		return nil, errors.New("calculation service: days in month must be positive")
	}
	if settings.MaxCandidates <= 0 {
		return nil, errors.New("calculation service: max candidates must be positive")
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &CalculationService{
		settings: settings,
		records:  records,
		bus:      bus,
		clock:    clock,
	}, nil
}

// Calculate runs one full computation pass. A request whose candidate range
// cannot cover mean demand still succeeds; the result carries a warning and
// the largest candidate.
func (s *CalculationService) Calculate(ctx context.Context, req CalculationRequest) (*CalculationResult, error) {
	profile, err := sizing.NewConsumptionProfile(req.Consumption)
	if err != nil {
		return nil, err
	}
	module, err := sizing.NewModuleSpec(req.ModulePowerW)
	if err != nil {
		return nil, err
	}

	losses := s.settings.Losses
	if req.Losses != nil {
		losses = *req.Losses
	}
	coefficient, err := losses.DeratingCoefficient()
	if err != nil {
		return nil, err
	}

	daysInMonth := req.DaysInMonth
	if daysInMonth == 0 {
		daysInMonth = s.settings.DaysInMonth
	}
	maxCount := req.MaxModuleCount
	if maxCount == 0 {
		maxCount = s.settings.MaxCandidates
	}
	margin := s.settings.OversizingMarginPct
	if req.OversizingMarginPct != nil {
		margin = *req.OversizingMarginPct
	}

	result, err := sizing.Evaluate(profile, module, req.Irradiation, daysInMonth, coefficient, sizing.CandidateRange(maxCount))
	rangeExhausted := errors.Is(err, sizing.ErrRecommendationNotFound)
	if err != nil && !rangeExhausted {
		return nil, err
	}

	inverterW, err := sizing.SizeInverter(result.RecommendedModuleCount, module, margin)
	if err != nil {
		return nil, err
	}
	result.InverterPowerW = inverterW

	recommended, _ := result.Recommended()
	out := &CalculationResult{
		Sizing:  result,
		Summary: sizing.Summarize(profile, recommended),
	}
	if rangeExhausted {
		out.Warning = sizing.ErrRecommendationNotFound.Error()
	}

	if req.Financial != nil {
		payback, err := finance.Analyze(*req.Financial, recommended.MonthlyGeneration, profile.Values())
		if err != nil {
			return nil, err
		}
		out.Payback = payback
		if recommended.InstalledPowerW > 0 {
			out.CostPerKWp = req.Financial.InstallationCost / (recommended.InstalledPowerW / 1000)
		}
	}

	recordID := s.record(ctx, profile, req, out)
	s.publish(ctx, recordID, out, rangeExhausted)
	return out, nil
}

func (s *CalculationService) record(ctx context.Context, profile sizing.ConsumptionProfile, req CalculationRequest, result *CalculationResult) string {
	if s.records == nil {
		return ""
	}
	recommended, _ := result.Sizing.Recommended()
	record := &history.Record{
		ID:                     history.NewRecordID(),
		CreatedAt:              s.clock.Now(),
		MeanConsumptionKWh:     profile.Mean(),
		ModulePowerW:           req.ModulePowerW,
		Irradiation:            req.Irradiation,
		RecommendedModuleCount: result.Sizing.RecommendedModuleCount,
		InstalledPowerW:        recommended.InstalledPowerW,
		InverterPowerW:         result.Sizing.InverterPowerW,
	}
	if result.Payback != nil {
		record.SimplePaybackMonths = result.Payback.SimplePaybackMonths
	}
	// History is best-effort; a failed save must not fail the calculation.
	if err := s.records.Save(ctx, record); err != nil {
		return ""
	}
	return record.ID
}

func (s *CalculationService) publish(ctx context.Context, recordID string, result *CalculationResult, rangeExhausted bool) {
	if s.bus == nil {
		return
	}
	recommended, _ := result.Sizing.Recommended()
	// Events are best-effort; a failed publish must not fail the calculation.
	_ = s.bus.Publish(ctx, CalculationCompleted{
		RecordID:               recordID,
		RecommendedModuleCount: result.Sizing.RecommendedModuleCount,
		InstalledPowerW:        recommended.InstalledPowerW,
		InverterPowerW:         result.Sizing.InverterPowerW,
		RangeExhausted:         rangeExhausted,
		OccurredAt:             s.clock.Now(),
	})
}
