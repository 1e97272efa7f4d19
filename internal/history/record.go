package history

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

var (
	// ErrNilRecord is returned when saving a nil record.
	ErrNilRecord = errors.New("history: nil record")
	// ErrEmptyID is returned when a record id is empty.
	ErrEmptyID = errors.New("history: empty record id")
)

// Record is one completed sizing run kept as an audit trail.
type Record struct {
	ID                     string    `json:"id"`
	CreatedAt              time.Time `json:"created_at"`
	MeanConsumptionKWh     float64   `json:"mean_consumption_kwh"`
	ModulePowerW           float64   `json:"module_power_w"`
	Irradiation            float64   `json:"irradiation"`
	RecommendedModuleCount int       `json:"recommended_module_count"`
	InstalledPowerW        float64   `json:"installed_power_w"`
	InverterPowerW         float64   `json:"inverter_power_w"`
	SimplePaybackMonths    *int      `json:"simple_payback_months,omitempty"`
}

// Repository persists calculation records.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	ListRecent(ctx context.Context, limit int) ([]Record, error)
}

// NewRecordID generates a random record identifier.
func NewRecordID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return hex.EncodeToString(buf[:])
	}
	// UUIDv4 version and variant bits.
	buf[6] = (buf[6] & 0x0f) | 0x40
	buf[8] = (buf[8] & 0x3f) | 0x80
	return hex.EncodeToString(buf[:])
}
