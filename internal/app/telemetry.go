package app

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Reading is the cosmetic live data shown on a vehicle card.
type Reading struct {
	VehicleID string    `json:"vehicleId"`
	Occupancy int       `json:"occupancy"`
	WifiUsers int       `json:"wifiUsers"`
	CabinTemp float64   `json:"cabinTemp"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type TelemetrySummary struct {
	Vehicles     int       `json:"vehicles"`
	AvgOccupancy float64   `json:"avgOccupancy"`
	WifiUsers    int       `json:"wifiUsers"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Telemetry holds one reading per vehicle. Readings only change on Refresh, so
// repeated reads between refreshes agree.
type Telemetry struct {
	mu       sync.RWMutex
	rng      *rand.Rand
	readings map[string]Reading
	at       time.Time
}

// NewTelemetry seeds the generator. A zero seed picks one from the clock.
func NewTelemetry(seed int64) *Telemetry {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Telemetry{rng: rand.New(rand.NewSource(seed)), readings: map[string]Reading{}}
}

// Refresh replaces all readings with fresh values for ids.
func (t *Telemetry) Refresh(ids []string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.at = now.UTC()
	t.readings = make(map[string]Reading, len(ids))
	for _, id := range ids {
		t.readings[id] = t.generateLocked(id)
	}
}

// Get returns the reading for id. Vehicles added since the last refresh get a reading
// on first access, which then stays until the next refresh.
func (t *Telemetry) Get(id string) Reading {
	t.mu.RLock()
	r, ok := t.readings[id]
	t.mu.RUnlock()
	if ok {
		return r
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if r, ok := t.readings[id]; ok {
		return r
	}
	r = t.generateLocked(id)
	t.readings[id] = r
	return r
}

func (t *Telemetry) Summary() TelemetrySummary {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sum := TelemetrySummary{Vehicles: len(t.readings), UpdatedAt: t.at}
	if len(t.readings) == 0 {
		return sum
	}
	occupancy := 0
	for _, r := range t.readings {
		occupancy += r.Occupancy
		sum.WifiUsers += r.WifiUsers
	}
	sum.AvgOccupancy = math.Round(float64(occupancy)/float64(len(t.readings))*10) / 10
	return sum
}

func (t *Telemetry) generateLocked(id string) Reading {
	occupancy := t.rng.Intn(101)
	return Reading{
		VehicleID: id,
		Occupancy: occupancy,
		WifiUsers: occupancy * t.rng.Intn(40) / 100,
		CabinTemp: math.Round((19+t.rng.Float64()*5)*10) / 10,
		UpdatedAt: t.at,
	}
}
