package store

import (
	"math"
	"time"

	"inanisgarage/internal/models"
)

// AddFuelLog validates and appends a fuel log, then advances the vehicle's
// odometer to curr — the one place a vehicle's odometer moves after
// creation. prev is caller-supplied (normally the vehicle's current
// reading) so re-submitted forms fail loudly instead of double-counting.
func (s *Store) AddFuelLog(vehicleID string, prev, curr, liters float64, date, recordedBy string) (models.FuelLog, error) {
	vehicleID = NormalizeRegNo(vehicleID)
	if curr <= prev {
		return models.FuelLog{}, &ValidationError{Field: "odometer", Reason: "current reading must exceed previous"}
	}
	if liters <= 0 {
		return models.FuelLog{}, &ValidationError{Field: "liters", Reason: "must be positive"}
	}
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return models.FuelLog{}, &ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
	}

	distance := curr - prev
	log := models.FuelLog{
		PrevOdometer: prev,
		CurrOdometer: curr,
		Liters:       liters,
		Distance:     distance,
		Efficiency:   math.Round(distance/liters*100) / 100,
		Date:         date,
		RecordedBy:   recordedBy,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state.Vehicles[vehicleID]
	if !ok {
		return models.FuelLog{}, &NotFoundError{Kind: "vehicle", ID: vehicleID}
	}
	s.state.FuelLogs[vehicleID] = append(s.state.FuelLogs[vehicleID], log)
	v.Odometer = curr
	s.state.Vehicles[vehicleID] = v
	s.saveLocked()
	return log, nil
}

// AverageEfficiency is the mean fuel efficiency across a vehicle's logs,
// rounded to two decimals; ok is false when there are no logs.
func (s *Store) AverageEfficiency(vehicleID string) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := s.state.FuelLogs[vehicleID]
	if len(logs) == 0 {
		return 0, false
	}
	var sum float64
	for _, l := range logs {
		sum += l.Efficiency
	}
	return math.Round(sum/float64(len(logs))*100) / 100, true
}
