package store

import (
	"inanisgarage/internal/models"
)

// VehicleUpdate carries the optional non-identifier field changes for
// UpdateVehicle; nil means leave the field alone.
type VehicleUpdate struct {
	Make        *string
	Model       *string
	Year        *int
	Color       *string
	Description *string
	Status      *string
}

// UpdateVehicle updates a vehicle and, when newID differs from oldID,
// migrates the identifier across every dependent table: assignments, fuel
// logs, documents and maintenance records are all rewritten in the same
// critical section, so no table is ever left referencing oldID. The caller
// sees all-or-nothing: a conflict or missing vehicle touches nothing.
func (s *Store) UpdateVehicle(oldID, newID string, upd VehicleUpdate) (models.Vehicle, error) {
	oldID = NormalizeRegNo(oldID)
	newID = NormalizeRegNo(newID)
	if newID == "" {
		newID = oldID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.state.Vehicles[oldID]
	if !ok {
		return models.Vehicle{}, &NotFoundError{Kind: "vehicle", ID: oldID}
	}
	if newID != oldID {
		if _, taken := s.state.Vehicles[newID]; taken {
			return models.Vehicle{}, &ConflictError{ID: newID}
		}
	}

	if upd.Make != nil {
		v.Make = *upd.Make
	}
	if upd.Model != nil {
		v.Model = *upd.Model
	}
	if upd.Year != nil {
		v.Year = *upd.Year
	}
	if upd.Color != nil {
		v.Color = *upd.Color
	}
	if upd.Description != nil {
		v.Description = *upd.Description
	}
	if upd.Status != nil {
		v.Status = *upd.Status
	}

	if newID == oldID {
		s.state.Vehicles[oldID] = v
		s.saveLocked()
		return v, nil
	}

	v.RegNo = newID
	s.state.Vehicles[newID] = v
	delete(s.state.Vehicles, oldID)

	for i := range s.state.Assignments {
		if s.state.Assignments[i].VehicleID == oldID {
			s.state.Assignments[i].VehicleID = newID
		}
	}
	if logs, ok := s.state.FuelLogs[oldID]; ok {
		s.state.FuelLogs[newID] = logs
		delete(s.state.FuelLogs, oldID)
	}
	if docs, ok := s.state.Documents[oldID]; ok {
		s.state.Documents[newID] = docs
		delete(s.state.Documents, oldID)
	}
	if recs, ok := s.state.Maintenance[oldID]; ok {
		s.state.Maintenance[newID] = recs
		delete(s.state.Maintenance, oldID)
	}

	s.saveLocked()
	return v, nil
}
