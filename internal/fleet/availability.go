// Package fleet holds the dashboard computations: per-vehicle occupancy for
// a given date and near-expiry document classification. Everything here is
// a pure function over copies handed out by the store.
package fleet

import (
	"inanisgarage/internal/models"
)

// Available is the occupant value for a vehicle with no active assignment.
const Available = "Available"

// ResolveStatus determines the occupant of every vehicle on asOf, a
// YYYY-MM-DD date. Comparison is plain string order, which matches
// chronological order for that layout. When several assignments cover the
// same vehicle and date, the first one in list (insertion) order wins; the
// data model allows overlaps, so this is a tie-break, not an error.
func ResolveStatus(vehicles map[string]models.Vehicle, assignments []models.Assignment, asOf string) map[string]string {
	status := make(map[string]string, len(vehicles))
	for id := range vehicles {
		occupant := Available
		for _, a := range assignments {
			if a.VehicleID == id && a.StartDate <= asOf && asOf <= a.EndDate {
				occupant = a.Driver
				break
			}
		}
		status[id] = occupant
	}
	return status
}

// Occupancy counts available and assigned vehicles in a status map.
func Occupancy(status map[string]string) (available, assigned int) {
	for _, occupant := range status {
		if occupant == Available {
			available++
		} else {
			assigned++
		}
	}
	return available, assigned
}
