package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"inanisgarage/internal/fleet"
	"inanisgarage/internal/store"
)

// Dashboard builds the landing view: every vehicle with its occupant for
// today, availability counts, and the capped near-expiry alert list.
func Dashboard(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		today := now.Format("2006-01-02")

		vehicles := st.Vehicles()
		status := fleet.ResolveStatus(vehicles, st.Assignments(), today)
		available, assigned := fleet.Occupancy(status)
		alerts := fleet.ClassifyExpiring(st.AllDocuments(), now)
		if alerts == nil {
			alerts = []fleet.Alert{}
		}

		respondJSON(w, map[string]any{
			"date":            today,
			"vehicles":        st.ListVehicles(),
			"status":          status,
			"available_count": available,
			"assigned_count":  assigned,
			"expiring_docs":   alerts,
		})
	}
}
