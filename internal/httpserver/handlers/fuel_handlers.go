package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/store"
)

// AddFuelLog is the one mutation open to non-admin users. prev_odo may be
// omitted, in which case the vehicle's current odometer is used.
func AddFuelLog(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := store.NormalizeRegNo(chi.URLParam(r, "id"))
		var req struct {
			PrevOdo *float64 `json:"prev_odo"`
			CurrOdo float64  `json:"curr_odo"`
			Liters  float64  `json:"liters"`
			Date    string   `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var prev float64
		if req.PrevOdo != nil {
			prev = *req.PrevOdo
		} else {
			v, ok := st.GetVehicle(id)
			if !ok {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			prev = v.Odometer
		}
		log, err := st.AddFuelLog(id, prev, req.CurrOdo, req.Liters, req.Date, auth.Subject(r.Context()))
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("fuel log added", "vehicle", id, "distance", log.Distance, "efficiency", log.Efficiency)
		respondJSON(w, log)
	}
}
