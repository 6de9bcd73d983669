package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/models"
	"inanisgarage/internal/store"
)

func AddMaintenance(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req struct {
			Description string  `json:"description"`
			Cost        float64 `json:"cost"`
			Date        string  `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		rec, err := st.AddMaintenance(id, models.MaintenanceRecord{
			Description: req.Description,
			Cost:        req.Cost,
			Date:        req.Date,
			RecordedBy:  auth.Subject(r.Context()),
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("maintenance recorded", "vehicle", store.NormalizeRegNo(id), "cost", rec.Cost)
		respondJSON(w, rec)
	}
}
