package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/files"
	"inanisgarage/internal/mirror"
	"inanisgarage/internal/models"
	"inanisgarage/internal/store"
)

const maxUploadBytes = 16 << 20

func ListVehicles(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, st.ListVehicles())
	}
}

// GetVehicle is the detail view: the vehicle plus its documents, fuel logs,
// maintenance history and overall average efficiency.
func GetVehicle(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := store.NormalizeRegNo(chi.URLParam(r, "id"))
		v, ok := st.GetVehicle(id)
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		resp := map[string]any{
			"vehicle":     v,
			"documents":   orEmptyDocs(st.Documents(id)),
			"fuel_logs":   orEmptyLogs(st.FuelLogs(id)),
			"maintenance": orEmptyMaint(st.Maintenance(id)),
			"assignments": orEmptyAssign(st.AssignmentsFor(id)),
		}
		if avg, ok := st.AverageEfficiency(id); ok {
			resp["overall_avg_efficiency"] = avg
		}
		respondJSON(w, resp)
	}
}

// CreateVehicle accepts a multipart form so the thumbnail rides along with
// the fields, mirroring the original admin form.
func CreateVehicle(st *store.Store, fs *files.Storage, mr *mirror.Mirror, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		year, err := strconv.Atoi(strings.TrimSpace(r.FormValue("year")))
		if err != nil {
			http.Error(w, "year must be an integer", http.StatusBadRequest)
			return
		}
		odo, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("odo")), 64)
		if err != nil || odo < 0 {
			http.Error(w, "odo must be a non-negative number", http.StatusBadRequest)
			return
		}
		v := models.Vehicle{
			RegNo:       r.FormValue("reg_no"),
			Make:        strings.TrimSpace(r.FormValue("make")),
			Model:       strings.TrimSpace(r.FormValue("model")),
			Year:        year,
			Color:       strings.TrimSpace(r.FormValue("color")),
			Odometer:    odo,
			Description: strings.TrimSpace(r.FormValue("desc")),
		}
		if v.Make == "" || v.Model == "" {
			http.Error(w, "make and model required", http.StatusBadRequest)
			return
		}

		if file, header, err := r.FormFile("car_thumbnail"); err == nil {
			defer file.Close()
			ref, err := fs.Save("car_thumbnails", store.NormalizeRegNo(v.RegNo), header.Filename, file)
			if err != nil {
				http.Error(w, "thumbnail save failed: "+err.Error(), http.StatusInternalServerError)
				return
			}
			v.ThumbnailURL = ref
			if p, err := fs.Resolve(ref); err == nil {
				mr.Enqueue(p, filepath.Base(p))
			}
		}

		created, err := st.AddVehicle(v)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		lg.Infow("vehicle added", "reg_no", created.RegNo, "by", auth.Subject(r.Context()))
		respondJSON(w, created)
	}
}

// UpdateVehicle handles field edits and the identifier rename. A reg_no
// different from the URL id triggers the cross-table migration; a conflict
// leaves everything untouched.
func UpdateVehicle(st *store.Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		oldID := chi.URLParam(r, "id")
		var req struct {
			RegNo       *string `json:"reg_no"`
			Make        *string `json:"make"`
			Model       *string `json:"model"`
			Year        *int    `json:"year"`
			Color       *string `json:"color"`
			Description *string `json:"desc"`
			Status      *string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		newID := oldID
		if req.RegNo != nil {
			newID = *req.RegNo
		}
		v, err := st.UpdateVehicle(oldID, newID, store.VehicleUpdate{
			Make:        req.Make,
			Model:       req.Model,
			Year:        req.Year,
			Color:       req.Color,
			Description: req.Description,
			Status:      req.Status,
		})
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if v.RegNo != store.NormalizeRegNo(oldID) {
			lg.Infow("vehicle renamed", "from", oldID, "to", v.RegNo, "by", auth.Subject(r.Context()))
		}
		respondJSON(w, v)
	}
}

func orEmptyDocs(d []models.Document) []models.Document {
	if d == nil {
		return []models.Document{}
	}
	return d
}

func orEmptyLogs(l []models.FuelLog) []models.FuelLog {
	if l == nil {
		return []models.FuelLog{}
	}
	return l
}

func orEmptyMaint(m []models.MaintenanceRecord) []models.MaintenanceRecord {
	if m == nil {
		return []models.MaintenanceRecord{}
	}
	return m
}

func orEmptyAssign(a []models.Assignment) []models.Assignment {
	if a == nil {
		return []models.Assignment{}
	}
	return a
}
