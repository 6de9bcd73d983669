package models

import "time"

const RoleAdmin = "admin"

// User is an account record. PasswordHash is persisted inside the snapshot
// but must never reach an API response: handlers marshal explicit views,
// never the struct itself.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_date"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Vehicle is keyed in the snapshot by its registration number. RegNo is the
// join key for every dependent table; changing it goes through the store's
// rename migration, never through a plain field write.
type Vehicle struct {
	RegNo        string    `json:"reg_no"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Color        string    `json:"color"`
	Odometer     float64   `json:"odo"`
	Description  string    `json:"desc"`
	Garage       string    `json:"garage"`
	Status       string    `json:"status,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_date"`
}

// Assignment ties a driver to a vehicle over an inclusive calendar-date
// range. Dates are YYYY-MM-DD strings; end >= start is deliberately not
// enforced and overlapping ranges are allowed (first match in list order
// wins at resolution time).
type Assignment struct {
	VehicleID    string    `json:"vehicle_id"`
	Driver       string    `json:"driver"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	AssignedBy   string    `json:"assigned_by"`
	CreatedAt    time.Time `json:"created_at"`
	CalendarLink string    `json:"calendar_link,omitempty"`
}

// FuelLog entries live in a per-vehicle list; the map key carries the
// vehicle id. Distance and Efficiency are derived at record time.
type FuelLog struct {
	PrevOdometer float64 `json:"prev_odo"`
	CurrOdometer float64 `json:"curr_odo"`
	Liters       float64 `json:"liters"`
	Distance     float64 `json:"distance"`
	Efficiency   float64 `json:"fuel_efficiency"`
	Date         string  `json:"date"`
	RecordedBy   string  `json:"recorded_by"`
}

// Document is append-only; entries are never edited after upload.
type Document struct {
	Type             string    `json:"type"`
	Expiry           string    `json:"expiry,omitempty"`
	FileURL          string    `json:"document_url"`
	OriginalFilename string    `json:"original_filename"`
	Notes            string    `json:"notes,omitempty"`
	UploadedBy       string    `json:"uploaded_by"`
	UploadedAt       time.Time `json:"uploaded_date"`
	MirrorRef        string    `json:"mirror_ref,omitempty"`
}

type MaintenanceRecord struct {
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	Date        string    `json:"date"`
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot is the whole persisted state: six tables serialized as one JSON
// object and overwritten atomically on every mutation. Version 1 is the
// first versioned layout; a snapshot without a version field is read as
// version 1 since the shape is identical.
type Snapshot struct {
	Version     int                            `json:"version"`
	Users       map[string]User                `json:"users"`
	Vehicles    map[string]Vehicle             `json:"vehicles"`
	Assignments []Assignment                   `json:"assignments"`
	FuelLogs    map[string][]FuelLog           `json:"fuel_logs"`
	Documents   map[string][]Document          `json:"documents"`
	Maintenance map[string][]MaintenanceRecord `json:"maintenance_records"`
}

const SnapshotVersion = 1

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:     SnapshotVersion,
		Users:       map[string]User{},
		Vehicles:    map[string]Vehicle{},
		Assignments: []Assignment{},
		FuelLogs:    map[string][]FuelLog{},
		Documents:   map[string][]Document{},
		Maintenance: map[string][]MaintenanceRecord{},
	}
}
