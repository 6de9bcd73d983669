package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/models"
)

const dateLayout = "2006-01-02"

// Bootstrap credentials seeded when the user table is empty. This is a
// first-run convenience only, NOT a security boundary: rotate or disable
// the account immediately after provisioning. The store logs a warning
// every time it seeds.
const (
	bootstrapAdminUser     = "admin"
	bootstrapAdminPassword = "adminpass"
)

// MirrorFunc receives the snapshot path after every successful local save.
// Implementations must be non-blocking; the store never waits on them.
type MirrorFunc func(localPath, remoteName string)

// Store owns the whole in-memory state. One RWMutex serializes every
// mutation (the rename migration rewrites five tables in one critical
// section); reads copy out, never alias guarded state.
type Store struct {
	mu     sync.RWMutex
	path   string
	state  *models.Snapshot
	lg     *zap.SugaredLogger
	mirror MirrorFunc
}

// Open loads the snapshot at path. A missing file or any decode failure
// falls back to an empty state: a decode failure is a data-loss risk and is
// logged as an error, not hidden. If the user table ends up empty the
// bootstrap administrator is seeded and the snapshot saved.
func Open(path string, lg *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: path, state: models.NewSnapshot(), lg: lg}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		lg.Infow("no snapshot found, starting empty", "path", path)
	case err != nil:
		lg.Errorw("snapshot read failed, starting empty (data-loss risk)", "path", path, "error", err)
	default:
		var snap models.Snapshot
		if err := json.Unmarshal(b, &snap); err != nil {
			lg.Errorw("snapshot decode failed, starting empty (data-loss risk)", "path", path, "error", err)
		} else {
			normalize(&snap)
			s.state = &snap
		}
	}

	if len(s.state.Users) == 0 {
		s.seedBootstrapAdmin()
	}
	return s, nil
}

// SetMirror installs the best-effort snapshot mirror hook.
func (s *Store) SetMirror(fn MirrorFunc) {
	s.mu.Lock()
	s.mirror = fn
	s.mu.Unlock()
}

func (s *Store) seedBootstrapAdmin() {
	hash, err := auth.HashPassword(bootstrapAdminPassword)
	if err != nil {
		s.lg.Errorw("bootstrap admin hash failed", "error", err)
		return
	}
	s.state.Users[bootstrapAdminUser] = models.User{
		Username:     bootstrapAdminUser,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	s.lg.Warnw("seeded bootstrap administrator with the well-known default password; rotate it now",
		"username", bootstrapAdminUser)
	s.saveLocked()
}

// normalize fills nil tables so older or hand-edited snapshots load
// cleanly. A snapshot without a version field predates versioning and is
// layout-identical to version 1.
func normalize(snap *models.Snapshot) {
	if snap.Version == 0 {
		snap.Version = models.SnapshotVersion
	}
	if snap.Users == nil {
		snap.Users = map[string]models.User{}
	}
	if snap.Vehicles == nil {
		snap.Vehicles = map[string]models.Vehicle{}
	}
	if snap.Assignments == nil {
		snap.Assignments = []models.Assignment{}
	}
	if snap.FuelLogs == nil {
		snap.FuelLogs = map[string][]models.FuelLog{}
	}
	if snap.Documents == nil {
		snap.Documents = map[string][]models.Document{}
	}
	if snap.Maintenance == nil {
		snap.Maintenance = map[string][]models.MaintenanceRecord{}
	}
}

// saveLocked overwrites the whole snapshot atomically (temp file + rename).
// Callers must hold the write lock. A save failure is logged and the
// in-memory mutation stands: durability is lost until the next successful
// save, which is a documented asymmetry, not a rollback.
func (s *Store) saveLocked() {
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		s.lg.Errorw("snapshot encode failed", "error", err)
		return
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		s.lg.Errorw("snapshot write failed, mutation kept in memory only", "path", s.path, "error", err)
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.lg.Errorw("snapshot rename failed, mutation kept in memory only", "path", s.path, "error", err)
		return
	}
	if s.mirror != nil {
		s.mirror(s.path, filepath.Base(s.path))
	}
}

// ─── Reads ──────────────────────────────────────────────────────────────

func (s *Store) GetUser(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.state.Users[username]
	return u, ok
}

func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.state.Users))
	for _, u := range s.state.Users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users
}

func (s *Store) GetVehicle(id string) (models.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state.Vehicles[id]
	return v, ok
}

func (s *Store) Vehicles() map[string]models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Vehicle, len(s.state.Vehicles))
	for k, v := range s.state.Vehicles {
		out[k] = v
	}
	return out
}

func (s *Store) ListVehicles() []models.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vs := make([]models.Vehicle, 0, len(s.state.Vehicles))
	for _, v := range s.state.Vehicles {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool {
		if !vs[i].CreatedAt.Equal(vs[j].CreatedAt) {
			return vs[i].CreatedAt.After(vs[j].CreatedAt)
		}
		return vs[i].RegNo < vs[j].RegNo
	})
	return vs
}

func (s *Store) Assignments() []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Assignment(nil), s.state.Assignments...)
}

func (s *Store) AssignmentsFor(vehicleID string) []models.Assignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Assignment
	for _, a := range s.state.Assignments {
		if a.VehicleID == vehicleID {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) FuelLogs(vehicleID string) []models.FuelLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.FuelLog(nil), s.state.FuelLogs[vehicleID]...)
}

func (s *Store) Documents(vehicleID string) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Document(nil), s.state.Documents[vehicleID]...)
}

func (s *Store) AllDocuments() map[string][]models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]models.Document, len(s.state.Documents))
	for k, docs := range s.state.Documents {
		out[k] = append([]models.Document(nil), docs...)
	}
	return out
}

func (s *Store) Maintenance(vehicleID string) []models.MaintenanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MaintenanceRecord(nil), s.state.Maintenance[vehicleID]...)
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := models.Snapshot{
		Version:     s.state.Version,
		Users:       make(map[string]models.User, len(s.state.Users)),
		Vehicles:    make(map[string]models.Vehicle, len(s.state.Vehicles)),
		Assignments: append([]models.Assignment(nil), s.state.Assignments...),
		FuelLogs:    make(map[string][]models.FuelLog, len(s.state.FuelLogs)),
		Documents:   make(map[string][]models.Document, len(s.state.Documents)),
		Maintenance: make(map[string][]models.MaintenanceRecord, len(s.state.Maintenance)),
	}
	for k, v := range s.state.Users {
		snap.Users[k] = v
	}
	for k, v := range s.state.Vehicles {
		snap.Vehicles[k] = v
	}
	for k, v := range s.state.FuelLogs {
		snap.FuelLogs[k] = append([]models.FuelLog(nil), v...)
	}
	for k, v := range s.state.Documents {
		snap.Documents[k] = append([]models.Document(nil), v...)
	}
	for k, v := range s.state.Maintenance {
		snap.Maintenance[k] = append([]models.MaintenanceRecord(nil), v...)
	}
	return snap
}

// ─── Mutations ──────────────────────────────────────────────────────────

// NormalizeRegNo canonicalizes a registration number the way every entry
// point must: trimmed and upper-cased.
func NormalizeRegNo(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func (s *Store) AddVehicle(v models.Vehicle) (models.Vehicle, error) {
	v.RegNo = NormalizeRegNo(v.RegNo)
	if v.RegNo == "" {
		return models.Vehicle{}, &ValidationError{Field: "reg_no", Reason: "required"}
	}
	if v.Garage == "" {
		v.Garage = "Inanis Garage"
	}
	v.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.state.Vehicles[v.RegNo]; exists {
		return models.Vehicle{}, &ConflictError{ID: v.RegNo}
	}
	s.state.Vehicles[v.RegNo] = v
	s.saveLocked()
	return v, nil
}

// AddAssignment validates date formats only; end >= start and overlap with
// existing assignments are deliberately not enforced. Returns the stored
// assignment and its index in the assignment list.
func (s *Store) AddAssignment(a models.Assignment) (models.Assignment, int, error) {
	a.VehicleID = NormalizeRegNo(a.VehicleID)
	if strings.TrimSpace(a.Driver) == "" {
		return models.Assignment{}, 0, &ValidationError{Field: "driver", Reason: "required"}
	}
	if _, err := time.Parse(dateLayout, a.StartDate); err != nil {
		return models.Assignment{}, 0, &ValidationError{Field: "start_date", Reason: "want YYYY-MM-DD"}
	}
	if _, err := time.Parse(dateLayout, a.EndDate); err != nil {
		return models.Assignment{}, 0, &ValidationError{Field: "end_date", Reason: "want YYYY-MM-DD"}
	}
	a.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Vehicles[a.VehicleID]; !ok {
		return models.Assignment{}, 0, &NotFoundError{Kind: "vehicle", ID: a.VehicleID}
	}
	s.state.Assignments = append(s.state.Assignments, a)
	s.saveLocked()
	return a, len(s.state.Assignments) - 1, nil
}

// AttachCalendarLink records the external calendar link on an assignment
// after the fact. The notifier calls this from its own goroutine; a stale
// index (list shrank, which cannot happen today) is ignored.
func (s *Store) AttachCalendarLink(index int, link string) {
	if link == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.state.Assignments) {
		return
	}
	s.state.Assignments[index].CalendarLink = link
	s.saveLocked()
}

func (s *Store) AddDocument(vehicleID string, d models.Document) (models.Document, error) {
	vehicleID = NormalizeRegNo(vehicleID)
	if strings.TrimSpace(d.Type) == "" {
		return models.Document{}, &ValidationError{Field: "doc_type", Reason: "required"}
	}
	d.UploadedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Vehicles[vehicleID]; !ok {
		return models.Document{}, &NotFoundError{Kind: "vehicle", ID: vehicleID}
	}
	s.state.Documents[vehicleID] = append(s.state.Documents[vehicleID], d)
	s.saveLocked()
	return d, nil
}

func (s *Store) AddMaintenance(vehicleID string, m models.MaintenanceRecord) (models.MaintenanceRecord, error) {
	vehicleID = NormalizeRegNo(vehicleID)
	if strings.TrimSpace(m.Description) == "" {
		return models.MaintenanceRecord{}, &ValidationError{Field: "description", Reason: "required"}
	}
	if m.Date != "" {
		if _, err := time.Parse(dateLayout, m.Date); err != nil {
			return models.MaintenanceRecord{}, &ValidationError{Field: "date", Reason: "want YYYY-MM-DD"}
		}
	}
	m.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.state.Vehicles[vehicleID]; !ok {
		return models.MaintenanceRecord{}, &NotFoundError{Kind: "vehicle", ID: vehicleID}
	}
	s.state.Maintenance[vehicleID] = append(s.state.Maintenance[vehicleID], m)
	s.saveLocked()
	return m, nil
}

func (s *Store) AddUser(u models.User) error {
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return &ValidationError{Field: "username", Reason: "required"}
	}
	if u.PasswordHash == "" {
		return &ValidationError{Field: "password", Reason: "required"}
	}
	u.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.state.Users[u.Username]; exists {
		return &ConflictError{ID: u.Username}
	}
	s.state.Users[u.Username] = u
	s.saveLocked()
	return nil
}

func (s *Store) SetPassword(username, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.Users[username]
	if !ok {
		return &NotFoundError{Kind: "user", ID: username}
	}
	u.PasswordHash = passwordHash
	s.state.Users[username] = u
	s.saveLocked()
	return nil
}
