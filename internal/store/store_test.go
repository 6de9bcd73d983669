package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshot.json"), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func addVehicle(t *testing.T, s *Store, id string) models.Vehicle {
	t.Helper()
	v, err := s.AddVehicle(models.Vehicle{RegNo: id, Make: "Toyota", Model: "Hiace", Year: 2020, Odometer: 100})
	if err != nil {
		t.Fatalf("AddVehicle(%s): %v", id, err)
	}
	return v
}

func TestOpenSeedsBootstrapAdmin(t *testing.T) {
	s := testStore(t)
	u, ok := s.GetUser("admin")
	if !ok {
		t.Fatalf("expected seeded admin")
	}
	if !u.IsAdmin() {
		t.Fatalf("expected admin role, got %q", u.Role)
	}
	if err := auth.CheckPassword(u.PasswordHash, "adminpass"); err != nil {
		t.Fatalf("expected well-known bootstrap password to verify: %v", err)
	}
}

func TestOpenCorruptSnapshotFallsBackEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := Open(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(s.Vehicles()) != 0 {
		t.Fatalf("expected empty vehicle table")
	}
	if _, ok := s.GetUser("admin"); !ok {
		t.Fatalf("expected bootstrap admin after fallback")
	}
}

func TestAddVehicleConflictAndNormalization(t *testing.T) {
	s := testStore(t)
	v, err := s.AddVehicle(models.Vehicle{RegNo: " ka01ab ", Make: "Toyota", Model: "Hiace"})
	if err != nil {
		t.Fatalf("AddVehicle: %v", err)
	}
	if v.RegNo != "KA01AB" {
		t.Fatalf("expected normalized reg no, got %q", v.RegNo)
	}
	if v.Garage == "" {
		t.Fatalf("expected default garage name")
	}
	if _, err := s.AddVehicle(models.Vehicle{RegNo: "KA01AB", Make: "Honda", Model: "City"}); err == nil {
		t.Fatalf("expected conflict")
	} else if _, ok := err.(*ConflictError); !ok {
		t.Fatalf("expected ConflictError, got %T", err)
	}
}

func TestAddAssignmentValidation(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")

	if _, _, err := s.AddAssignment(models.Assignment{VehicleID: "KA01", Driver: "gura", StartDate: "soon", EndDate: "2026-09-01"}); err == nil {
		t.Fatalf("expected malformed start_date to fail")
	}
	if _, _, err := s.AddAssignment(models.Assignment{VehicleID: "KA99", Driver: "gura", StartDate: "2026-08-01", EndDate: "2026-09-01"}); err == nil {
		t.Fatalf("expected missing vehicle to fail")
	}
	// Inverted ranges are accepted; the model does not enforce end >= start.
	if _, _, err := s.AddAssignment(models.Assignment{VehicleID: "KA01", Driver: "gura", StartDate: "2026-09-01", EndDate: "2026-08-01"}); err != nil {
		t.Fatalf("inverted range should be accepted: %v", err)
	}
}

func TestAddUserConflict(t *testing.T) {
	s := testStore(t)
	u := models.User{Username: "gura", PasswordHash: "x", Role: "user"}
	if err := s.AddUser(u); err != nil {
		t.Fatalf("AddUser: %v", err)
	}
	if err := s.AddUser(u); err == nil {
		t.Fatalf("expected conflict on duplicate username")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")
	s, err := Open(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	addVehicle(t, s, "KA01")
	addVehicle(t, s, "KA02")
	if _, _, err := s.AddAssignment(models.Assignment{VehicleID: "KA01", Driver: "gura", StartDate: "2026-08-01", EndDate: "2026-09-01"}); err != nil {
		t.Fatalf("AddAssignment: %v", err)
	}
	if _, err := s.AddFuelLog("KA01", 100, 150, 5, "2026-08-20", "admin"); err != nil {
		t.Fatalf("AddFuelLog: %v", err)
	}
	if _, err := s.AddDocument("KA01", models.Document{Type: "Insurance", Expiry: "2026-09-15", FileURL: "/uploads/documents/x.pdf", OriginalFilename: "x.pdf", UploadedBy: "admin"}); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}
	if _, err := s.AddMaintenance("KA02", models.MaintenanceRecord{Description: "brake pads", Cost: 120, Date: "2026-08-10", RecordedBy: "admin"}); err != nil {
		t.Fatalf("AddMaintenance: %v", err)
	}

	persisted, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}

	// Reload and re-serialize: load(save(state)) must be lossless for all
	// six tables.
	s2, err := Open(path, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	snap := s2.Snapshot()
	reserialized, err := json.MarshalIndent(&snap, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(persisted) != string(reserialized) {
		t.Fatalf("round-trip not lossless:\npersisted:\n%s\nreserialized:\n%s", persisted, reserialized)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")
	vs := s.Vehicles()
	vs["KA01"] = models.Vehicle{RegNo: "HACKED"}
	if v, _ := s.GetVehicle("KA01"); v.RegNo != "KA01" {
		t.Fatalf("store state leaked through read accessor")
	}
}
