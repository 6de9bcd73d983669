package store

import (
	"testing"
)

func TestAddFuelLogRejectsNonIncreasingOdometer(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")

	_, err := s.AddFuelLog("KA01", 100, 100, 5, "2026-08-20", "admin")
	if err == nil {
		t.Fatalf("expected odometer validation error")
	}
	ve, ok := err.(*ValidationError)
	if !ok || ve.Field != "odometer" {
		t.Fatalf("expected ValidationError on odometer, got %v", err)
	}
	if len(s.FuelLogs("KA01")) != 0 {
		t.Fatalf("rejected log must not be appended")
	}
}

func TestAddFuelLogRejectsNonPositiveLiters(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")

	for _, liters := range []float64{0, -3} {
		_, err := s.AddFuelLog("KA01", 100, 150, liters, "2026-08-20", "admin")
		ve, ok := err.(*ValidationError)
		if !ok || ve.Field != "liters" {
			t.Fatalf("liters=%v: expected ValidationError on liters, got %v", liters, err)
		}
	}
}

func TestAddFuelLogComputesAndAdvancesOdometer(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")

	log, err := s.AddFuelLog("KA01", 100, 150, 5, "2026-08-20", "gura")
	if err != nil {
		t.Fatalf("AddFuelLog: %v", err)
	}
	if log.Distance != 50 {
		t.Fatalf("expected distance 50, got %v", log.Distance)
	}
	if log.Efficiency != 10.00 {
		t.Fatalf("expected efficiency 10.00, got %v", log.Efficiency)
	}
	v, _ := s.GetVehicle("KA01")
	if v.Odometer != 150 {
		t.Fatalf("expected odometer advanced to 150, got %v", v.Odometer)
	}
}

func TestAddFuelLogEfficiencyRounding(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")

	log, err := s.AddFuelLog("KA01", 100, 200, 3, "2026-08-20", "gura")
	if err != nil {
		t.Fatalf("AddFuelLog: %v", err)
	}
	if log.Efficiency != 33.33 {
		t.Fatalf("expected 33.33, got %v", log.Efficiency)
	}
}

func TestAddFuelLogRejectsMalformedDate(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")
	if _, err := s.AddFuelLog("KA01", 100, 150, 5, "20/08/2026", "gura"); err == nil {
		t.Fatalf("expected date validation error")
	}
}

func TestAverageEfficiency(t *testing.T) {
	s := testStore(t)
	addVehicle(t, s, "KA01")

	if _, ok := s.AverageEfficiency("KA01"); ok {
		t.Fatalf("expected no average without logs")
	}
	if _, err := s.AddFuelLog("KA01", 100, 150, 5, "2026-08-20", "gura"); err != nil {
		t.Fatalf("AddFuelLog: %v", err)
	}
	if _, err := s.AddFuelLog("KA01", 150, 250, 5, "2026-08-25", "gura"); err != nil {
		t.Fatalf("AddFuelLog: %v", err)
	}
	avg, ok := s.AverageEfficiency("KA01")
	if !ok || avg != 15 {
		t.Fatalf("expected average 15, got %v (ok=%v)", avg, ok)
	}
}
