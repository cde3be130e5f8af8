package core

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func validVehicle() Vehicle {
	return Vehicle{
		ID:              "1700000000000",
		Name:            "Panda",
		Brand:           "Fiat",
		Plate:           "AB123CD",
		Year:            2019,
		TankCapacity:    38,
		Insurance:       NewDate(2026, 3, 1),
		FuelType:        PetrolLPG,
		StartKilometers: 10000,
	}
}

func TestValidateVehicle(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Vehicle)
		wantErr error
	}{
		{"valid", func(v *Vehicle) {}, nil},
		{"missing name", func(v *Vehicle) { v.Name = "  " }, ErrMissingFields},
		{"missing brand", func(v *Vehicle) { v.Brand = "" }, ErrMissingFields},
		{"missing plate", func(v *Vehicle) { v.Plate = "" }, ErrMissingFields},
		{"missing year", func(v *Vehicle) { v.Year = 0 }, ErrMissingFields},
		{"missing tank", func(v *Vehicle) { v.TankCapacity = 0 }, ErrMissingFields},
		{"missing insurance", func(v *Vehicle) { v.Insurance = Date{} }, ErrMissingFields},
		{"short plate", func(v *Vehicle) { v.Plate = "AB1" }, ErrInvalidPlate},
		{"year too old", func(v *Vehicle) { v.Year = 1979 }, ErrInvalidYear},
		{"year in future", func(v *Vehicle) { v.Year = testNow.Year() + 1 }, ErrInvalidYear},
		{"year boundary low", func(v *Vehicle) { v.Year = 1980 }, nil},
		{"year boundary current", func(v *Vehicle) { v.Year = testNow.Year() }, nil},
		{"tank too small", func(v *Vehicle) { v.TankCapacity = 10 }, ErrInvalidTankCapacity},
		{"negative start odometer", func(v *Vehicle) { v.StartKilometers = -1 }, ErrInvalidStartOdometer},
		{"zero start odometer", func(v *Vehicle) { v.StartKilometers = 0 }, nil},
		{"unknown fuel type", func(v *Vehicle) { v.FuelType = "kerosene" }, ErrInvalidFuelType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVehicle()
			tt.mutate(&v)
			err := ValidateVehicle(v, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateVehicle() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateVehicle_FirstRuleWins(t *testing.T) {
	// Both the plate and the year are invalid; the plate rule runs first.
	v := validVehicle()
	v.Plate = "AB1"
	v.Year = 1950

	if err := ValidateVehicle(v, testNow); !errors.Is(err, ErrInvalidPlate) {
		t.Errorf("ValidateVehicle() = %v, want %v", err, ErrInvalidPlate)
	}
}

func TestValidateVehicleEdit(t *testing.T) {
	entries := []FuelEntry{
		{ID: "e1", VehicleID: "1700000000000", Liters: 8, Kilometers: 10200},
		{ID: "e2", VehicleID: "1700000000000", Liters: 7, Kilometers: 10500},
		{ID: "e3", VehicleID: "other", Liters: 5, Kilometers: 50},
	}

	tests := []struct {
		name    string
		startKm int
		wantErr error
	}{
		{"below lowest entry", 10000, nil},
		{"equal to lowest entry", 10200, nil},
		{"above lowest entry", 10201, ErrStartAboveRecorded},
		{"other vehicle entries ignored", 10100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validVehicle()
			v.StartKilometers = tt.startKm
			err := ValidateVehicleEdit(v, entries, testNow)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateVehicleEdit() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateVehicleEdit_NoEntries(t *testing.T) {
	v := validVehicle()
	v.StartKilometers = 999999

	if err := ValidateVehicleEdit(v, nil, testNow); err != nil {
		t.Errorf("ValidateVehicleEdit() = %v, want nil", err)
	}
}

func TestValidateFuelEntry(t *testing.T) {
	v := validVehicle()
	existing := []FuelEntry{
		{ID: "e1", VehicleID: v.ID, Liters: 8, Kilometers: 10200},
	}
	negative := -1.0
	cost := 12.5

	tests := []struct {
		name    string
		entry   FuelEntry
		wantErr error
	}{
		{"valid", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 10500, Cost: &cost}, nil},
		{"valid without cost", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 10500}, nil},
		{"zero liters", FuelEntry{VehicleID: v.ID, Liters: 0, Kilometers: 10500}, ErrInvalidFuelAmount},
		{"zero odometer", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 0}, ErrInvalidFuelAmount},
		{"negative cost", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 10500, Cost: &negative}, ErrNegativeCost},
		{"below starting odometer", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 9900}, ErrOdometerBelowStart},
		{"below previous fuel-up", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 10100}, ErrOdometerBelowPrevious},
		{"equal to previous fuel-up", FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 10200}, nil},
		{"over tank capacity", FuelEntry{VehicleID: v.ID, Liters: 38.5, Kilometers: 10500}, ErrExceedsTankCapacity},
		{"exactly tank capacity", FuelEntry{VehicleID: v.ID, Liters: 38, Kilometers: 10500}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFuelEntry(tt.entry, v, existing)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFuelEntry() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFuelEntry_OtherVehicleIgnored(t *testing.T) {
	v := validVehicle()
	existing := []FuelEntry{
		{ID: "e1", VehicleID: "other", Liters: 8, Kilometers: 99999},
	}
	e := FuelEntry{VehicleID: v.ID, Liters: 7, Kilometers: 10500}

	if err := ValidateFuelEntry(e, v, existing); err != nil {
		t.Errorf("ValidateFuelEntry() = %v, want nil", err)
	}
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name                           string
		userName, email, pass, repeat  string
		wantErr                        error
	}{
		{"valid", "Mario", "mario@example.com", "secret1", "secret1", nil},
		{"missing name", "", "mario@example.com", "secret1", "secret1", ErrMissingFields},
		{"missing email", "Mario", "", "secret1", "secret1", ErrMissingFields},
		{"bad email no at", "Mario", "mario.example.com", "secret1", "secret1", ErrInvalidEmail},
		{"bad email no dot", "Mario", "mario@example", "secret1", "secret1", ErrInvalidEmail},
		{"bad email whitespace", "Mario", "ma rio@example.com", "secret1", "secret1", ErrInvalidEmail},
		{"short password", "Mario", "mario@example.com", "abc12", "abc12", ErrShortPassword},
		{"six char password", "Mario", "mario@example.com", "abc123", "abc123", nil},
		{"mismatched repeat", "Mario", "mario@example.com", "secret1", "secret2", ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.userName, tt.email, tt.pass, tt.repeat)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRegistration() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateLoginInput(t *testing.T) {
	tests := []struct {
		name        string
		email, pass string
		wantErr     error
	}{
		{"valid", "mario@example.com", "secret1", nil},
		{"missing email", "", "secret1", ErrMissingFields},
		{"missing password", "mario@example.com", "", ErrMissingFields},
		{"bad email", "mario@", "secret1", ErrInvalidEmail},
		{"short password", "mario@example.com", "abc", ErrShortPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLoginInput(tt.email, tt.pass)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateLoginInput() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
