package core

import (
	"regexp"
	"strings"
	"time"
)

// Validation mirrors the submission rules of the original forms: checks run
// in a fixed order and the first failing rule wins, so callers always get a
// single user-facing reason. Nothing here reads or writes storage.

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateVehicle checks a vehicle candidate for creation.
func ValidateVehicle(v Vehicle, now time.Time) error {
	if strings.TrimSpace(v.Name) == "" ||
		strings.TrimSpace(v.Brand) == "" ||
		strings.TrimSpace(v.Plate) == "" ||
		v.Year == 0 ||
		v.TankCapacity == 0 ||
		v.Insurance.IsZero() {
		return ErrMissingFields
	}
	if len(v.Plate) < 4 {
		return ErrInvalidPlate
	}
	if v.Year < 1980 || v.Year > now.Year() {
		return ErrInvalidYear
	}
	if v.TankCapacity <= 10 {
		return ErrInvalidTankCapacity
	}
	if v.StartKilometers < 0 {
		return ErrInvalidStartOdometer
	}
	if !v.FuelType.IsValid() {
		return ErrInvalidFuelType
	}
	return nil
}

// ValidateVehicleEdit checks an edited vehicle against the entries already
// recorded for it: the starting odometer cannot move past mileage that is
// already on file.
func ValidateVehicleEdit(v Vehicle, entries []FuelEntry, now time.Time) error {
	if err := ValidateVehicle(v, now); err != nil {
		return err
	}
	minKm, found := 0, false
	for _, e := range entries {
		if e.VehicleID != v.ID {
			continue
		}
		if !found || e.Kilometers < minKm {
			minKm = e.Kilometers
			found = true
		}
	}
	if found && v.StartKilometers > minKm {
		return ErrStartAboveRecorded
	}
	return nil
}

// ValidateFuelEntry checks a fuel-up candidate against its vehicle and the
// entries already recorded for that vehicle (odometer continuity).
func ValidateFuelEntry(e FuelEntry, v Vehicle, existing []FuelEntry) error {
	if e.Liters <= 0 || e.Kilometers <= 0 {
		return ErrInvalidFuelAmount
	}
	if e.Cost != nil && *e.Cost < 0 {
		return ErrNegativeCost
	}
	if e.Kilometers < v.StartKilometers {
		return ErrOdometerBelowStart
	}
	for _, prev := range existing {
		if prev.VehicleID != v.ID {
			continue
		}
		if e.Kilometers < prev.Kilometers {
			return ErrOdometerBelowPrevious
		}
	}
	if v.TankCapacity > 0 && e.Liters > v.TankCapacity {
		return ErrExceedsTankCapacity
	}
	return nil
}

// ValidateRegistration checks a registration form.
func ValidateRegistration(name, email, password, repeat string) error {
	if name == "" || email == "" || password == "" || repeat == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrShortPassword
	}
	if password != repeat {
		return ErrPasswordMismatch
	}
	return nil
}

// ValidateLoginInput checks login form fields before any account lookup.
func ValidateLoginInput(email, password string) error {
	if email == "" || password == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	if len(password) < 6 {
		return ErrShortPassword
	}
	return nil
}
