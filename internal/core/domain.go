package core

import (
	"errors"
	"strconv"
	"time"
)

const (
	PetrolLPG FuelType = "lpg+petrol"
	Petrol    FuelType = "petrol"
	Diesel    FuelType = "diesel"
)

type (
	FuelType string

	// Date is a day-granular date serialized as YYYY-MM-DD, used for the
	// insurance expiry field.
	Date struct {
		time.Time
	}

	// Vehicle is one registered vehicle. Records are scoped per user email
	// by the storage layer and mutated only through explicit edits.
	Vehicle struct {
		ID              string   `json:"id"`
		Name            string   `json:"name"`
		Brand           string   `json:"brand"`
		Plate           string   `json:"plate"`
		Year            int      `json:"year"`
		TankCapacity    float64  `json:"tankCapacity"`
		Insurance       Date     `json:"insurance"`
		FuelType        FuelType `json:"fuelType"`
		StartKilometers int      `json:"startKilometers"`
	}

	// FuelEntry is one recorded refueling event. Entries are immutable after
	// creation and removed only when their vehicle is deleted.
	FuelEntry struct {
		ID         string    `json:"id"`
		VehicleID  string    `json:"vehicleId"`
		Liters     float64   `json:"liters"`
		Kilometers int       `json:"kilometers"`
		Date       time.Time `json:"date"`
		Cost       *float64  `json:"cost,omitempty"`
	}

	// Account is a locally registered user. The password is stored and
	// compared in plaintext, matching the storage contract of the source data.
	Account struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	// Session identifies the currently logged-in user. Its lifecycle is
	// independent of the accounts list.
	Session struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
)

var (
	ErrMissingFields        = errors.New("all fields are required")
	ErrInvalidPlate         = errors.New("license plate must be at least 4 characters")
	ErrInvalidYear          = errors.New("model year must be a 4-digit year between 1980 and the current year")
	ErrInvalidTankCapacity  = errors.New("tank capacity must be greater than 10 liters")
	ErrInvalidStartOdometer = errors.New("starting odometer must be zero or a positive integer")
	ErrInvalidFuelType      = errors.New("unknown fuel type")
	ErrStartAboveRecorded   = errors.New("starting odometer cannot exceed the lowest recorded fuel-up odometer")

	ErrInvalidFuelAmount     = errors.New("liters and odometer reading must be positive")
	ErrNegativeCost          = errors.New("cost cannot be negative")
	ErrOdometerBelowStart    = errors.New("odometer reading is below the vehicle's starting odometer")
	ErrOdometerBelowPrevious = errors.New("odometer reading is below a previous fuel-up")
	ErrExceedsTankCapacity   = errors.New("liters exceed the vehicle's tank capacity")

	ErrInvalidEmail       = errors.New("invalid email address")
	ErrShortPassword      = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// FuelTypes lists the supported fuel types in display order.
func FuelTypes() []FuelType {
	return []FuelType{PetrolLPG, Petrol, Diesel}
}

func (ft FuelType) IsValid() bool {
	switch ft {
	case PetrolLPG, Petrol, Diesel:
		return true
	}
	return false
}

func (ft FuelType) String() string {
	return string(ft)
}

// NewID generates a record identifier from the given instant, millisecond
// precision. Matches the timestamp identifiers used in stored data.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

const dateLayout = "2006-01-02"

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// HasCost reports whether a cost was supplied for the entry.
func (e FuelEntry) HasCost() bool {
	return e.Cost != nil
}

// CostValue returns the entry cost, treating a missing cost as 0.
func (e FuelEntry) CostValue() float64 {
	if e.Cost == nil {
		return 0
	}
	return *e.Cost
}
