package user

import "usertables-generator/pkg/date"

// Bounds for fields filled in locally after a record is produced.
const (
	MinPostalCode = 100000  // MinPostalCode is the lowest postal index (inclusive)
	MaxPostalCode = 1000000 // MaxPostalCode is the upper postal index bound (exclusive)
	MaxApartment  = 300     // MaxApartment is the highest apartment number (inclusive)
	MaxHouse      = 200     // MaxHouse is the highest locally generated house number (inclusive)
)

// Gender of a generated user.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// User represents a generated user record.
type User struct {
	ID          int64     // ID is assigned by the store on insert, 0 if not persisted
	Name        string    // Name is the given name
	Surname     string    // Surname is the family name
	Patronymic  string    // Patronymic is the father-derived middle name
	Gender      Gender    // Gender of the user
	DateOfBirth date.Date // DateOfBirth is the birth date
	Age         int       // Age is the number of whole years since DateOfBirth
	PostalCode  int       // PostalCode is in [MinPostalCode, MaxPostalCode)
	Country     string    // Country is picked from the loaded country list
	Region      string    // Region or state
	City        string    // City name
	Street      string    // Street name
	House       int       // House number
	Apartment   int       // Apartment is in [1, MaxApartment]
	TaxID       string    // TaxID is the individual taxpayer number
}
