package model

import (
	"errors"
	"strings"
)

// ErrMissingFields is returned by Donor.Validate when one of the required
// text fields is empty.  Handlers translate it into HTTP 400.
var ErrMissingFields = errors.New("missing required field")

// KnownBloodGroups lists the groups the front end offers.  The store does not
// enforce membership.
var KnownBloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Donor represents a row of the `blood_donors` table.  The JSON names match
// the column names so listings serialize exactly as stored.
//
// Fields:
//
//	ID               – primary key, assigned by the store.
//	Name             – donor name, required.
//	BloodGroup       – one of KnownBloodGroups by convention, required.
//	Phone            – contact number, required.
//	Location         – free-text city or area, required.
//	LastDonationDate – ISO-like date string, nullable.
//	Age              – nullable.
type Donor struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	BloodGroup       string  `json:"blood_group"`
	Phone            string  `json:"phone"`
	Location         string  `json:"location"`
	LastDonationDate *string `json:"last_donation_date"`
	Age              *int    `json:"age"`
}

// Validate checks that every required field is present and not blank.
func (d Donor) Validate() error {
	for _, v := range []string{d.Name, d.BloodGroup, d.Phone, d.Location} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	return nil
}

// IsKnownBloodGroup reports whether g is one of KnownBloodGroups.
func IsKnownBloodGroup(g string) bool {
	for _, k := range KnownBloodGroups {
		if k == g {
			return true
		}
	}
	return false
}

// DonorFilter narrows a donor listing.  Empty fields impose no constraint;
// set fields are combined with AND.
type DonorFilter struct {
	BloodGroup string // exact match
	Location   string // case-insensitive substring
}
