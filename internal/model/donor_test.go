package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonorValidate(t *testing.T) {
	full := Donor{Name: "Asha", BloodGroup: "O+", Phone: "555-0100", Location: "Delhi"}
	assert.NoError(t, full.Validate())

	missing := map[string]func(*Donor){
		"name":        func(d *Donor) { d.Name = "" },
		"blood group": func(d *Donor) { d.BloodGroup = "" },
		"phone":       func(d *Donor) { d.Phone = "  " },
		"location":    func(d *Donor) { d.Location = "" },
	}
	for field, blank := range missing {
		t.Run(field, func(t *testing.T) {
			d := full
			blank(&d)
			assert.ErrorIs(t, d.Validate(), ErrMissingFields)
		})
	}
}

func TestDonorValidateIgnoresOptionalFields(t *testing.T) {
	d := Donor{Name: "Asha", BloodGroup: "XYZ", Phone: "1", Location: "Pune"}
	assert.NoError(t, d.Validate())
	assert.Nil(t, d.Age)
	assert.Nil(t, d.LastDonationDate)
}

func TestIsKnownBloodGroup(t *testing.T) {
	assert.True(t, IsKnownBloodGroup("AB-"))
	assert.False(t, IsKnownBloodGroup("ab-"))
	assert.False(t, IsKnownBloodGroup("C+"))
}
