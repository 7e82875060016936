package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// optionalInt accepts a JSON number, a numeric string, "" or null.  Browsers
// submitting the registration form send every value as a string.
type optionalInt struct {
	Set   bool
	Value int
}

func (o *optionalInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*o = optionalInt{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return o.UnmarshalParam(s)
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*o = optionalInt{Set: true, Value: n}
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for form and query values.
func (o *optionalInt) UnmarshalParam(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*o = optionalInt{}
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*o = optionalInt{Set: true, Value: n}
	return nil
}

func (o optionalInt) ptr() *int {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

type createDonorReq struct {
	Name             string      `json:"name" form:"name"`
	BloodGroup       string      `json:"blood_group" form:"blood_group"`
	Phone            string      `json:"phone" form:"phone"`
	Location         string      `json:"location" form:"location"`
	LastDonationDate string      `json:"last_donation_date" form:"last_donation_date"`
	Age              optionalInt `json:"age" form:"age"`
}

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}
