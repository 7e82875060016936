package model

// Admin represents a row in the `admins` table.  The password is stored and
// compared in clear text; this must be replaced by a hash before the service
// is exposed beyond an internal network.
type Admin struct {
	ID       int64  // admins.id
	Username string // admins.username (unique)
	Password string // admins.password
}
