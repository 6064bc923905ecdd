// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Authentication is delegated to an external identity provider, so the stable
// external identifier is AuthID (the provider's user ID, a UUID string). We
// still generate our own internal xid for consistency with the other models
// and to avoid tying our primary keys to a third party's numbering scheme.
//
// The UNIQUE constraint on auth_id in the DB ensures one provider account
// maps to exactly one local account — it is also what makes first-login
// provisioning safe under concurrent duplicate requests.
type User struct {
	ID             string    `json:"id"              db:"id"`
	AuthID         string    `json:"auth_id"         db:"auth_id"` // identity provider's user ID
	Email          string    `json:"email"           db:"email"`
	Name           string    `json:"name"            db:"name"`            // display name (may be empty)
	GitHubUsername string    `json:"github_username" db:"github_username"` // provider-linked handle (may be empty)
	CreatedAt      time.Time `json:"created_at"      db:"created_at"`
}
