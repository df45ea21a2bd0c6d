package models

// User is a registered account. Username is the primary key; the
// case-sensitive exact string identifies the account everywhere.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don't expose hash
	Bio          string `json:"bio"`
}
