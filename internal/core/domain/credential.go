package domain

// Credential holds the password hash of a user. Its ID is the owning user's ID
// and the hash is the only field that ever changes.
type Credential struct {
	ID       string `json:"-"`
	Password string `json:"-"`
}
