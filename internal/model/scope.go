package model

// Scope identifies the caller on whose behalf a use case runs.
type Scope struct {
	UserID   string
	Username string
}
