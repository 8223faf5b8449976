package entity

// User identifies an operator account. Only the username is ever exposed;
// the credential hash stays inside the auth store's blob.
type User struct {
	Username string `json:"username"`
}
