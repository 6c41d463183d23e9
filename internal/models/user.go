package models

// User is the person signed in through OIDC. It lives in the session only;
// nothing about users is persisted.
type User struct {
	Sub   string `json:"sub"` // OIDC subject identifier
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DisplayName returns the best available label for the user.
func (u *User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.Sub
	}
}
