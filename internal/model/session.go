package model

// Session identifies the logged-in user. It is display-only: nothing in the
// wallet engine or the assistant makes decisions based on it.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// DisplayName returns the name when set, otherwise the email.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}
