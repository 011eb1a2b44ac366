package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Identity is the authenticated user as reported by the backend's
// "who am I" endpoint. It carries no token; see Session.
type Identity struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Surname string `json:"surname,omitempty"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Avatar  string `json:"avatar,omitempty"`
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i *Identity) IsClient() bool {
	return i.Role == RoleClient
}

// Session pairs an identity with the opaque bearer token issued for it.
// Exactly one session is held process-wide at a time.
type Session struct {
	Identity Identity
	Token    string
}

// Profile holds the coach-maintained training profile of a client.
type Profile struct {
	Objectives  []string `json:"objectives,omitempty"`
	Limitations []string `json:"limitations,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// User is a managed client account. InviteCode is only present while the
// account has not been activated yet; activation consumes it.
type User struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Surname    string  `json:"surname,omitempty"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Avatar     string  `json:"avatar,omitempty"`
	InviteCode string  `json:"inviteCode,omitempty"`
	Profile    Profile `json:"profile"`
}

func (u *User) FullName() string {
	if u.Surname == "" {
		return u.Name
	}
	return u.Name + " " + u.Surname
}
