package model

import "strings"

// Role mirrors the remote API's tipo field: G for gestor (staff manager),
// P for professor. The client only uses it to hide affordances; the server
// is the enforcement point.
type Role string

const (
	RoleManager Role = "G"
	RoleTeacher Role = "P"
)

func (r Role) IsManager() bool {
	return r == RoleManager
}

func (r Role) IsTeacher() bool {
	return r == RoleTeacher
}

func (r Role) Label() string {
	switch r {
	case RoleManager:
		return "Gestor"
	case RoleTeacher:
		return "Professor"
	default:
		return string(r)
	}
}

// User is the profile the remote API returns on login and from /usuarios/.
// JSON names match the API exactly; dates travel as YYYY-MM-DD strings.
type User struct {
	ID        int    `json:"id,omitempty"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"telefone,omitempty"`
	Role      Role   `json:"tipo"`
	NI        int    `json:"ni,omitempty"`
	BirthDate string `json:"data_nascimento,omitempty"`
	HireDate  string `json:"data_contratacao,omitempty"`

	// Password is only ever set on create/update requests, never stored.
	Password string `json:"password,omitempty"`
}

func (u User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
