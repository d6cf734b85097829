package models

// RoleType defines the admin user role type
type RoleType string

// RoleAdmin is the only role the users endpoint stores.
const RoleAdmin RoleType = "Admin"

// Registration states. The column is an open string; only the default is
// assigned by this service.
const (
	RegistrationUnregistered = "Unregistered"
	RegistrationRegistered   = "Registered"
)

// Namespace is one of the person-identifier tables that share a single
// identifier space.
type Namespace string

const (
	NamespaceStudents Namespace = "students"
	NamespaceFaculty  Namespace = "faculty"
	NamespaceStaff    Namespace = "staff"
)

// RegistryOrder is the order identifier lookups run in. The first table that
// reports a match is the one named in the conflict.
var RegistryOrder = []Namespace{NamespaceStudents, NamespaceFaculty, NamespaceStaff}

// Noun returns the singular word used in messages ("student", "faculty", "staff").
func (n Namespace) Noun() string {
	switch n {
	case NamespaceStudents:
		return "student"
	case NamespaceFaculty:
		return "faculty"
	case NamespaceStaff:
		return "staff"
	default:
		return string(n)
	}
}
