package models

import "time"

// Staff is a non-teaching staff record from the 'staff' table
type Staff struct {
	ID                 int64     `json:"id"`
	StaffNumber        string    `json:"staff_number"`
	Name               string    `json:"name"`
	Department         string    `json:"department"`
	Role               string    `json:"role"`
	Picture            *string   `json:"picture"`
	Pincode            *string   `json:"pincode"`
	RegistrationStatus string    `json:"registration_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// StaffEntity describes the staff table
var StaffEntity = Entity{
	Namespace:        NamespaceStaff,
	Label:            "Staff",
	Table:            "staff",
	IdentifierColumn: "staff_number",
	PincodeColumn:    "pincode",
	Columns: []string{
		"id", "staff_number", "name", "department", "role",
		"picture", "pincode", "registration_status", "created_at", "updated_at",
	},
	FilterColumns: []string{"department", "role", "registration_status"},
	SearchColumns: []string{"staff_number", "name", "department", "role"},
	New:           func() Person { return &Staff{} },
}

func (s *Staff) GetID() int64        { return s.ID }
func (s *Staff) SetID(id int64)      { s.ID = id }
func (s *Staff) Identifier() string  { return s.StaffNumber }
func (s *Staff) PicturePath() string { return deref(s.Picture) }
func (s *Staff) SetPicture(p string) { s.Picture = optional(p) }

// Apply merges supplied fields. Staff pictures arrive as a path string, so
// picture is handled here too.
func (s *Staff) Apply(fields Fields) {
	for column, value := range fields {
		switch column {
		case "staff_number":
			s.StaffNumber = value
		case "name":
			s.Name = value
		case "department":
			s.Department = value
		case "role":
			s.Role = value
		case "picture":
			s.Picture = optional(value)
		case "pincode":
			s.Pincode = optional(value)
		case "registration_status":
			s.RegistrationStatus = value
		}
	}
}

func (s *Staff) Fields() Fields {
	return Fields{
		"staff_number":        s.StaffNumber,
		"name":                s.Name,
		"department":          s.Department,
		"role":                s.Role,
		"picture":             deref(s.Picture),
		"pincode":             deref(s.Pincode),
		"registration_status": s.RegistrationStatus,
	}
}

func (s *Staff) Values() map[string]interface{} {
	return map[string]interface{}{
		"staff_number":        s.StaffNumber,
		"name":                s.Name,
		"department":          s.Department,
		"role":                s.Role,
		"picture":             s.Picture,
		"pincode":             s.Pincode,
		"registration_status": s.RegistrationStatus,
	}
}

func (s *Staff) ScanTargets() []interface{} {
	return []interface{}{
		&s.ID, &s.StaffNumber, &s.Name, &s.Department, &s.Role,
		&s.Picture, &s.Pincode, &s.RegistrationStatus, &s.CreatedAt, &s.UpdatedAt,
	}
}
