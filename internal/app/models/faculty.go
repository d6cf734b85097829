package models

import "time"

// Faculty is a faculty member record from the 'faculty' table
type Faculty struct {
	ID                 int64     `json:"id"`
	FacultyNumber      string    `json:"faculty_number"`
	Name               string    `json:"name"`
	Department         string    `json:"department"`
	Program            string    `json:"program"`
	Picture            *string   `json:"picture"`
	Pincode            *string   `json:"pincode"`
	RegistrationStatus string    `json:"registration_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FacultyEntity describes the faculty table
var FacultyEntity = Entity{
	Namespace:        NamespaceFaculty,
	Label:            "Faculty",
	Table:            "faculty",
	IdentifierColumn: "faculty_number",
	PincodeColumn:    "pincode",
	Columns: []string{
		"id", "faculty_number", "name", "department", "program",
		"picture", "pincode", "registration_status", "created_at", "updated_at",
	},
	FilterColumns: []string{"department", "program", "registration_status", "pincode"},
	SearchColumns: []string{"faculty_number", "name", "department", "program", "pincode"},
	New:           func() Person { return &Faculty{} },
}

func (f *Faculty) GetID() int64        { return f.ID }
func (f *Faculty) SetID(id int64)      { f.ID = id }
func (f *Faculty) Identifier() string  { return f.FacultyNumber }
func (f *Faculty) PicturePath() string { return deref(f.Picture) }
func (f *Faculty) SetPicture(p string) { f.Picture = optional(p) }

// Apply merges supplied fields; a supplied empty pincode clears it.
func (f *Faculty) Apply(fields Fields) {
	for column, value := range fields {
		switch column {
		case "faculty_number":
			f.FacultyNumber = value
		case "name":
			f.Name = value
		case "department":
			f.Department = value
		case "program":
			f.Program = value
		case "pincode":
			f.Pincode = optional(value)
		case "registration_status":
			f.RegistrationStatus = value
		}
	}
}

func (f *Faculty) Fields() Fields {
	return Fields{
		"faculty_number":      f.FacultyNumber,
		"name":                f.Name,
		"department":          f.Department,
		"program":             f.Program,
		"picture":             deref(f.Picture),
		"pincode":             deref(f.Pincode),
		"registration_status": f.RegistrationStatus,
	}
}

func (f *Faculty) Values() map[string]interface{} {
	return map[string]interface{}{
		"faculty_number":      f.FacultyNumber,
		"name":                f.Name,
		"department":          f.Department,
		"program":             f.Program,
		"picture":             f.Picture,
		"pincode":             f.Pincode,
		"registration_status": f.RegistrationStatus,
	}
}

func (f *Faculty) ScanTargets() []interface{} {
	return []interface{}{
		&f.ID, &f.FacultyNumber, &f.Name, &f.Department, &f.Program,
		&f.Picture, &f.Pincode, &f.RegistrationStatus, &f.CreatedAt, &f.UpdatedAt,
	}
}
