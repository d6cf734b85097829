package models

import "time"

// Student defines the student model based on the 'students' table
type Student struct {
	ID                 int64     `json:"id"`
	StudentNumber      string    `json:"student_number"`
	Name               string    `json:"name"`
	Department         string    `json:"department"`
	Program            string    `json:"program"`
	YearLevel          string    `json:"year_level"`
	Block              string    `json:"block"`
	Picture            *string   `json:"picture"`
	PinCode            string    `json:"pin_code"`
	RegistrationStatus string    `json:"registration_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// StudentEntity describes the students table
var StudentEntity = Entity{
	Namespace:        NamespaceStudents,
	Label:            "Student",
	Table:            "students",
	IdentifierColumn: "student_number",
	PincodeColumn:    "pin_code",
	Columns: []string{
		"id", "student_number", "name", "department", "program", "year_level", "block",
		"picture", "pin_code", "registration_status", "created_at", "updated_at",
	},
	FilterColumns: []string{"department", "program", "year_level", "block", "registration_status"},
	SearchColumns: []string{"student_number", "name", "department", "program"},
	New:           func() Person { return &Student{} },
}

func (s *Student) GetID() int64        { return s.ID }
func (s *Student) SetID(id int64)      { s.ID = id }
func (s *Student) Identifier() string  { return s.StudentNumber }
func (s *Student) PicturePath() string { return deref(s.Picture) }
func (s *Student) SetPicture(p string) { s.Picture = optional(p) }

// Apply merges supplied fields. An empty pin code keeps the current one.
func (s *Student) Apply(f Fields) {
	for column, value := range f {
		switch column {
		case "student_number":
			s.StudentNumber = value
		case "name":
			s.Name = value
		case "department":
			s.Department = value
		case "program":
			s.Program = value
		case "year_level":
			s.YearLevel = value
		case "block":
			s.Block = value
		case "pin_code":
			if value != "" {
				s.PinCode = value
			}
		case "registration_status":
			s.RegistrationStatus = value
		}
	}
}

func (s *Student) Fields() Fields {
	return Fields{
		"student_number":      s.StudentNumber,
		"name":                s.Name,
		"department":          s.Department,
		"program":             s.Program,
		"year_level":          s.YearLevel,
		"block":               s.Block,
		"picture":             deref(s.Picture),
		"pin_code":            s.PinCode,
		"registration_status": s.RegistrationStatus,
	}
}

func (s *Student) Values() map[string]interface{} {
	return map[string]interface{}{
		"student_number":      s.StudentNumber,
		"name":                s.Name,
		"department":          s.Department,
		"program":             s.Program,
		"year_level":          s.YearLevel,
		"block":               s.Block,
		"picture":             s.Picture,
		"pin_code":            s.PinCode,
		"registration_status": s.RegistrationStatus,
	}
}

func (s *Student) ScanTargets() []interface{} {
	return []interface{}{
		&s.ID, &s.StudentNumber, &s.Name, &s.Department, &s.Program, &s.YearLevel, &s.Block,
		&s.Picture, &s.PinCode, &s.RegistrationStatus, &s.CreatedAt, &s.UpdatedAt,
	}
}
