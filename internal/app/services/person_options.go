package services

import (
	"github.com/lams-capstone/lams-admin/internal/pkg/filestorage"
	"github.com/lams-capstone/lams-admin/internal/pkg/validation"
)

// StudentOptions returns the validation and upload rules for students.
// Pictures are accepted by file extension and a missing pin code is generated.
func StudentOptions(maxUploadSize int64) PersonOptions {
	return PersonOptions{
		Rules: validation.Rules{
			Required: []validation.Field{
				{Column: "student_number", Label: "Student number"},
				{Column: "name", Label: "Name"},
				{Column: "department", Label: "Department"},
				{Column: "program", Label: "Program"},
			},
			Pincode: validation.Field{Column: "pin_code", Label: "Pin code"},
		},
		Upload: &filestorage.UploadPolicy{
			SubDir:            "students",
			Prefix:            "student_",
			AllowedExtensions: []string{"jpg", "jpeg", "png", "gif"},
			MaxSize:           maxUploadSize,
			TypeMessage:       "Invalid file type. Only JPG, JPEG, PNG & GIF files are allowed.",
		},
		GeneratePincode: RandomPincode,
	}
}

// FacultyOptions returns the rules for faculty. Pictures are checked by
// their sniffed content type.
func FacultyOptions(maxUploadSize int64) PersonOptions {
	return PersonOptions{
		Rules: validation.Rules{
			Required: []validation.Field{
				{Column: "faculty_number", Label: "Faculty number"},
				{Column: "name", Label: "Name"},
				{Column: "department", Label: "Department"},
				{Column: "program", Label: "Program"},
			},
			Pincode: validation.Field{Column: "pincode", Label: "Pincode"},
		},
		Upload: &filestorage.UploadPolicy{
			SubDir:           "faculty_pictures",
			Prefix:           "faculty_",
			AllowedMIMETypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
			MaxSize:          maxUploadSize,
			TypeMessage:      "Invalid file type. Only JPG, PNG, GIF and WEBP images are allowed.",
		},
	}
}

// StaffOptions returns the rules for staff. Staff pictures are plain path
// strings, so no upload policy is set.
func StaffOptions() PersonOptions {
	return PersonOptions{
		Rules: validation.Rules{
			Required: []validation.Field{
				{Column: "staff_number", Label: "Staff number"},
				{Column: "name", Label: "Name"},
				{Column: "department", Label: "Department"},
				{Column: "role", Label: "Role"},
			},
			Pincode: validation.Field{Column: "pincode", Label: "Pincode"},
		},
	}
}
