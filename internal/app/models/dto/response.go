package dto

// Envelope statuses
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the JSON body of every API response. It always carries
// "status", usually "message", and endpoint-specific keys such as "data",
// "id", "faculty_id", "user" or "users".
type Envelope map[string]interface{}

// Success returns a success envelope; an empty message is omitted.
func Success(message string) Envelope {
	e := Envelope{"status": StatusSuccess}
	if message != "" {
		e["message"] = message
	}
	return e
}

// Error returns an error envelope. errs, when given, are listed under "errors".
func Error(message string, errs ...string) Envelope {
	e := Envelope{"status": StatusError, "message": message}
	if len(errs) > 0 {
		e["errors"] = errs
	}
	return e
}

// With sets key to value and returns the envelope for chaining
func (e Envelope) With(key string, value interface{}) Envelope {
	e[key] = value
	return e
}

// WithData sets the "data" key
func (e Envelope) WithData(data interface{}) Envelope {
	return e.With("data", data)
}
