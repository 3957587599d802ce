package members

import "fitcrm/internal/pkg/validator"

// ActionResult is the structured outcome of a mutation. Validation and
// ownership failures come back as results, never as errors, so form UIs can
// render inline feedback. RedirectTo is a tagged navigation outcome, not a
// failure: callers must check it before any generic error mapping.
type ActionResult struct {
	Success    bool        `json:"success"`
	Error      string      `json:"error,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	RedirectTo string      `json:"-"`
}

func success(data interface{}) ActionResult {
	return ActionResult{Success: true, Data: data}
}

func redirect(path string) ActionResult {
	return ActionResult{Success: true, RedirectTo: path}
}

func failure(msg string) ActionResult {
	return ActionResult{Success: false, Error: msg}
}

func fieldFailure(fe *validator.FieldError) ActionResult {
	return ActionResult{Success: false, Error: fe.Error()}
}
