package service

// Result is the uniform envelope returned by every public service
// operation. Callers branch only on Success: a true value carries a
// payload in Data, a false value carries the failure cause in Error and
// a human-readable Message. Faults never escape a service as errors or
// panics; they are always folded into this envelope.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SuccessResult creates a success envelope with the given message and
// optional payload.
func SuccessResult(message string, data any) Result {
	return Result{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// FailureResult creates a failure envelope. The message is what callers
// display; err, when non-nil, is stringified into the Error field.
func FailureResult(message string, err error) Result {
	r := Result{
		Success: false,
		Message: message,
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}
