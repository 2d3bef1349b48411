package mdapi

// A Result is the outcome of a remote operation. Operations never fail
// with a Go error past the client boundary; failures are carried here.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
	Err     string `json:"error,omitempty"`

	cause error
}

// Cause returns the underlying error of a failed result, nil otherwise.
// It only travels in-process, not through the JSON representation.
func (r Result) Cause() error {
	return r.cause
}

func success(message string, data any) Result {
	return Result{Success: true, Message: message, Data: data}
}

func failure(message string, err error) Result {
	return Result{Success: false, Message: message, Err: err.Error(), cause: err}
}
