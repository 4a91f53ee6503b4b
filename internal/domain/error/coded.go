package error

// CodedError is a domain failure carrying a stable code that clients can
// branch on, e.g. AUTH-030001. Err is the sentinel or cause it wraps, so
// errors.Is keeps working across layers.
type CodedError[C ~string] struct {
	Code    C
	Message string
	Err     error
}

func (e *CodedError[C]) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CodedError[C]) Unwrap() error {
	return e.Err
}

func newCoded[C ~string](code C, message string, err error) *CodedError[C] {
	return &CodedError[C]{Code: code, Message: message, Err: err}
}
