package errors

import "strings"

// Errors is a non-empty list of errors. A nil Errors means no error occurred.
type Errors []error

func (m Errors) Error() string {
	msgs := make([]string, 0, len(m))
	for _, err := range m {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// Slice returns a copy of the underlying errors.
func (m Errors) Slice() []error {
	return append([]error(nil), m...)
}

// Append adds err to errs, flattening err if it is itself an Errors.
func Append(errs Errors, err error) Errors {
	if err == nil {
		return errs
	}
	if multi, ok := err.(Errors); ok {
		return append(errs, multi...)
	}
	return append(errs, err)
}

// Combine combines errors e & f into a single error, returning nil if both are nil.
func Combine(e, f error) error {
	if e == nil {
		return f
	}
	if f == nil {
		return e
	}
	var out Errors
	out = Append(out, e)
	// copy so that appending never aliases the backing array of e
	out = append(Errors(nil), out...)
	return Append(out, f)
}

// Defer combines the result of f into *err, for use with deferred Close calls.
func Defer(err *error, f func() error) {
	*err = Combine(*err, f())
}
