// Package weberr decorates errors with the HTTP response they should
// produce and with structured logging fields, without the core packages
// knowing anything about HTTP.
package weberr

type Opt func(error) error

// Wrap applies the given decorations to err in order.
func Wrap(err error, opts ...Opt) error {
	for _, opt := range opts {
		err = opt(err)
	}
	return err
}

func WithResponse(body any, status int) Opt {
	return func(err error) error {
		return &responseError{error: err, body: body, status: status}
	}
}

func WithFields(fields map[string]any) Opt {
	return func(err error) error {
		return &fieldsError{error: err, fields: fields}
	}
}
