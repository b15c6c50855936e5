package weberr

import "net/http"

type ErrorResponse struct {
	Error string `json:"error"`
}

// RequestError is an error caused by the request rather than the server.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return e.Err.Error() }

func (e *RequestError) Unwrap() error { return e.Err }

// NewError builds a RequestError that renders msg with the given status.
func NewError(err error, msg string, status int, opts ...Opt) error {
	opts = append(opts, WithResponse(&ErrorResponse{msg}, status))
	return Wrap(&RequestError{Err: err}, opts...)
}

func NotFound(err error, opts ...Opt) error {
	return NewError(err, "the resource could not be found", http.StatusNotFound, opts...)
}

func NotAuthorized(err error, opts ...Opt) error {
	return NewError(err, "not authorized to access resource", http.StatusUnauthorized, opts...)
}

func BadRequest(err error, opts ...Opt) error {
	return NewError(err, "bad request", http.StatusBadRequest, opts...)
}

func Unprocessable(err error, opts ...Opt) error {
	return NewError(err, err.Error(), http.StatusUnprocessableEntity, opts...)
}

func TooManyRequests(err error, opts ...Opt) error {
	return NewError(err, "too many requests, slow down", http.StatusTooManyRequests, opts...)
}

func InternalError(err error, opts ...Opt) error {
	return NewError(
		err,
		"the server encountered a problem and could not process your request",
		http.StatusInternalServerError,
		opts...,
	)
}
