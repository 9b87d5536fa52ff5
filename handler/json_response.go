package handler

import (
	"encoding/json"
	"net/http"
)

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status  int
	headers http.Header
	body    any
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	data, err := json.Marshal(j.body)
	if err != nil {
		return err
	}

	for k, v := range j.headers {
		w.Header()[k] = v
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(data, '\n'))
	return err
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// WithJSONHeader adds a response header.
func WithJSONHeader(key, value string) JSONOption {
	return func(r *jsonResponse) {
		if r.headers == nil {
			r.headers = make(http.Header)
		}
		r.headers.Add(key, value)
	}
}

// JSON creates a JSON response that encodes v as the whole body.
// Encoding happens before any header is written, so a value that cannot
// be marshalled surfaces as a render error instead of a half-written reply.
func JSON(v any, opts ...JSONOption) Response {
	r := jsonResponse{
		status: http.StatusOK,
		body:   v,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// errorResponse defers to the ErrorHandler configured in Wrap.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Fail returns a Response that hands err to the ErrorHandler, keeping status
// mapping in one place.
//
// Example:
//
//	res, err := svc.Submit(ctx, in)
//	if err != nil {
//		return handler.Fail(err)
//	}
//	return handler.JSON(res)
func Fail(err error) Response {
	if err == nil {
		err = ErrNilResponse
	}
	return errorResponse{err: err}
}
