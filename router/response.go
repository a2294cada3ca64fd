package router

import (
	"encoding/json"
	"net/http"
)

const (
	MsgNotFound      = "Not found"
	MsgInternalError = "Internal server error"
)

// Response is the uniform result of a handler.
// A zero Status means 200 and a nil Body writes no body.
type Response struct {
	Status  int
	Body    any
	Headers map[string]string
}

// ErrorBody is the JSON body of error responses.
type ErrorBody struct {
	Error string `json:"error"`
}

func NewResponse(status int, body any) Response {
	return Response{Status: status, Body: body}
}

func OK(body any) Response {
	return Response{Status: http.StatusOK, Body: body}
}

// Error builds a {"error": msg} response.
func Error(status int, msg string) Response {
	return Response{Status: status, Body: ErrorBody{Error: msg}}
}

func NotFound() Response {
	return Error(http.StatusNotFound, MsgNotFound)
}

func InternalError() Response {
	return Error(http.StatusInternalServerError, MsgInternalError)
}

// Normalize converts a handler's return value into a Response.
func Normalize(ret any) Response {
	switch v := ret.(type) {
	case nil:
		return Response{Status: http.StatusOK}
	case Response:
		return v
	case *Response:
		if v == nil {
			return Response{Status: http.StatusOK}
		}
		return *v
	default:
		return OK(v)
	}
}

// WriteResponse writes headers, status and body. []byte bodies are written
// raw, strings as text and any other non-nil value as JSON.
func WriteResponse(w http.ResponseWriter, resp Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}

	var payload []byte
	switch body := resp.Body.(type) {
	case nil:
		w.WriteHeader(status)
		return
	case []byte:
		setDefaultContentType(w, "application/octet-stream")
		payload = body
	case string:
		setDefaultContentType(w, "text/plain; charset=utf-8")
		payload = []byte(body)
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			status = http.StatusInternalServerError
			encoded, _ = json.Marshal(ErrorBody{Error: MsgInternalError})
		}
		w.Header().Set("Content-Type", "application/json")
		payload = encoded
	}

	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func setDefaultContentType(w http.ResponseWriter, contentType string) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", contentType)
	}
}
