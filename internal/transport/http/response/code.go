package response

import "net/http"

// Business codes follow HTTP semantics directly.
const (
	CodeOK             = 0
	CodeBadRequest     = 400
	CodeUnauthorized   = 401
	CodeForbidden      = 403
	CodeNotFound       = 404
	CodeConflict       = 409
	CodeServerError    = 500
	CodeNotImplemented = 501
)

var CodeMsgMap = map[int]string{
	CodeOK:             "OK",
	CodeBadRequest:     "Bad Request",
	CodeUnauthorized:   "Unauthorized",
	CodeForbidden:      "Forbidden",
	CodeNotFound:       "Not Found",
	CodeConflict:       "Conflict",
	CodeServerError:    "Internal Server Error",
	CodeNotImplemented: "Not Implemented",
}

// HTTPStatus maps a business code to the status line it rides on.
func HTTPStatus(code int) int {
	if code == CodeOK {
		return http.StatusOK
	}
	if _, ok := CodeMsgMap[code]; ok {
		return code
	}
	return http.StatusInternalServerError
}
