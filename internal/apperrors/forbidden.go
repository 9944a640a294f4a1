package apperrors

import "net/http"

var ErrForbidden = &Exception{
	Message:    "actor is not allowed to perform this action",
	StatusCode: http.StatusForbidden,
}
