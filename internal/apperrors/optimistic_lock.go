package apperrors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "optimistic locking conflict",
	StatusCode: http.StatusConflict,
}
