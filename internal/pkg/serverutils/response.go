package serverutils

import "cmms-dashboard-be/internal/pkg/apperror"

// BaseResponse is the envelope of every JSON response.
type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`

	ErrorCode   string                 `json:"error_code,omitempty"`
	Params      map[string]interface{} `json:"params,omitempty"`
	FieldErrors []apperror.FieldError  `json:"field_errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) BaseResponse[T] {
	return BaseResponse[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) BaseResponse[any] {
	return BaseResponse[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// AppErrorResponse renders an AppError with its machine-readable details.
func AppErrorResponse(err *apperror.AppError) BaseResponse[any] {
	res := ErrorResponse(err.HTTPStatus, err.Message)
	res.ErrorCode = err.Code
	res.Params = err.Params
	res.FieldErrors = err.FieldErrors
	return res
}
