package er

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode int

const (
	UserNotFoundCode        ErrorCode = 1001
	UserAlreadyExistsCode   ErrorCode = 1002
	IncorrectPasswordCode   ErrorCode = 1003
	UnprocessableEntityCode ErrorCode = 2001
	BadRequestCode          ErrorCode = 2002
	InvalidOperationCode    ErrorCode = 2003
	InternalErrorCode       ErrorCode = 3001
	UnauthenticatedCode     ErrorCode = 4001
	UnauthorizedCode        ErrorCode = 4003
	TooManyRequestsCode     ErrorCode = 4029
	ProductNotFoundCode     ErrorCode = 5001
	AddressNotFoundCode     ErrorCode = 5002
	CartItemNotFoundCode    ErrorCode = 5003
	OrderNotFoundCode       ErrorCode = 5004
)

var ErrStrMap = map[ErrorCode]string{
	UserNotFoundCode:        "user not found",
	UserAlreadyExistsCode:   "user already exists",
	IncorrectPasswordCode:   "incorrect password",
	UnprocessableEntityCode: "unprocessable entity",
	BadRequestCode:          "bad request",
	InvalidOperationCode:    "invalid operation",
	InternalErrorCode:       "internal server error",
	UnauthenticatedCode:     "unauthenticated",
	UnauthorizedCode:        "unauthorized",
	TooManyRequestsCode:     "too many requests",
	ProductNotFoundCode:     "product not found",
	AddressNotFoundCode:     "address not found",
	CartItemNotFoundCode:    "cart item not found",
	OrderNotFoundCode:       "order not found",
}

var errStatusMap = map[ErrorCode]int{
	UserNotFoundCode:        http.StatusNotFound,
	UserAlreadyExistsCode:   http.StatusBadRequest,
	IncorrectPasswordCode:   http.StatusBadRequest,
	UnprocessableEntityCode: http.StatusUnprocessableEntity,
	BadRequestCode:          http.StatusBadRequest,
	InvalidOperationCode:    http.StatusConflict,
	InternalErrorCode:       http.StatusInternalServerError,
	UnauthenticatedCode:     http.StatusUnauthorized,
	UnauthorizedCode:        http.StatusForbidden,
	TooManyRequestsCode:     http.StatusTooManyRequests,
	ProductNotFoundCode:     http.StatusNotFound,
	AddressNotFoundCode:     http.StatusNotFound,
	CartItemNotFoundCode:    http.StatusNotFound,
	OrderNotFoundCode:       http.StatusNotFound,
}

// HTTPStatus 未知的code一律視為500
func (c ErrorCode) HTTPStatus() int {
	if status, ok := errStatusMap[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}

type AnaError struct {
	Code    ErrorCode
	Msg     string
	Err     error
	Details any
}

func (e *AnaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("code %d: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("code %d: %s", e.Code, e.Msg)
}

func (e *AnaError) Unwrap() error {
	return e.Err
}

// New msg為空時使用預設訊息
func New(code ErrorCode, msg string) *AnaError {
	if msg == "" {
		msg = ErrStrMap[code]
	}
	return &AnaError{Code: code, Msg: msg}
}

func Wrap(code ErrorCode, msg string, err error) *AnaError {
	e := New(code, msg)
	e.Err = err
	return e
}

func (e *AnaError) WithDetails(details any) *AnaError {
	e.Details = details
	return e
}

// FromError 取出錯誤鏈中的AnaError，沒有的話包成InternalErrorCode
func FromError(err error) *AnaError {
	if err == nil {
		return nil
	}
	var anaErr *AnaError
	if errors.As(err, &anaErr) {
		return anaErr
	}
	return Wrap(InternalErrorCode, "", err)
}

// Is 判斷錯誤鏈中是否為指定code
func Is(err error, code ErrorCode) bool {
	var anaErr *AnaError
	return errors.As(err, &anaErr) && anaErr.Code == code
}
