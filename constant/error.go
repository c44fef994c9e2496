package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInvalidPassword
	ErrEmailExists
	ErrPhoneExists
	ErrForbidden
	ErrOtpNotFound
	ErrOtpExpired
	ErrOtpMismatch
	ErrChannelUnavailable
)

// ErrorKind groups error types into the categories clients branch on.
type ErrorKind string

const (
	KindNone               ErrorKind = ""
	KindInternal           ErrorKind = "Internal"
	KindValidation         ErrorKind = "ValidationError"
	KindNotFound           ErrorKind = "NotFound"
	KindConflict           ErrorKind = "Conflict"
	KindUnauthorized       ErrorKind = "Unauthorized"
	KindForbidden          ErrorKind = "Forbidden"
	KindOtpInvalid         ErrorKind = "OtpInvalid"
	KindChannelUnavailable ErrorKind = "ChannelUnavailable"
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:            "success",
	ErrInternal:           "error internal",
	ErrNotFound:           "account not found",
	ErrInvalidRequest:     "invalid request",
	ErrUnauthorize:        "unauthorize request",
	ErrInvalidPassword:    "invalid credentials",
	ErrEmailExists:        "email already exists",
	ErrPhoneExists:        "phone already exists",
	ErrForbidden:          "not authorized for this resource",
	ErrOtpNotFound:        "otp not generated, please request a new one",
	ErrOtpExpired:         "otp expired, please request a new one",
	ErrOtpMismatch:        "invalid otp",
	ErrChannelUnavailable: "no phone number associated with this account",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:            http.StatusOK,
	ErrInternal:           http.StatusInternalServerError,
	ErrNotFound:           http.StatusNotFound,
	ErrInvalidRequest:     http.StatusBadRequest,
	ErrUnauthorize:        http.StatusUnauthorized,
	ErrInvalidPassword:    http.StatusUnauthorized,
	ErrEmailExists:        http.StatusConflict,
	ErrPhoneExists:        http.StatusConflict,
	ErrForbidden:          http.StatusForbidden,
	ErrOtpNotFound:        http.StatusBadRequest,
	ErrOtpExpired:         http.StatusBadRequest,
	ErrOtpMismatch:        http.StatusBadRequest,
	ErrChannelUnavailable: http.StatusBadRequest,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:            "0000",
	ErrInternal:           "0001",
	ErrNotFound:           "0002",
	ErrInvalidRequest:     "0003",
	ErrUnauthorize:        "0004",
	ErrInvalidPassword:    "0006",
	ErrEmailExists:        "0007",
	ErrPhoneExists:        "0008",
	ErrForbidden:          "0009",
	ErrOtpNotFound:        "0010",
	ErrOtpExpired:         "0011",
	ErrOtpMismatch:        "0012",
	ErrChannelUnavailable: "0013",
}

var ErrorTypeKind = map[ErrorType]ErrorKind{
	Successful:            KindNone,
	ErrInternal:           KindInternal,
	ErrNotFound:           KindNotFound,
	ErrInvalidRequest:     KindValidation,
	ErrUnauthorize:        KindUnauthorized,
	ErrInvalidPassword:    KindUnauthorized,
	ErrEmailExists:        KindConflict,
	ErrPhoneExists:        KindConflict,
	ErrForbidden:          KindForbidden,
	ErrOtpNotFound:        KindOtpInvalid,
	ErrOtpExpired:         KindOtpInvalid,
	ErrOtpMismatch:        KindOtpInvalid,
	ErrChannelUnavailable: KindChannelUnavailable,
}
