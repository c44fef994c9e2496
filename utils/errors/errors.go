package errors

import (
	"encoding/json"
	stderrors "errors"

	"github.com/muhammadheryan/identity-service/constant"
)

type CustomError struct {
	errType constant.ErrorType
}

func (c CustomError) Error() string {
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func (c CustomError) Kind() constant.ErrorKind {
	return constant.ErrorTypeKind[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code    string             `json:"code"`
		Kind    constant.ErrorKind `json:"kind"`
		Message string             `json:"message"`
	}{
		Code:    c.ErrorCode(),
		Kind:    c.Kind(),
		Message: c.Error(),
	})
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// Is reports whether err is a CustomError of the given type.
func Is(err error, errorType constant.ErrorType) bool {
	var ce CustomError
	if !stderrors.As(err, &ce) {
		return false
	}
	return ce.errType == errorType
}
