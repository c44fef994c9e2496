package validatorx

import (
	"strings"
	"sync"

	gpvalidator "github.com/go-playground/validator/v10"
)

var (
	v   *gpvalidator.Validate
	mut sync.Mutex
)

// Init initializes the validator singleton (idempotent)
func Init() {
	mut.Lock()
	defer mut.Unlock()
	if v != nil {
		return
	}
	v = gpvalidator.New()
}

// ValidateStruct validates a struct using go-playground/validator
func ValidateStruct(s interface{}) error {
	if v == nil {
		Init()
	}
	return v.Struct(s)
}

// IsEmail reports whether identifier is a syntactically valid email address.
func IsEmail(identifier string) bool {
	if v == nil {
		Init()
	}
	return strings.Contains(identifier, "@") && v.Var(identifier, "email") == nil
}
