package common

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a request struct and converts a failure into an input
// error carrying usage.
func Validate(payload interface{}, usage string) *AppError {
	if err := validate.Struct(payload); err != nil {
		return NewAppError(CodeInvalidInput, usage, err)
	}
	return nil
}

// ParseAmount reads an integer amount from args[i]. Missing or malformed
// text yields 0, which amount validation rejects.
func ParseAmount(args []string, i int) int64 {
	if i >= len(args) {
		return 0
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(args[i], ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Arg returns args[i] or the empty string.
func Arg(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return args[i]
}
