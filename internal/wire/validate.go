package wire

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	addressRe = regexp.MustCompile(addressPattern)
	hashRe    = regexp.MustCompile(hashPattern)
	decimalRe = regexp.MustCompile(decimalPattern)

	validateOnce sync.Once
	validate     *validator.Validate
)

// instance returns the shared validator.Validate used for struct-tag
// validation (required, oneof, min, ...). Address/order-hash/decimal shape
// checks are not struct tags here — IsAddress/IsOrderHash/IsDecimal below
// cover those, since the gateway also needs to apply them to raw path and
// query values that never pass through a tagged struct.
func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate runs struct-tag validation over req and flattens the first
// failure into a caller-safe message. A nil return means req is valid.
func Validate(req interface{}) error {
	if err := instance().Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if !isValidationErrors(err, &fieldErrs) {
			return err
		}
		first := fieldErrs[0]
		return fmt.Errorf("%s: failed %s", strings.ToLower(first.Field()), first.Tag())
	}
	return nil
}

func isValidationErrors(err error, out *validator.ValidationErrors) bool {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if ok {
		*out = fieldErrs
	}
	return ok
}

// IsAddress reports whether s is a 20-byte hex address (0x + 40 hex chars).
func IsAddress(s string) bool { return addressRe.MatchString(s) }

// IsOrderHash reports whether s is a 32-byte hex hash (0x + 64 hex chars).
func IsOrderHash(s string) bool { return hashRe.MatchString(s) }

// IsDecimal reports whether s parses as a plain decimal amount string.
func IsDecimal(s string) bool { return decimalRe.MatchString(s) }
