package validator

import "github.com/go-playground/validator/v10"

var v = validator.New()

// Validate checks the struct's validate tags and returns the failing
// fields keyed by name with the violated rule, or nil when all pass.
func Validate(s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
