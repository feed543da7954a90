// Package validation holds the request validation rules shared by the HTTP
// handlers: custom binding tags and field-level error messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/you/quezi/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var registerOnce sync.Once

// RegisterGin installs the custom rules on gin's default validator.
// It is safe to call more than once.
func RegisterGin() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = Register(v)
	})
	return err
}

// Register adds the quezi rules to v and makes field errors report json names
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	rules := map[string]validator.Func{
		"slug":       validateSlug,
		"phone":      validatePhone,
		"cpf":        validateCPF,
		"usertype":   validateUserType,
		"memberrole": validateMemberRole,
		"channel":    validateChannel,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validatePhone(fl validator.FieldLevel) bool {
	return ValidPhone(fl.Field().String())
}

func validateCPF(fl validator.FieldLevel) bool {
	return ValidCPF(fl.Field().String())
}

// usertype only admits the self-registerable types
func validateUserType(fl validator.FieldLevel) bool {
	return domain.UserType(fl.Field().String()).SelfRegisterable()
}

// memberrole admits the roles that can be granted; owner is implicit
func validateMemberRole(fl validator.FieldLevel) bool {
	r := domain.MemberRole(fl.Field().String())
	return r == domain.MemberRoleAdmin || r == domain.MemberRoleMember
}

func validateChannel(fl validator.FieldLevel) bool {
	switch domain.VerificationChannel(fl.Field().String()) {
	case domain.ChannelEmail, domain.ChannelSMS:
		return true
	}
	return false
}

// FieldErrors converts binding errors to field -> message. It returns nil
// when err carries no field errors (e.g. malformed JSON).
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "slug":
		return "must contain only lowercase letters, numbers and hyphens"
	case "phone":
		return "must be a valid phone number"
	case "cpf":
		return "must be a valid CPF"
	case "usertype":
		return "must be CLIENT or PROFESSIONAL"
	case "memberrole":
		return "must be admin or member"
	case "channel":
		return "must be email or sms"
	case "oneof":
		return "must be one of " + fe.Param()
	}
	return "is invalid"
}
