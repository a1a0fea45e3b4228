package registry

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures the shared validator used for block props.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		// Report json names so errors line up with what editors show.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("href", func(fl validator.FieldLevel) bool {
			return isHref(fl.Field().String())
		})

		_ = v.RegisterValidation("asset", func(fl validator.FieldLevel) bool {
			return isAssetRef(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validator exposes the configured validator to other packages.
func Validator() *validator.Validate {
	return validatorInstance()
}

// ValidateProps checks props against the schema of t. Every offending field is
// reported in the returned *errors.ValidationError.
func ValidateProps(t page.ComponentType, props page.Props) error {
	if _, ok := Lookup(t); !ok {
		return pserrors.NewValidationError("type", fmt.Sprintf("unknown component type %q", t), ErrUnknownType)
	}
	if props == nil {
		return pserrors.NewValidationError(string(t), "props are required", nil)
	}
	if props.Type() != t {
		return pserrors.NewValidationError("type", fmt.Sprintf("%s props cannot be used for a %s block", props.Type(), t), nil)
	}

	err := validatorInstance().Struct(props)
	if err == nil {
		return nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return pserrors.NewValidationError(string(t), err.Error(), err)
	}

	fields := make([]pserrors.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, pserrors.FieldError{
			Field:   fieldPath(fe),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return pserrors.NewFieldsError(string(t), fields, err)
}

// fieldPath strips the Go type name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max", "lte":
		return boundMessage(fe.Kind(), "at most", param)
	case "min", "gte":
		return boundMessage(fe.Kind(), "at least", param)
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "hexcolor":
		return "must be a hex color such as #3b82f6"
	case "iso4217":
		return "must be an ISO 4217 currency code"
	case "href":
		return "must be a URL, an absolute path or a #anchor"
	case "asset":
		return "must be a URL or an uploaded asset path"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

func boundMessage(kind reflect.Kind, bound, param string) string {
	switch kind {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters", bound, param)
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("must contain %s %s items", bound, param)
	default:
		return fmt.Sprintf("must be %s %s", bound, param)
	}
}

func isHref(s string) bool {
	if s == "" {
		return true
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "/") {
		return true
	}
	if strings.HasPrefix(s, "mailto:") || strings.HasPrefix(s, "tel:") {
		return len(s) > strings.Index(s, ":")+1
	}
	return isWebURL(s)
}

func isAssetRef(s string) bool {
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "/") {
		return !strings.Contains(s, "..") && !strings.ContainsAny(s, " \x00")
	}
	return isWebURL(s)
}

func isWebURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
