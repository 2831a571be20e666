// Package validate applies field rules to request structs before anything is written.
//
// Rules are declared with `validate` struct tags. The first failing field is reported as a
// validation error; Messages maps "<json field>.<tag>" to the text shown to the caller.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"taskboard/pkg/constants"
	pkgErrors "taskboard/pkg/errors"
)

// Messages 字段规则到提示文案的映射, key 形如 "name.trimmed_min"
type Messages map[string]string

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var v = newValidator()

func newValidator() *validator.Validate {
	vd := validator.New(validator.WithRequiredStructEnabled())

	vd.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	// trimmed_min=N: 去掉首尾空白后至少 N 个字符
	_ = vd.RegisterValidation("trimmed_min", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
	})

	_ = vd.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return hexColor.MatchString(fl.Field().String())
	})

	return vd
}

// Struct validates s and converts the first failure into a validation error.
// A *string field pointing at "" counts as absent and skips its rules.
func Struct(s interface{}, messages Messages) error {
	err := v.Struct(omitBlank(s))
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return pkgErrors.Wrap(pkgErrors.KindValidation, "Invalid request", err)
	}
	return pkgErrors.Validation(messageFor(fieldErrs[0], messages))
}

// omitBlank 返回 s 的副本, 其中指向空串的 *string 字段置为 nil; 不修改调用方的值
func omitBlank(s interface{}) interface{} {
	rv := reflect.ValueOf(s)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return s
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return s
	}

	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	changed := false
	for i := 0; i < cp.NumField(); i++ {
		f := cp.Field(i)
		if !f.CanSet() || f.Kind() != reflect.Ptr || f.IsNil() || f.Elem().Kind() != reflect.String {
			continue
		}
		if f.Elem().Len() == 0 {
			f.Set(reflect.Zero(f.Type()))
			changed = true
		}
	}
	if !changed {
		return s
	}
	return cp.Addr().Interface()
}

// Var validates a single value against tag.
func Var(value interface{}, tag, message string) error {
	if err := v.Var(value, tag); err != nil {
		return pkgErrors.Validation(message)
	}
	return nil
}

func messageFor(fe validator.FieldError, messages Messages) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "trimmed_min", "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters long"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "hex_color":
		return "Invalid color format. Use hex format like #FF5733"
	default:
		return fe.Field() + " is invalid"
	}
}

// IsTaskStatus reports whether status is one of the board columns.
func IsTaskStatus(status string) bool {
	return lo.Contains(constants.TaskStatuses, status)
}

func IsTaskPriority(priority string) bool {
	return lo.Contains(constants.TaskPriorities, priority)
}

func IsMemberRole(role string) bool {
	return lo.Contains(constants.MemberRoles, role)
}
