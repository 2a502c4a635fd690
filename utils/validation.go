// utils/validation.go
package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	indexRegex = regexp.MustCompile(`\[\d+\]`)
)

func cleanPhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(cleanPhone(phone))
}

// ValidateGSTIN checks the 15 character Indian GST identification number
// layout (state code, PAN, entity number, Z, check character).
func ValidateGSTIN(gstin string) bool {
	return gstinRegex.MatchString(strings.ToUpper(strings.TrimSpace(gstin)))
}

// NormalizePhone returns the number in E.164 form, prefixing countryCode to
// local numbers.
func NormalizePhone(phone, countryCode string) string {
	cleaned := cleanPhone(phone)
	if strings.HasPrefix(cleaned, "+") {
		return cleaned
	}
	cleaned = strings.TrimLeft(cleaned, "0")
	return countryCode + cleaned
}

// FieldError is one rule violation on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// MessageOverrider lets a request type replace the generic message for a
// "field.rule" key, where field is the JSON path without indexes
// (e.g. "items.quantity.min").
type MessageOverrider interface {
	ValidationMessages() map[string]string
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. It reads `binding` tags so the same
// rules apply when gin binds a request.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return ValidatePhone(fl.Field().String())
		})
		_ = v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
			return ValidateGSTIN(fl.Field().String())
		})
		validate = v
	})
	return validate
}

// ValidateStruct runs the binding rules on v.
func ValidateStruct(v any) error {
	return Validator().Struct(v)
}

// FieldErrors turns a validation failure into field level messages. Other
// errors yield nil.
func FieldErrors(err error, obj any) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	var overrides map[string]string
	if mo, ok := obj.(MessageOverrider); ok {
		overrides = mo.ValidationMessages()
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		key := indexRegex.ReplaceAllString(path, "") + "." + fe.Tag()
		msg, ok := overrides[key]
		if !ok {
			msg = defaultMessage(fe)
		}
		out = append(out, FieldError{Field: path, Message: msg})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// labelOverrides name fields whose words do not read well on their own.
var labelOverrides = map[string]string{
	"gstNumber":   "GSTIN",
	"engineSlNo":  "Engine serial number",
	"dgRatingKVA": "DG rating (kVA)",
}

var acronyms = map[string]string{
	"amc": "AMC", "gst": "GST", "gstin": "GSTIN", "hsn": "HSN", "id": "ID",
	"ifsc": "IFSC", "irn": "IRN", "pan": "PAN", "po": "PO", "qr": "QR", "uom": "UOM",
}

// label turns "billingAddress" into "Billing address" and "companyGstin"
// into "Company GSTIN".
func label(field string) string {
	if l, ok := labelOverrides[field]; ok {
		return l
	}
	var words []string
	start := 0
	runes := []rune(field)
	for i := 1; i < len(runes); i++ {
		upper := unicode.IsUpper(runes[i])
		prevLower := unicode.IsLower(runes[i-1])
		nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if upper && (prevLower || nextLower) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))

	for i, w := range words {
		w = strings.ToLower(w)
		if a, ok := acronyms[w]; ok {
			words[i] = a
			continue
		}
		if i == 0 && w != "" {
			r := []rune(w)
			r[0] = unicode.ToUpper(r[0])
			w = string(r)
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

func defaultMessage(fe validator.FieldError) string {
	name := label(fe.Field())
	isNumber := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		isNumber = true
	}

	switch fe.Tag() {
	case "required", "required_if", "required_with", "required_without":
		return name + " is required"
	case "min", "gte":
		if isNumber {
			return fmt.Sprintf("%s must be at least %s", name, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must contain at least %s entries", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max", "lte":
		if isNumber {
			return fmt.Sprintf("%s cannot exceed %s", name, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s cannot contain more than %s entries", name, fe.Param())
		}
		return fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	case "uuid", "uuid4":
		return name + " must be a valid ID"
	case "email":
		return name + " must be a valid email address"
	case "phone":
		return name + " must be a valid phone number"
	case "gstin":
		return name + " must be a valid 15 character GST identification number"
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", name, label(fe.Param()))
	case "numeric":
		return name + " must contain only digits"
	case "datetime":
		return name + " must be a date in YYYY-MM-DD format"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", name)
	}
}
