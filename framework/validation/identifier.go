package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// identifier is the grammar shared by every category.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Exported functions and methods end up as JavaScript identifiers.
var jsReserved = words(
	"abstract", "arguments", "await", "boolean", "break", "byte", "case", "catch",
	"char", "class", "const", "continue", "debugger", "default", "delete", "do",
	"double", "else", "enum", "eval", "export", "extends", "false", "final",
	"finally", "float", "for", "function", "goto", "if", "implements", "import",
	"in", "instanceof", "int", "interface", "let", "long", "native", "new",
	"null", "package", "private", "protected", "public", "return", "short",
	"static", "super", "switch", "synchronized", "this", "throw", "throws",
	"transient", "true", "try", "typeof", "undefined", "var", "void", "volatile",
	"while", "with", "yield",
)

var classReserved = union(jsReserved, words("self", "parent", "static"))

var eventReserved = words("true", "false", "null", "undefined")

// Validator checks names before they are exported to the browser.
// All methods are pure and never fail.
type Validator struct{}

// New returns a Validator.
func New() *Validator { return &Validator{} }

// ValidateFunction reports whether name can be exported as a function.
func (v *Validator) ValidateFunction(name string) bool { return valid(name, jsReserved) }

// ValidateEvent reports whether name can be used as an event name.
func (v *Validator) ValidateEvent(name string) bool { return valid(name, eventReserved) }

// ValidateClass reports whether name can be exported as a class.
func (v *Validator) ValidateClass(name string) bool { return valid(name, classReserved) }

// ValidateMethod reports whether name can be exported as a class method.
func (v *Validator) ValidateMethod(name string) bool { return valid(name, jsReserved) }

func valid(name string, reserved map[string]bool) bool {
	return identifier.MatchString(name) && !reserved[name]
}

// ── validator/v10 tags ───────────────────────────────────────────────────────

// RegisterTags adds function_name, event_name, class_name and method_name to v.
//
//	type Options struct {
//	    Prefix string `validate:"omitempty,function_name"`
//	}
func RegisterTags(v *validator.Validate) {
	var names Validator
	tags := map[string]func(string) bool{
		"function_name": names.ValidateFunction,
		"event_name":    names.ValidateEvent,
		"class_name":    names.ValidateClass,
		"method_name":   names.ValidateMethod,
	}
	for tag, check := range tags {
		// Registration only fails for empty or reserved tag names.
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		})
	}
}

func words(ws ...string) map[string]bool {
	m := make(map[string]bool, len(ws))
	for _, w := range ws {
		m[w] = true
	}
	return m
}

func union(a, b map[string]bool) map[string]bool {
	m := make(map[string]bool, len(a)+len(b))
	for k := range a {
		m[k] = true
	}
	for k := range b {
		m[k] = true
	}
	return m
}
