package container

// Service keys. The set is fixed; AllKeys lists it in boot order.
const (
	KeyConfig          = "config"
	KeyValidator       = "validator"
	KeyEventDispatcher = "event-dispatcher"
	KeyTemplate        = "template"
	KeyTranslator      = "translator"
	KeyMinifier        = "minifier"
	KeyPluginManager   = "plugin-manager"
	KeyRequestManager  = "request-manager"
	KeyResponseManager = "response-manager"
)

var allKeys = []string{
	KeyConfig,
	KeyValidator,
	KeyEventDispatcher,
	KeyTemplate,
	KeyTranslator,
	KeyMinifier,
	KeyPluginManager,
	KeyRequestManager,
	KeyResponseManager,
}

// AllKeys returns the service keys in the order the application boots them.
// Later services may depend on earlier ones, never the reverse.
func AllKeys() []string {
	out := make([]string, len(allKeys))
	copy(out, allKeys)
	return out
}
