package generator

import "strings"

// Conventions holds the fixed vocabulary shared by the extractor and the
// renderer. The string fields are plain values; the sets and lists are
// unexported, so copies never share anything a caller can change.
type Conventions struct {
	// Namespace is the API table signatures are extracted from, e.g. "reaper".
	// It is stripped from extracted names and re-added when rendering.
	Namespace string

	// ArrayType is the array-like host object whose methods are rendered on
	// their own class.
	ArrayType string
	// SelfName marks the receiver parameter of an ArrayType method.
	SelfName string
	// ReturnPlaceholder is the name given to return slots.
	ReturnPlaceholder string

	// HTML structure of the reference document
	FunctionBlockClass   string
	BodyClass            string
	MinDescriptionLength int

	// prefixes are rendered verbatim instead of being put under Namespace
	prefixes          []string
	structuralClasses []string
	builtinTypes      map[string]struct{}
	reservedWords map[string]struct{}
	typeNames     map[string]string
}

// DefaultConventions returns the conventions of the REAPER ReaScript reference
func DefaultConventions() Conventions {
	return Conventions{
		Namespace:            "reaper",
		ArrayType:            "ReaperArray",
		SelfName:             "self",
		ReturnPlaceholder:    "return",
		FunctionBlockClass:   "l_func",
		BodyClass:            "p_func",
		MinDescriptionLength: 15,
		prefixes:             []string{"reaper", "gfx"},
		structuralClasses:    []string{"c_func", "e_func", "l_func", "p_func"},
		builtinTypes: setOf(
			"any", "boolean", "number", "string", "table", "function",
			"userdata", "thread", "nil", "void", "integer",
		),
		reservedWords: setOf(
			"and", "break", "do", "else", "elseif", "end", "false", "for",
			"function", "if", "in", "local", "nil", "not", "or", "repeat",
			"return", "then", "true", "until", "while",
		),
		typeNames: map[string]string{
			"boolean":       "boolean",
			"number":        "number",
			"string":        "string",
			"AudioAccessor": "AudioAccessor",
			"MediaTrack":    "MediaTrack",
			"MediaItem":     "MediaItem",
			"Take":          "Take",
			"PCM_source":    "PCM_source",
		},
	}
}

// IsBuiltinType reports whether a type needs no class declaration. Tokens that
// are not bare identifiers count as built-in so they never become classes.
func (c Conventions) IsBuiltinType(typ string) bool {
	if _, ok := c.builtinTypes[typ]; ok {
		return true
	}
	return !identifierPattern.MatchString(typ)
}

// IsReservedWord reports whether name is a Lua keyword, ignoring case
func (c Conventions) IsReservedWord(name string) bool {
	_, ok := c.reservedWords[strings.ToLower(name)]
	return ok
}

// Prefixes returns the table names that free functions may already carry
func (c Conventions) Prefixes() []string {
	return append([]string(nil), c.prefixes...)
}

// HasNamespacePrefix reports whether name already starts with a recognized
// table name followed by a dot.
func (c Conventions) HasNamespacePrefix(name string) bool {
	for _, ns := range c.prefixes {
		if strings.HasPrefix(name, ns+".") {
			return true
		}
	}
	return false
}

// QualifiedName returns the global name a free function is declared under
func (c Conventions) QualifiedName(name string) string {
	if c.HasNamespacePrefix(name) {
		return name
	}
	return c.Namespace + "." + name
}

func (c Conventions) isStructuralClass(n Node) bool {
	for _, class := range c.structuralClasses {
		if n.HasClass(class) {
			return true
		}
	}
	return false
}

func setOf(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}
