package generator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrNoSignature is reported for a function block without signature text
	ErrNoSignature = errors.New("function block has no signature")
	// ErrSignatureMismatch is reported when a signature does not have the
	// `<returns> <namespace>.<name>(<params>)` shape
	ErrSignatureMismatch = errors.New("signature does not match expected shape")
)

var (
	identifierPattern  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
	parameterPattern   = regexp.MustCompile(`^(.*?)\s+(\w+)$`)
	returnPattern      = regexp.MustCompile(`^(optional\s+)?(\w+)(?:\s+\w+)?$`)
	trailingAssignment = regexp.MustCompile(`\s*=\s*$`)
	emphasisTags       = regexp.MustCompile(`</?i>`)
)

// signatureParser turns Lua signature lines into descriptors
type signatureParser struct {
	conv    Conventions
	pattern *regexp.Regexp
}

func newSignatureParser(conv Conventions) *signatureParser {
	// returns, name, parameter list
	pattern := regexp.MustCompile(`^(.*?)\s*\b` + regexp.QuoteMeta(conv.Namespace) + `\.(\w+)\s*\((.*?)\)`)
	return &signatureParser{conv: conv, pattern: pattern}
}

// parse parses a signature such as
// "boolean reaper.GetTrackName(MediaTrack track, string buf)".
// The description is left empty.
func (p *signatureParser) parse(signature string) (FunctionDescriptor, error) {
	m := p.pattern.FindStringSubmatch(strings.TrimSpace(signature))
	if m == nil {
		return FunctionDescriptor{}, fmt.Errorf("%w: %q", ErrSignatureMismatch, signature)
	}

	returnText, name, paramText := strings.TrimSpace(m[1]), m[2], m[3]
	return FunctionDescriptor{
		Name:       name,
		Parameters: p.parseParameters(paramText),
		Returns:    p.parseReturns(returnText),
	}, nil
}

// parseParameters splits a flat parameter list. Fragments that are not
// `<type> <identifier>` are dropped.
func (p *signatureParser) parseParameters(text string) []FunctionArgument {
	params := []FunctionArgument{}
	if strings.TrimSpace(text) == "" {
		return params
	}

	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := parameterPattern.FindStringSubmatch(part)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			continue
		}
		params = append(params, FunctionArgument{
			Name:     p.sanitizeIdentifier(m[2]),
			Type:     p.normalizeType(m[1]),
			Required: true,
		})
	}
	return params
}

// parseReturns parses the text in front of the namespace, e.g.
// "boolean retval, optional string info =".
func (p *signatureParser) parseReturns(text string) []FunctionArgument {
	returns := []FunctionArgument{}
	if text == "" || text == "void" {
		return returns
	}

	text = strings.TrimSpace(trailingAssignment.ReplaceAllString(text, ""))
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		slot := FunctionArgument{Name: p.conv.ReturnPlaceholder, Required: true}
		if m := returnPattern.FindStringSubmatch(part); m != nil {
			slot.Type = p.normalizeType(m[2])
			slot.Required = m[1] == ""
		} else {
			// best effort: first token is the type
			slot.Type = p.normalizeType(strings.Fields(part)[0])
		}
		returns = append(returns, slot)
	}
	return returns
}

// normalizeType strips emphasis markup and maps well-known names. Unknown
// tokens are custom host types and pass through verbatim.
func (p *signatureParser) normalizeType(typ string) string {
	clean := strings.TrimSpace(emphasisTags.ReplaceAllString(typ, ""))
	if mapped, ok := p.conv.typeNames[clean]; ok {
		return mapped
	}
	return clean
}

func (p *signatureParser) sanitizeIdentifier(name string) string {
	if p.conv.IsReservedWord(name) {
		return name + "_"
	}
	return name
}
