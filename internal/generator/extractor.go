package generator

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

var versionPattern = regexp.MustCompile(`REAPER v(\d+\.\d+[0-9A-Za-z.+_-]*)`)

// SkippedBlock records a function block that produced no descriptor
type SkippedBlock struct {
	Signature string
	Err       error
}

// Extraction is the result of reading one reference document
type Extraction struct {
	Functions *FunctionSet
	// Version is the REAPER version mentioned in the document, if any
	Version string
	Skipped []SkippedBlock
}

// Extractor finds function blocks in a reference document and turns them
// into descriptors
type Extractor struct {
	conv   Conventions
	parser *signatureParser
	logger *slog.Logger
}

// NewExtractor creates an extractor. A nil logger uses slog.Default().
func NewExtractor(conv Conventions, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		conv:   conv,
		parser: newSignatureParser(conv),
		logger: logger,
	}
}

// ExtractHTML parses raw HTML and extracts it
func (e *Extractor) ExtractHTML(r io.Reader) (*Extraction, error) {
	doc, err := ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}

// Extract walks a parsed document. Blocks that cannot be parsed are skipped
// and reported; they never stop the walk. When two blocks share a name the
// later one wins.
func (e *Extractor) Extract(doc Node) *Extraction {
	result := &Extraction{
		Functions: NewFunctionSet(),
		Version:   detectVersion(doc),
	}
	anchors := indexAnchors(doc)

	walk(doc, func(n Node) bool {
		if n.Kind() != ElementNode || n.Tag() != "div" || !n.HasClass(e.conv.FunctionBlockClass) {
			return true
		}

		fn, signature, err := e.parseBlock(n, anchors)
		if err != nil {
			e.logger.Warn("Skipping function block",
				slog.String("signature", signature),
				slog.String("error", err.Error()))
			result.Skipped = append(result.Skipped, SkippedBlock{Signature: signature, Err: err})
			return false
		}

		if replaced := result.Functions.Put(fn); replaced {
			e.logger.Debug("Duplicate function, keeping the later definition",
				slog.String("name", fn.Name))
		}
		return false
	})

	e.logger.Info("Extracted functions",
		slog.Int("functions", result.Functions.Len()),
		slog.Int("skipped", len(result.Skipped)),
		slog.String("version", result.Version))

	return result
}

// ParseSignature parses a single signature line without a description
func (e *Extractor) ParseSignature(signature string) (FunctionDescriptor, error) {
	return e.parser.parse(signature)
}

func (e *Extractor) parseBlock(block Node, anchors anchorIndex) (FunctionDescriptor, string, error) {
	code := findFirst(block, isElement("code"))
	if code == nil {
		return FunctionDescriptor{}, "", ErrNoSignature
	}
	signature := strings.TrimSpace(code.Text())
	if signature == "" {
		return FunctionDescriptor{}, "", ErrNoSignature
	}

	fn, err := e.parser.parse(signature)
	if err != nil {
		return FunctionDescriptor{}, signature, err
	}

	fn.Description = e.findDescription(anchors, fn.Name)
	return fn, signature, nil
}

func detectVersion(doc Node) string {
	var version string
	walk(doc, func(n Node) bool {
		if version != "" {
			return false
		}
		if n.Kind() != TextNode {
			return true
		}
		if m := versionPattern.FindStringSubmatch(n.Text()); m != nil {
			version = strings.TrimRight(m[1], ".")
			return false
		}
		return true
	})
	return version
}

// String summarises the extraction for log lines and CLI output
func (x *Extraction) String() string {
	return fmt.Sprintf("%d functions, %d skipped", x.Functions.Len(), len(x.Skipped))
}
