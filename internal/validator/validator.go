// Package validator checks that a LuaDoc definition file is internally consistent.
package validator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/example/reaper-luadoc/internal/generator"
)

// ErrInvalidLuaDoc is wrapped by every structural problem found in a file
var ErrInvalidLuaDoc = errors.New("invalid luadoc")

var (
	functionLine = regexp.MustCompile(`^function ([\w.]+?)(?::(\w+))?\((.*)\) end$`)
	classLine    = regexp.MustCompile(`^---@class (\S+)$`)
)

// Summary describes a file that passed validation
type Summary struct {
	Classes   int
	Functions int
	Methods   int
}

// ValidateFile reads and validates a LuaDoc file from disk
func ValidateFile(filename string) (*Summary, error) {
	f, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Validate(f, generator.DefaultConventions())
}

// Validate checks the header, that every function's @param lines match its
// argument list and that every custom type it mentions has a class.
func Validate(r io.Reader, conv generator.Conventions) (*Summary, error) {
	v := &luadocValidator{
		conv:     conv,
		declared: map[string]bool{},
		used:     map[string]int{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		v.line++
		if err := v.consume(scanner.Text()); err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidLuaDoc, v.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if err := v.finish(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLuaDoc, err)
	}
	return &v.summary, nil
}

type luadocValidator struct {
	conv     generator.Conventions
	line     int
	pending  []string
	declared map[string]bool
	// used maps a type to the first line referencing it
	used    map[string]int
	hasRoot bool
	summary Summary
}

func (v *luadocValidator) consume(line string) error {
	if v.line == 1 {
		if line != "---@diagnostic disable" {
			return fmt.Errorf("missing diagnostic header, got %q", line)
		}
		return nil
	}

	switch {
	case line == "":
		v.pending = v.pending[:0]
	case strings.HasPrefix(line, "---@class "):
		m := classLine.FindStringSubmatch(line)
		if m == nil {
			return fmt.Errorf("malformed class declaration %q", line)
		}
		if v.declared[m[1]] {
			return fmt.Errorf("class %s declared twice", m[1])
		}
		v.declared[m[1]] = true
		v.summary.Classes++
	case line == v.conv.Namespace+" = {}":
		if !v.declared[v.conv.Namespace] {
			return fmt.Errorf("%s table defined before its class", v.conv.Namespace)
		}
		v.hasRoot = true
	case strings.HasPrefix(line, "---@param "):
		name, typ, _ := strings.Cut(strings.TrimPrefix(line, "---@param "), " ")
		if name == "" || strings.TrimSpace(typ) == "" {
			return fmt.Errorf("@param without a type: %q", line)
		}
		if v.conv.IsReservedWord(name) {
			return fmt.Errorf("parameter %q is a Lua reserved word", name)
		}
		v.pending = append(v.pending, name)
		v.use(strings.TrimSpace(typ))
	case strings.HasPrefix(line, "---@return "):
		for _, slot := range strings.Split(strings.TrimPrefix(line, "---@return "), ", ") {
			if fields := strings.Fields(slot); len(fields) > 0 {
				v.use(fields[0])
			}
		}
	case strings.HasPrefix(line, "function "):
		return v.checkFunction(line)
	}
	return nil
}

// use records a custom type. Multi-word types such as "optional string" are
// never declared as classes and are skipped along with the built-ins.
func (v *luadocValidator) use(typ string) {
	if v.conv.IsBuiltinType(typ) {
		return
	}
	if _, seen := v.used[typ]; !seen {
		v.used[typ] = v.line
	}
}

func (v *luadocValidator) checkFunction(line string) error {
	m := functionLine.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("malformed function definition %q", line)
	}

	var args []string
	if strings.TrimSpace(m[3]) != "" {
		args = strings.Split(m[3], ", ")
	}
	if len(args) != len(v.pending) {
		return fmt.Errorf("%s has %d arguments but %d @param lines", line, len(args), len(v.pending))
	}
	for i, arg := range args {
		if arg != v.pending[i] {
			return fmt.Errorf("%s: argument %d is %q but @param says %q", line, i+1, arg, v.pending[i])
		}
	}

	if m[2] != "" {
		v.summary.Methods++
	} else {
		v.summary.Functions++
	}
	v.pending = v.pending[:0]
	return nil
}

func (v *luadocValidator) finish() error {
	if !v.hasRoot {
		return fmt.Errorf("missing %q", v.conv.Namespace+" = {}")
	}
	missing, first := "", 0
	for typ, line := range v.used {
		if !v.declared[typ] && (first == 0 || line < first || (line == first && typ < missing)) {
			missing, first = typ, line
		}
	}
	if missing != "" {
		return fmt.Errorf("line %d: type %s has no ---@class declaration", first, missing)
	}
	return nil
}
