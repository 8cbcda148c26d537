package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// RenderOptions controls the generated header
type RenderOptions struct {
	// Version is printed in the header when non-empty
	Version string
	// IncludeTimestamp adds a generation time line. Disable it for
	// reproducible output, e.g. when CI diffs the generated file.
	IncludeTimestamp bool
	// Now overrides the clock used for the timestamp
	Now func() time.Time
}

// DefaultRenderOptions returns options with the timestamp enabled
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{IncludeTimestamp: true, Now: time.Now}
}

// Renderer produces LuaDoc/EmmyLua annotations from function descriptors
type Renderer struct {
	conv Conventions
}

// NewRenderer creates a renderer for the given conventions
func NewRenderer(conv Conventions) *Renderer {
	return &Renderer{conv: conv}
}

// Render returns the annotation file for functions. Free functions keep the
// order they are given in.
func (r *Renderer) Render(functions []FunctionDescriptor, opts RenderOptions) string {
	var methods, globals []FunctionDescriptor
	for _, fn := range functions {
		if r.isArrayMethod(fn) {
			methods = append(methods, fn)
		} else {
			globals = append(globals, fn)
		}
	}

	var sb strings.Builder
	r.writeHeader(&sb, opts)

	customTypes := r.customTypes(functions)
	for _, typ := range customTypes {
		fmt.Fprintf(&sb, "---@class %s\n", typ)
	}
	if len(customTypes) > 0 {
		sb.WriteString("\n")
	}

	if len(methods) > 0 {
		fmt.Fprintf(&sb, "---@class %s\n", r.conv.ArrayType)
		fmt.Fprintf(&sb, "local %s = {}\n\n", r.conv.ArrayType)
		for _, fn := range methods {
			params := fn.Parameters[1:]
			r.writeAnnotations(&sb, fn, params)
			fmt.Fprintf(&sb, "function %s:%s(%s) end\n\n", r.conv.ArrayType, fn.Name, joinNames(params))
		}
	} else {
		fmt.Fprintf(&sb, "---@class %s\n\n", r.conv.ArrayType)
	}

	fmt.Fprintf(&sb, "---@class %s\n", r.conv.Namespace)
	fmt.Fprintf(&sb, "%s = {}\n\n", r.conv.Namespace)

	for _, fn := range globals {
		r.writeAnnotations(&sb, fn, fn.Parameters)
		fmt.Fprintf(&sb, "function %s(%s) end\n\n", r.conv.QualifiedName(fn.Name), joinNames(fn.Parameters))
	}

	return sb.String()
}

func (r *Renderer) writeHeader(sb *strings.Builder, opts RenderOptions) {
	sb.WriteString("---@diagnostic disable\n")
	sb.WriteString("\n")
	sb.WriteString("-- REAPER API LuaDoc Type Definitions\n")
	sb.WriteString("-- Auto-generated from REAPER API documentation\n")
	if opts.Version != "" {
		fmt.Fprintf(sb, "-- Generated from REAPER v%s\n", opts.Version)
	}
	if opts.IncludeTimestamp {
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		fmt.Fprintf(sb, "-- Generated on: %s\n", now().UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	sb.WriteString("-- \n")
	sb.WriteString("-- This file provides type definitions for VS Code autocompletion\n")
	sb.WriteString("-- when working with REAPER Lua scripts.\n")
	sb.WriteString("\n")
}

func (r *Renderer) writeAnnotations(sb *strings.Builder, fn FunctionDescriptor, params []FunctionArgument) {
	for _, param := range params {
		fmt.Fprintf(sb, "---@param %s %s", param.Name, param.Type)
		if param.Description != "" {
			fmt.Fprintf(sb, " %s", param.Description)
		}
		sb.WriteString("\n")
	}

	if len(fn.Returns) > 0 {
		slots := make([]string, len(fn.Returns))
		for i, ret := range fn.Returns {
			if ret.Name != "" && ret.Name != r.conv.ReturnPlaceholder {
				slots[i] = ret.Type + " " + ret.Name
			} else {
				slots[i] = ret.Type
			}
		}
		fmt.Fprintf(sb, "---@return %s\n", strings.Join(slots, ", "))
	}

	if fn.Description != "" {
		fmt.Fprintf(sb, "--- %s\n", fn.Description)
	}
}

func (r *Renderer) isArrayMethod(fn FunctionDescriptor) bool {
	return len(fn.Parameters) > 0 &&
		fn.Parameters[0].Name == r.conv.SelfName &&
		fn.Parameters[0].Type == r.conv.ArrayType
}

// customTypes collects the sorted, distinct types that need a class declaration.
// ArrayType and Namespace always get their own class further down.
func (r *Renderer) customTypes(functions []FunctionDescriptor) []string {
	seen := make(map[string]bool)
	collect := func(args []FunctionArgument) {
		for _, arg := range args {
			if arg.Type != r.conv.ArrayType && arg.Type != r.conv.Namespace && !r.conv.IsBuiltinType(arg.Type) {
				seen[arg.Type] = true
			}
		}
	}
	for _, fn := range functions {
		collect(fn.Parameters)
		collect(fn.Returns)
	}

	types := make([]string, 0, len(seen))
	for typ := range seen {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

func joinNames(params []FunctionArgument) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}
