package generator

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noTimestamp() RenderOptions {
	return RenderOptions{}
}

func getTrackName() FunctionDescriptor {
	return FunctionDescriptor{
		Name:        "GetTrackName",
		Description: "Returns the track name.",
		Parameters: []FunctionArgument{
			{Name: "track", Type: "MediaTrack", Required: true},
			{Name: "buf", Type: "string", Required: true},
		},
		Returns: []FunctionArgument{{Name: "return", Type: "boolean", Required: true}},
	}
}

func TestRenderGetTrackName(t *testing.T) {
	out := NewRenderer(DefaultConventions()).Render([]FunctionDescriptor{getTrackName()}, noTimestamp())

	expected := "---@diagnostic disable\n" +
		"\n" +
		"-- REAPER API LuaDoc Type Definitions\n" +
		"-- Auto-generated from REAPER API documentation\n" +
		"-- \n" +
		"-- This file provides type definitions for VS Code autocompletion\n" +
		"-- when working with REAPER Lua scripts.\n" +
		"\n" +
		"---@class MediaTrack\n" +
		"\n" +
		"---@class ReaperArray\n" +
		"\n" +
		"---@class reaper\n" +
		"reaper = {}\n" +
		"\n" +
		"---@param track MediaTrack\n" +
		"---@param buf string\n" +
		"---@return boolean\n" +
		"--- Returns the track name.\n" +
		"function reaper.GetTrackName(track, buf) end\n" +
		"\n"
	assert.Equal(t, expected, out)
}

func TestRenderHeader(t *testing.T) {
	fixed := time.Date(2024, 3, 5, 14, 7, 9, 123_000_000, time.FixedZone("CET", 3600))
	opts := RenderOptions{
		Version:          "7.22",
		IncludeTimestamp: true,
		Now:              func() time.Time { return fixed },
	}

	out := NewRenderer(DefaultConventions()).Render(nil, opts)

	assert.Contains(t, out, "-- Generated from REAPER v7.22\n")
	assert.Contains(t, out, "-- Generated on: 2024-03-05T13:07:09.123Z\n")
	assert.True(t, strings.HasPrefix(out, "---@diagnostic disable\n\n"))
}

func TestRenderDefaultOptionsIncludeTimestamp(t *testing.T) {
	out := NewRenderer(DefaultConventions()).Render(nil, DefaultRenderOptions())
	assert.Regexp(t, `-- Generated on: \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z\n`, out)
}

func TestRenderIsDeterministic(t *testing.T) {
	fns := []FunctionDescriptor{
		getTrackName(),
		{
			Name:       "GetMediaItemTake",
			Parameters: []FunctionArgument{{Name: "item", Type: "MediaItem", Required: true}, {Name: "tk", Type: "integer", Required: true}},
			Returns:    []FunctionArgument{{Name: "return", Type: "MediaItem_Take", Required: true}},
		},
		{
			Name:       "GetProjectName",
			Parameters: []FunctionArgument{{Name: "proj", Type: "ReaProject", Required: true}},
			Returns:    []FunctionArgument{{Name: "return", Type: "string", Required: true}},
		},
	}

	renderer := NewRenderer(DefaultConventions())
	first := renderer.Render(fns, RenderOptions{Version: "7.0"})
	second := renderer.Render(fns, RenderOptions{Version: "7.0"})
	assert.Equal(t, first, second)
	assert.NotContains(t, first, "Generated on:")

	// classes are sorted regardless of first use
	assert.Contains(t, first, "---@class MediaItem\n---@class MediaItem_Take\n---@class MediaTrack\n---@class ReaProject\n\n")
}

func TestRenderBuiltinAndMalformedTypesHaveNoClass(t *testing.T) {
	var fns []FunctionDescriptor
	for i := 0; i < 3; i++ {
		fns = append(fns, FunctionDescriptor{
			Name: "Fn" + string(rune('A'+i)),
			Parameters: []FunctionArgument{
				{Name: "a", Type: "integer", Required: true},
				{Name: "b", Type: "optional string", Required: true},
				{Name: "c", Type: "reaper.array", Required: true},
			},
			Returns: []FunctionArgument{{Name: "return", Type: "boolean", Required: true}},
		})
	}

	out := NewRenderer(DefaultConventions()).Render(fns, noTimestamp())

	classes := regexp.MustCompile(`(?m)^---@class (.+)$`).FindAllStringSubmatch(out, -1)
	var declared []string
	for _, m := range classes {
		declared = append(declared, m[1])
	}
	assert.Equal(t, []string{"ReaperArray", "reaper"}, declared)
}

func TestRenderReaperArrayMethods(t *testing.T) {
	fns := []FunctionDescriptor{
		{
			Name:        "clear",
			Description: "Sets all values in the array.",
			Parameters: []FunctionArgument{
				{Name: "self", Type: "ReaperArray", Required: true},
				{Name: "value", Type: "number", Required: true},
				{Name: "offset", Type: "integer", Required: true},
			},
		},
		{
			Name: "get_alloc",
			Parameters: []FunctionArgument{
				{Name: "self", Type: "ReaperArray", Required: true},
			},
			Returns: []FunctionArgument{{Name: "size", Type: "integer", Required: true}},
		},
		{
			Name:       "new_array",
			Parameters: []FunctionArgument{{Name: "size", Type: "integer", Required: true}},
			Returns:    []FunctionArgument{{Name: "return", Type: "ReaperArray", Required: true}},
		},
	}

	out := NewRenderer(DefaultConventions()).Render(fns, noTimestamp())

	assert.Contains(t, out, `---@class ReaperArray
local ReaperArray = {}

---@param value number
---@param offset integer
--- Sets all values in the array.
function ReaperArray:clear(value, offset) end

---@return integer size
function ReaperArray:get_alloc() end

---@class reaper
reaper = {}

---@param size integer
---@return ReaperArray
function reaper.new_array(size) end
`)
	assert.NotContains(t, out, "---@param self")
	assert.Equal(t, 1, strings.Count(out, "---@class ReaperArray"))
}

func TestRenderPrefixedNamesPassThrough(t *testing.T) {
	fns := []FunctionDescriptor{
		{Name: "gfx.update"},
		{Name: "reaper.defer", Parameters: []FunctionArgument{{Name: "callback", Type: "function", Required: true}}},
		{Name: "ShowConsoleMsg", Parameters: []FunctionArgument{{Name: "msg", Type: "string", Required: true}}},
	}

	out := NewRenderer(DefaultConventions()).Render(fns, noTimestamp())

	assert.Contains(t, out, "function gfx.update() end\n")
	assert.Contains(t, out, "function reaper.defer(callback) end\n")
	assert.Contains(t, out, "function reaper.ShowConsoleMsg(msg) end\n")
	assert.NotContains(t, out, "reaper.gfx.")
	assert.NotContains(t, out, "reaper.reaper.")
}

func TestRenderFreeFunctionOrderIsStable(t *testing.T) {
	fns := []FunctionDescriptor{{Name: "Zeta"}, {Name: "Alpha"}, {Name: "Mid"}}

	out := NewRenderer(DefaultConventions()).Render(fns, noTimestamp())

	z := strings.Index(out, "function reaper.Zeta()")
	a := strings.Index(out, "function reaper.Alpha()")
	m := strings.Index(out, "function reaper.Mid()")
	require.True(t, z >= 0 && a >= 0 && m >= 0)
	assert.True(t, z < a && a < m)
}

func TestRenderParameterDescription(t *testing.T) {
	fns := []FunctionDescriptor{{
		Name:       "SetCursor",
		Parameters: []FunctionArgument{{Name: "time", Type: "number", Description: "position in seconds", Required: true}},
	}}

	out := NewRenderer(DefaultConventions()).Render(fns, noTimestamp())
	assert.Contains(t, out, "---@param time number position in seconds\n")
	assert.NotContains(t, out, "---@return")
}

func TestRenderRoundTripTypes(t *testing.T) {
	fn := FunctionDescriptor{
		Name: "GetSetMediaTrackInfo",
		Parameters: []FunctionArgument{
			{Name: "tr", Type: "MediaTrack", Required: true},
			{Name: "parmname", Type: "string", Required: true},
			{Name: "setNewValue", Type: "boolean", Required: true},
		},
		Returns: []FunctionArgument{
			{Name: "return", Type: "boolean", Required: true},
			{Name: "return", Type: "string", Required: true},
		},
	}

	out := NewRenderer(DefaultConventions()).Render([]FunctionDescriptor{fn}, noTimestamp())

	var paramTypes []string
	for _, m := range regexp.MustCompile(`(?m)^---@param \S+ (\S+)`).FindAllStringSubmatch(out, -1) {
		paramTypes = append(paramTypes, m[1])
	}
	assert.Equal(t, []string{"MediaTrack", "string", "boolean"}, paramTypes)

	returnLine := regexp.MustCompile(`(?m)^---@return (.+)$`).FindStringSubmatch(out)
	require.NotNil(t, returnLine)
	assert.Equal(t, []string{"boolean", "string"}, strings.Split(returnLine[1], ", "))
}

func TestRenderReservedWordParameter(t *testing.T) {
	extractor := NewExtractor(DefaultConventions(), quietLogger())
	fn, err := extractor.ParseSignature("integer reaper.CountSelected(integer start, integer end)")
	require.NoError(t, err)

	out := NewRenderer(DefaultConventions()).Render([]FunctionDescriptor{fn}, noTimestamp())

	assert.Contains(t, out, "---@param end_ integer\n")
	assert.Contains(t, out, "function reaper.CountSelected(start, end_) end\n")
	assert.NotContains(t, out, "---@param end ")
}

func TestRenderNamespaceTypeIsDeclaredOnce(t *testing.T) {
	fns := []FunctionDescriptor{{
		Name:       "GetEnvironment",
		Parameters: []FunctionArgument{{Name: "api", Type: "reaper", Required: true}},
		Returns:    []FunctionArgument{{Name: "return", Type: "ReaperArray", Required: true}},
	}}

	out := NewRenderer(DefaultConventions()).Render(fns, noTimestamp())

	assert.Equal(t, 1, strings.Count(out, "---@class reaper\n"))
	assert.Equal(t, 1, strings.Count(out, "---@class ReaperArray\n"))
	assert.Contains(t, out, "---@param api reaper\n")
}
