package generator

// FunctionArgument is one parameter or return slot of a documented function
type FunctionArgument struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
	Value       string `json:"value,omitempty" yaml:"value,omitempty"` // literal default, never set by the extractor
}

// FunctionDescriptor represents one documented API function
type FunctionDescriptor struct {
	Name        string             `json:"name" yaml:"name"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Parameters  []FunctionArgument `json:"parameters" yaml:"parameters"`
	Returns     []FunctionArgument `json:"returns" yaml:"returns"`
}

// FunctionSet maps function names to descriptors while remembering the order
// in which names were first seen. Putting an existing name replaces the stored
// descriptor but keeps its position.
type FunctionSet struct {
	order  []string
	byName map[string]FunctionDescriptor
}

// NewFunctionSet creates an empty set
func NewFunctionSet() *FunctionSet {
	return &FunctionSet{byName: make(map[string]FunctionDescriptor)}
}

// Put stores fn under its name and reports whether an earlier entry was replaced
func (s *FunctionSet) Put(fn FunctionDescriptor) bool {
	_, exists := s.byName[fn.Name]
	if !exists {
		s.order = append(s.order, fn.Name)
	}
	s.byName[fn.Name] = fn
	return exists
}

// Get looks up a descriptor by name
func (s *FunctionSet) Get(name string) (FunctionDescriptor, bool) {
	fn, ok := s.byName[name]
	return fn, ok
}

// Len returns the number of distinct function names
func (s *FunctionSet) Len() int {
	return len(s.order)
}

// Functions returns the descriptors in first-seen order
func (s *FunctionSet) Functions() []FunctionDescriptor {
	fns := make([]FunctionDescriptor, 0, len(s.order))
	for _, name := range s.order {
		fns = append(fns, s.byName[name])
	}
	return fns
}
