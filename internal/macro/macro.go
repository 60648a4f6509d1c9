// Package macro implements the preprocessor macro definition registry used
// when merging defines from conan dependencies with user overrides.
//
// A definition is a textual token of the form "NAME" or "NAME=VALUE". The
// macro name is the unique key; adding a second definition for the same name
// overwrites the first, and the previous value is reported back so callers
// can layer their own conflict policy on top. The registry itself never
// fails.
package macro

import (
	"sort"
	"strings"
)

// Definitions is a collection of preprocessor macro definitions keyed by
// macro name. A macro has at most one live definition at any time.
//
// Definitions is not safe for concurrent use; it is populated and read
// within a single generation run.
type Definitions struct {
	byName map[string]string
}

// NewDefinitions returns an empty collection.
func NewDefinitions() *Definitions {
	return &Definitions{byName: make(map[string]string)}
}

// Name extracts a macro's name from its definition. For "NAME=VALUE" the
// name is everything before the first '='; a definition without '=' is its
// own name.
func Name(definition string) string {
	if i := strings.IndexByte(definition, '='); i >= 0 {
		return definition[:i]
	}
	return definition
}

// Add stores definition under its macro name, overwriting any definition
// already held for that name. It returns the previous definition and whether
// one existed, so callers can distinguish a first insertion from an
// overwrite even when the previous definition was empty.
func (d *Definitions) Add(definition string) (previous string, existed bool) {
	name := Name(definition)
	previous, existed = d.byName[name]
	d.byName[name] = definition
	return previous, existed
}

// Remove deletes the definition stored under name. It returns the removed
// definition and whether one existed; removing an absent name is a no-op.
func (d *Definitions) Remove(name string) (removed string, existed bool) {
	removed, existed = d.byName[name]
	if existed {
		delete(d.byName, name)
	}
	return removed, existed
}

// List returns every stored definition sorted ascending by the full
// definition string, including any "=VALUE" suffix. It does not mutate the
// collection; successive calls between mutations return equal results.
func (d *Definitions) List() []string {
	defines := make([]string, 0, len(d.byName))
	for _, define := range d.byName {
		defines = append(defines, define)
	}
	sort.Strings(defines)
	return defines
}
