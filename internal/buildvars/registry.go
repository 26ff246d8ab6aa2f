// SPDX-License-Identifier: MPL-2.0

package buildvars

import (
	"slices"

	"golang.org/x/exp/maps"
)

type (
	// Action is one provenance note, such as "lgrind / Install / Installed lgrind into /opt/x".
	Action struct {
		Category string `toml:"category"`
		Phase    string `toml:"phase"`
		Message  string `toml:"message"`
	}

	// Registry accumulates build variables and provenance notes. It is meant
	// for sequential use within one configuration run.
	Registry struct {
		vars    map[string]string
		actions []Action
	}
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{vars: make(map[string]string)}
}

// SetVariable records name = value, replacing any earlier value.
func (r *Registry) SetVariable(name, value string) {
	r.vars[name] = value
}

// NoteAction appends a provenance note.
func (r *Registry) NoteAction(category, phase, message string) {
	r.actions = append(r.actions, Action{Category: category, Phase: phase, Message: message})
}

// Variable returns the value recorded for name.
func (r *Registry) Variable(name string) (string, bool) {
	v, ok := r.vars[name]
	return v, ok
}

// Variables returns a copy of all recorded variables.
func (r *Registry) Variables() map[string]string {
	return maps.Clone(r.vars)
}

// Names returns the recorded variable names in sorted order.
func (r *Registry) Names() []string {
	names := maps.Keys(r.vars)
	slices.Sort(names)
	return names
}

// Actions returns the provenance notes in the order they were made.
func (r *Registry) Actions() []Action {
	return slices.Clone(r.actions)
}
