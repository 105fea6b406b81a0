package connstate

import (
	"strings"

	"github.com/wireline-mud/wireline/internal/ansi"
)

// PromptGroup is a sparse, index-addressed set of recognized prompt
// slices (e.g. one index per status-bar field: HP, mana, prompt
// text). Setting a higher index than has been seen before grows the
// group with unset holes rather than erroring.
type PromptGroup struct {
	values []*ansi.String
}

// Len reports the highest index set, plus one.
func (g *PromptGroup) Len() int { return len(g.values) }

// IsEmpty reports whether no index has ever been set.
func (g *PromptGroup) IsEmpty() bool { return len(g.values) == 0 }

// Get returns the content at index, if it has been set.
func (g *PromptGroup) Get(index int) (ansi.String, bool) {
	if index < 0 || index >= len(g.values) || g.values[index] == nil {
		return ansi.String{}, false
	}
	return *g.values[index], true
}

// SetIndex records content at index, growing the group as needed.
// Trailing \r\n is trimmed — a prompt matcher typically still includes
// the line terminator in its matched slice.
func (g *PromptGroup) SetIndex(index int, content ansi.String) {
	for len(g.values) <= index {
		g.values = append(g.values, nil)
	}
	trimmed := ansi.FromString(strings.TrimRight(content.String(), "\r\n"))
	g.values[index] = &trimmed
}

// PromptGroups holds every registered prompt group for a connection,
// keyed by the caller-assigned group id.
type PromptGroups struct {
	groups map[string]*PromptGroup
}

// NewPromptGroups returns an empty set of prompt groups.
func NewPromptGroups() *PromptGroups {
	return &PromptGroups{groups: make(map[string]*PromptGroup)}
}

// GetOrCreate returns the group for groupID, creating an empty one if
// it doesn't exist yet.
func (p *PromptGroups) GetOrCreate(groupID string) *PromptGroup {
	g, ok := p.groups[groupID]
	if !ok {
		g = &PromptGroup{}
		p.groups[groupID] = g
	}
	return g
}

// Get returns the group for groupID, if registered.
func (p *PromptGroups) Get(groupID string) (*PromptGroup, bool) {
	g, ok := p.groups[groupID]
	return g, ok
}

// Remove deletes a prompt group.
func (p *PromptGroups) Remove(groupID string) { delete(p.groups, groupID) }

// Clear removes every prompt group.
func (p *PromptGroups) Clear() { p.groups = make(map[string]*PromptGroup) }
