package document

import (
	"sort"
	"strings"
)

// Inline style names understood by the editor. Any other name is carried
// through the model and raw form untouched.
const (
	StyleBold      = "BOLD"
	StyleItalic    = "ITALIC"
	StyleUnderline = "UNDERLINE"
	StyleCode      = "CODE"
	StyleRed       = "RED"
)

// StyleSet is an immutable set of inline style names. The zero value is the
// empty set.
type StyleSet struct {
	names []string // sorted, unique
}

func NewStyleSet(names ...string) StyleSet {
	var s StyleSet
	for _, n := range names {
		s = s.Add(n)
	}
	return s
}

func (s StyleSet) Has(name string) bool {
	i := sort.SearchStrings(s.names, name)
	return i < len(s.names) && s.names[i] == name
}

func (s StyleSet) Add(name string) StyleSet {
	if name == "" || s.Has(name) {
		return s
	}
	i := sort.SearchStrings(s.names, name)
	out := make([]string, 0, len(s.names)+1)
	out = append(out, s.names[:i]...)
	out = append(out, name)
	out = append(out, s.names[i:]...)
	return StyleSet{names: out}
}

func (s StyleSet) Remove(name string) StyleSet {
	i := sort.SearchStrings(s.names, name)
	if i >= len(s.names) || s.names[i] != name {
		return s
	}
	if len(s.names) == 1 {
		return StyleSet{}
	}
	out := make([]string, 0, len(s.names)-1)
	out = append(out, s.names[:i]...)
	out = append(out, s.names[i+1:]...)
	return StyleSet{names: out}
}

// Toggle removes name when present and adds it otherwise.
func (s StyleSet) Toggle(name string) StyleSet {
	if s.Has(name) {
		return s.Remove(name)
	}
	return s.Add(name)
}

// Names returns the style names in sorted order.
func (s StyleSet) Names() []string {
	if len(s.names) == 0 {
		return nil
	}
	return append([]string(nil), s.names...)
}

func (s StyleSet) Len() int { return len(s.names) }

func (s StyleSet) IsEmpty() bool { return len(s.names) == 0 }

func (s StyleSet) Equal(o StyleSet) bool {
	if len(s.names) != len(o.names) {
		return false
	}
	for i := range s.names {
		if s.names[i] != o.names[i] {
			return false
		}
	}
	return true
}

func (s StyleSet) String() string {
	return "{" + strings.Join(s.names, ",") + "}"
}
