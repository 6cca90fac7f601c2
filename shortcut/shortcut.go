// Package shortcut turns markdown-like prefixes typed at the start of a block
// into block types and inline styles.
//
// The Interceptor sees each printable input before it is inserted. When the
// block text up to the caret plus the pending input exactly equals a trigger
// pattern, the trigger's action is applied and the typed prefix is replaced
// by a single space.
package shortcut

import (
	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
)

type ActionKind int

const (
	ActionBlockType ActionKind = iota
	ActionInlineStyle
)

func (k ActionKind) String() string {
	switch k {
	case ActionBlockType:
		return "block"
	case ActionInlineStyle:
		return "inline-style"
	default:
		return "unknown"
	}
}

// Action is what a trigger does. Value is a document.BlockType for
// ActionBlockType and an inline style name for ActionInlineStyle.
type Action struct {
	Kind  ActionKind
	Value string
}

type Trigger struct {
	Pattern string
	Action  Action
}

// DefaultTriggers returns the built-in trigger table.
func DefaultTriggers() []Trigger {
	return []Trigger{
		{Pattern: "# ", Action: Action{Kind: ActionBlockType, Value: string(document.BlockHeaderOne)}},
		{Pattern: "* ", Action: Action{Kind: ActionInlineStyle, Value: document.StyleBold}},
		{Pattern: "** ", Action: Action{Kind: ActionInlineStyle, Value: document.StyleRed}},
		{Pattern: "*** ", Action: Action{Kind: ActionInlineStyle, Value: document.StyleUnderline}},
	}
}

// Interceptor matches pending input against a trigger table. The zero value
// matches nothing; use New.
type Interceptor struct {
	order    []string
	triggers map[string]Action
}

// New builds an Interceptor. With no triggers it uses DefaultTriggers. When
// patterns repeat, the last one wins. Empty patterns are ignored.
func New(triggers ...Trigger) *Interceptor {
	if len(triggers) == 0 {
		triggers = DefaultTriggers()
	}
	in := &Interceptor{triggers: make(map[string]Action, len(triggers))}
	for _, t := range triggers {
		if t.Pattern == "" {
			continue
		}
		if _, ok := in.triggers[t.Pattern]; !ok {
			in.order = append(in.order, t.Pattern)
		}
		in.triggers[t.Pattern] = t.Action
	}
	return in
}

// Triggers returns the active triggers in first-declaration order.
func (in *Interceptor) Triggers() []Trigger {
	if in == nil {
		return nil
	}
	out := make([]Trigger, 0, len(in.order))
	for _, p := range in.order {
		out = append(out, Trigger{Pattern: p, Action: in.triggers[p]})
	}
	return out
}

// Match reports the action for an exact pattern.
func (in *Interceptor) Match(preceding string) (Action, bool) {
	if in == nil || len(in.triggers) == 0 {
		return Action{}, false
	}
	a, ok := in.triggers[preceding]
	return a, ok
}

// Intercept decides whether chars, about to be typed at the selection, fire a
// trigger. When it does, it returns the resulting state and true; otherwise
// it returns nil and false and the caller inserts chars normally.
//
// A non-empty range selection never fires a trigger.
func (in *Interceptor) Intercept(es *editorstate.EditorState, chars string) (*editorstate.EditorState, bool) {
	if es == nil || chars == "" {
		return nil, false
	}
	sel := es.Selection()
	if !sel.IsCollapsed() {
		return nil, false
	}
	block := es.Content().Block(sel.StartKey())
	if block == nil {
		return nil, false
	}
	off := sel.StartOffset()

	action, ok := in.Match(block.TextUntil(off) + chars)
	if !ok {
		return nil, false
	}

	var (
		toggled *editorstate.EditorState
		change  editorstate.ChangeType
	)
	switch action.Kind {
	case ActionBlockType:
		toggled = editorstate.ToggleBlockType(es, document.BlockType(action.Value))
		change = editorstate.ChangeBlockType
	case ActionInlineStyle:
		toggled = editorstate.ToggleInlineStyle(es, action.Value)
		change = editorstate.ChangeInlineStyle
	default:
		return nil, false
	}

	// The pending input never reaches the block, so only [0, off) holds
	// trigger text. Widening to off+1 would also eat the character after
	// the caret.
	content := toggled.Content()
	prefix := content.Select(block.Key(), 0, block.Key(), off)
	replaced := document.ReplaceText(content, prefix, " ", toggled.CurrentInlineStyle(), "")
	return editorstate.Push(toggled, replaced, change), true
}
