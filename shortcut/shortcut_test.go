package shortcut

import (
	"testing"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
)

// typeInto feeds s rune by rune through the interceptor, falling back to
// plain insertion like the editor does.
func typeInto(in *Interceptor, es *editorstate.EditorState, s string) *editorstate.EditorState {
	for _, r := range s {
		ch := string(r)
		if next, ok := in.Intercept(es, ch); ok {
			es = next
			continue
		}
		es = editorstate.InsertCharacters(es, ch)
	}
	return es
}

func TestIntercept_HeaderOne(t *testing.T) {
	in := New()
	es := typeInto(in, editorstate.CreateEmpty(editorstate.Options{}), "# Hello")

	b := es.Content().FirstBlock()
	if b.Type() != document.BlockHeaderOne {
		t.Fatalf("type=%q, want %q", b.Type(), document.BlockHeaderOne)
	}
	if got, want := b.Text(), " Hello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := es.Selection(), document.Collapsed(b.Key(), 6); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestIntercept_InlineStyles(t *testing.T) {
	cases := []struct {
		typed string
		want  string
		style string
		other []string
	}{
		{typed: "* Bold", want: " Bold", style: document.StyleBold, other: []string{document.StyleRed, document.StyleUnderline}},
		{typed: "** Red", want: " Red", style: document.StyleRed, other: []string{document.StyleBold, document.StyleUnderline}},
		{typed: "*** Under", want: " Under", style: document.StyleUnderline, other: []string{document.StyleBold, document.StyleRed}},
	}
	for _, tc := range cases {
		t.Run(tc.style, func(t *testing.T) {
			es := typeInto(New(), editorstate.CreateEmpty(editorstate.Options{}), tc.typed)
			b := es.Content().FirstBlock()

			if got := b.Text(); got != tc.want {
				t.Fatalf("text=%q, want %q", got, tc.want)
			}
			if b.Type() != document.BlockUnstyled {
				t.Fatalf("type=%q, want unstyled", b.Type())
			}
			for i := 0; i < b.Len(); i++ {
				st := b.StyleAt(i)
				if !st.Has(tc.style) {
					t.Fatalf("char %d style=%v, want %s", i, st, tc.style)
				}
				for _, o := range tc.other {
					if st.Has(o) {
						t.Fatalf("char %d style=%v, must not have %s", i, st, o)
					}
				}
			}
		})
	}
}

func TestIntercept_NotHandled(t *testing.T) {
	in := New()
	cases := []struct {
		name  string
		text  string
		off   int
		chars string
	}{
		{name: "plain text", text: "hello", off: 5, chars: " "},
		{name: "trigger not at block start", text: "x#", off: 2, chars: " "},
		{name: "partial pattern", text: "*", off: 1, chars: "*"},
		{name: "longer than any pattern", text: "****", off: 4, chars: " "},
		{name: "hash without space", text: "#", off: 1, chars: "#"},
		{name: "caret before trailing text", text: "#abc", off: 0, chars: " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			es := editorstate.CreateWithContent(document.NewContent(
				document.NewBlock("k", "", tc.text, document.StyleSet{}),
			), editorstate.Options{})
			es = editorstate.AcceptSelection(es, document.Collapsed("k", tc.off))
			next, ok := in.Intercept(es, tc.chars)
			if ok || next != nil {
				t.Fatalf("Intercept(%q + %q) handled, want not handled", tc.text, tc.chars)
			}
		})
	}
}

func TestIntercept_KeepsTextAfterCaret(t *testing.T) {
	es := editorstate.CreateWithContent(document.NewContent(
		document.NewBlock("k", "", "#title", document.StyleSet{}),
	), editorstate.Options{})
	es = editorstate.AcceptSelection(es, document.Collapsed("k", 1))

	next, ok := New().Intercept(es, " ")
	if !ok {
		t.Fatalf("expected trigger to fire")
	}
	b := next.Content().Block("k")
	if got, want := b.Text(), " title"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.Type() != document.BlockHeaderOne {
		t.Fatalf("type=%q, want header-one", b.Type())
	}
	if got, want := next.Selection(), document.Collapsed("k", 1); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
}

func TestIntercept_DeclinesRangeSelection(t *testing.T) {
	es := editorstate.CreateWithContent(document.NewContent(
		document.NewBlock("k", "", "#abc", document.StyleSet{}),
	), editorstate.Options{})
	es = editorstate.AcceptSelection(es, es.Content().Select("k", 1, "k", 4))

	if next, ok := New().Intercept(es, " "); ok || next != nil {
		t.Fatalf("range selection must not fire a trigger")
	}
}

func TestIntercept_HeaderToggleResets(t *testing.T) {
	es := editorstate.CreateWithContent(document.NewContent(
		document.NewBlock("k", document.BlockHeaderOne, "#", document.StyleSet{}),
	), editorstate.Options{})
	es = editorstate.AcceptSelection(es, document.Collapsed("k", 1))

	next, ok := New().Intercept(es, " ")
	if !ok {
		t.Fatalf("expected trigger to fire")
	}
	if got := next.Content().Block("k").Type(); got != document.BlockUnstyled {
		t.Fatalf("type=%q, want unstyled", got)
	}
}

func TestIntercept_Undo(t *testing.T) {
	in := New()
	es := typeInto(in, editorstate.CreateEmpty(editorstate.Options{}), "* ")
	if got := es.Content().PlainText(); got != " " {
		t.Fatalf("text=%q, want %q", got, " ")
	}
	if es.LastChangeType() != editorstate.ChangeInlineStyle {
		t.Fatalf("last change=%q, want %q", es.LastChangeType(), editorstate.ChangeInlineStyle)
	}

	es = editorstate.Undo(es)
	if got := es.Content().PlainText(); got != "*" {
		t.Fatalf("text after undo=%q, want %q", got, "*")
	}
	key := es.Content().FirstBlock().Key()
	if got, want := es.Selection(), document.Collapsed(key, 1); got != want {
		t.Fatalf("selection after undo=%v, want %v", got, want)
	}
}

func TestNew_LastDuplicateWins(t *testing.T) {
	in := New(
		Trigger{Pattern: "> ", Action: Action{Kind: ActionBlockType, Value: string(document.BlockBlockquote)}},
		Trigger{Pattern: "- ", Action: Action{Kind: ActionBlockType, Value: string(document.BlockUnorderedListItem)}},
		Trigger{Pattern: "> ", Action: Action{Kind: ActionBlockType, Value: string(document.BlockCodeBlock)}},
		Trigger{Pattern: ""},
	)
	a, ok := in.Match("> ")
	if !ok || a.Value != string(document.BlockCodeBlock) {
		t.Fatalf("Match(\"> \")=%v,%v, want code-block", a, ok)
	}
	if _, ok := in.Match("# "); ok {
		t.Fatalf("custom table must not include defaults")
	}
	got := in.Triggers()
	if len(got) != 2 || got[0].Pattern != "> " || got[1].Pattern != "- " {
		t.Fatalf("Triggers()=%v, want [> , - ] in declaration order", got)
	}
}

func TestNilInterceptor(t *testing.T) {
	var in *Interceptor
	es := editorstate.CreateEmpty(editorstate.Options{})
	if next, ok := in.Intercept(es, "# "); ok || next != nil {
		t.Fatalf("nil interceptor must not handle input")
	}
}
