package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/iw2rmb/draftmark/document"
	"github.com/iw2rmb/draftmark/editorstate"
)

// DefaultKey is the store key documents are saved under.
const DefaultKey = "editorContent"

// ErrMalformedDocument is returned by Load when the stored value cannot be
// decoded into a document.
var ErrMalformedDocument = errors.New("persist: malformed document")

// Bridge saves and loads one document under one key.
type Bridge struct {
	store Store
	key   string
}

// NewBridge returns a Bridge over store. An empty key means DefaultKey.
func NewBridge(store Store, key string) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	return &Bridge{store: store, key: key}
}

func (b *Bridge) Key() string { return b.key }

// Save serializes content and overwrites the stored value.
func (b *Bridge) Save(ctx context.Context, content *document.ContentState) error {
	data, err := document.MarshalRaw(content)
	if err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	return b.store.Set(ctx, b.key, string(data))
}

// Load reads the stored document. It returns (nil, nil) when nothing has
// been saved or the stored value is empty. A value that is not a raw document yields an error wrapping
// ErrMalformedDocument.
func (b *Bridge) Load(ctx context.Context) (*document.ContentState, error) {
	raw, ok, err := b.store.Get(ctx, b.key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) {
		return nil, fmt.Errorf("%w: %q is not valid JSON", ErrMalformedDocument, b.key)
	}
	if !gjson.Get(raw, "blocks").IsArray() {
		return nil, fmt.Errorf("%w: %q has no blocks array", ErrMalformedDocument, b.key)
	}
	content, err := document.UnmarshalRaw([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return content, nil
}

// LoadState builds the initial editor state: the stored document with the
// caret at its start, or an empty document when nothing is stored.
func (b *Bridge) LoadState(ctx context.Context, opt editorstate.Options) (*editorstate.EditorState, error) {
	content, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return editorstate.CreateEmpty(opt), nil
	}
	return editorstate.CreateWithContent(content, opt), nil
}
