package document

// Selection is an anchor/focus pair of (block key, offset) positions.
//
// Anchor is where the selection started and Focus where it ends; IsBackward
// is set when Focus precedes Anchor in document order. Use
// ContentState.Select to build selections with IsBackward computed.
type Selection struct {
	AnchorKey    string
	AnchorOffset int
	FocusKey     string
	FocusOffset  int
	IsBackward   bool
}

// Collapsed returns a caret selection at (key, offset).
func Collapsed(key string, offset int) Selection {
	return Selection{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
	}
}

func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

func (s Selection) StartKey() string {
	if s.IsBackward {
		return s.FocusKey
	}
	return s.AnchorKey
}

func (s Selection) StartOffset() int {
	if s.IsBackward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

func (s Selection) EndKey() string {
	if s.IsBackward {
		return s.AnchorKey
	}
	return s.FocusKey
}

func (s Selection) EndOffset() int {
	if s.IsBackward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// Start returns the collapsed selection at the start position.
func (s Selection) Start() Selection {
	return Collapsed(s.StartKey(), s.StartOffset())
}

// End returns the collapsed selection at the end position.
func (s Selection) End() Selection {
	return Collapsed(s.EndKey(), s.EndOffset())
}
