package picker

// RangeContent is one option of a column. Either field may be empty.
type RangeContent struct {
	Icon string `json:"icon,omitempty"`
	Text string `json:"text"`
}

// ColumnKind tells how the rows of a column are drawn.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindIcon
	KindMixed
)

func (k ColumnKind) String() string {
	switch k {
	case KindIcon:
		return "icon"
	case KindMixed:
		return "mixed"
	default:
		return "text"
	}
}

// kindOf derives the column kind from its options. A column is an icon column
// only when every option is icon-only; any icon next to text makes it mixed.
func kindOf(options []RangeContent) ColumnKind {
	icons, texts := 0, 0
	for _, o := range options {
		if o.Icon != "" {
			icons++
		}
		if o.Text != "" {
			texts++
		}
	}
	switch {
	case icons == 0:
		return KindText
	case texts == 0:
		return KindIcon
	default:
		return KindMixed
	}
}

// TextOptions wraps plain strings as options.
func TextOptions(texts ...string) []RangeContent {
	out := make([]RangeContent, len(texts))
	for i, t := range texts {
		out[i] = RangeContent{Text: t}
	}
	return out
}
