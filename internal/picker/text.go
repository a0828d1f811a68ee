package picker

import (
	"log/slog"
)

// CascadeOption is one node of a cascading option tree.
type CascadeOption struct {
	Content  RangeContent    `json:"content"`
	Children []CascadeOption `json:"children,omitempty"`
}

// TextOptionsSet configures a TextPicker. Exactly one of Range, Columns and
// Cascade is expected; they are tried in that order.
type TextOptionsSet struct {
	// Range is a single column.
	Range []RangeContent
	// Columns are independent columns.
	Columns [][]RangeContent
	// Cascade is a tree: each column lists the children of the selection in
	// the column before it.
	Cascade []CascadeOption

	Selected    []int
	DisableLoop bool
	Disabled    bool

	Theme    *Theme
	Measurer Measurer
	Animator Animator
	Logger   *slog.Logger
}

// TextPicker shows one or more columns of arbitrary options.
type TextPicker struct {
	*orchestrator

	opts    TextOptionsSet
	cascade bool
}

// NewTextPicker builds a text picker.
func NewTextPicker(opts TextOptionsSet) *TextPicker {
	p := &TextPicker{opts: opts}
	if p.opts.Theme == nil {
		p.opts.Theme = DefaultTheme()
	}
	p.orchestrator = newOrchestrator(p, opts.Animator, opts.Logger)

	var initial [][]RangeContent
	switch {
	case len(opts.Range) > 0:
		initial = [][]RangeContent{opts.Range}
	case len(opts.Columns) > 0:
		initial = opts.Columns
	case len(opts.Cascade) > 0:
		p.cascade = true
		initial = make([][]RangeContent, cascadeDepth(opts.Cascade))
	}

	for i, options := range initial {
		p.columns = append(p.columns, NewColumn(ColumnConfig{
			Tag:      i,
			Loop:     !opts.DisableLoop,
			Disabled: opts.Disabled,
			Theme:    p.opts.Theme,
			Measurer: opts.Measurer,
			Logger:   opts.Logger,
		}, options, indexAt(opts.Selected, i)))
	}
	if p.cascade {
		p.rebuildFrom(0, opts.Selected)
	}
	return p
}

// Values returns the selected text of every column.
func (p *TextPicker) Values() []string { return p.texts() }

// Indexes returns the selected index of every column.
func (p *TextPicker) Indexes() []int {
	out := make([]int, len(p.columns))
	for i, c := range p.columns {
		out[i] = c.CurrentIndex()
	}
	return out
}

// SetSelected selects indexes column by column. Cascaded columns after a
// changed one are rebuilt.
func (p *TextPicker) SetSelected(indexes []int) {
	if p.cascade {
		p.rebuildFrom(0, indexes)
		return
	}
	for i, c := range p.columns {
		if i < len(indexes) {
			c.SetCurrentIndex(indexes[i])
		}
	}
}

// Event builds the change event for the current selection.
func (p *TextPicker) Event(status Status) ChangeEvent {
	return ChangeEvent{
		Kind:    KindTextPicker,
		Status:  status,
		Values:  p.Values(),
		Indexes: p.Indexes(),
		Texts:   p.texts(),
	}
}

// applyChange rebuilds the columns that depend on the changed one.
func (p *TextPicker) applyChange(ch IndexChange) {
	if !p.cascade {
		return
	}
	p.rebuildFrom(ch.Tag+1, p.Indexes())
}

// rebuildFrom refreshes cascaded columns starting at level from. Each column
// keeps its index in want when it is still valid, otherwise it selects 0.
func (p *TextPicker) rebuildFrom(from int, want []int) {
	nodes := p.opts.Cascade
	for level, c := range p.columns {
		if level >= from {
			options := make([]RangeContent, len(nodes))
			for i, n := range nodes {
				options[i] = n.Content
			}
			idx := indexAt(want, level)
			if idx < 0 || idx >= len(options) {
				idx = 0
			}
			c.SetOptions(options, idx)
		}
		sel := c.CurrentIndex()
		if sel < 0 || sel >= len(nodes) {
			nodes = nil
			continue
		}
		nodes = nodes[sel].Children
	}
}

// cascadeDepth is the length of the longest path in the tree.
func cascadeDepth(nodes []CascadeOption) int {
	depth := 0
	for _, n := range nodes {
		depth = max(depth, 1+cascadeDepth(n.Children))
	}
	return depth
}

func indexAt(indexes []int, i int) int {
	if i < 0 || i >= len(indexes) {
		return 0
	}
	return indexes[i]
}
