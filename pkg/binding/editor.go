// Package binding connects a text-entry control to a value. An Editor keeps
// the cursor and selection of the control and forwards every keystroke to the
// value's interactive edit path.
package binding

import (
	"unicode/utf8"

	"github.com/goliatone/go-formvalue/pkg/notify"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// Buffer is the state a control renders: the value text, the cursor (Dot)
// and the selection anchor. Positions are rune indexes; the selection spans
// from Anchor to Dot and is empty when they are equal.
type Buffer struct {
	Content string
	Dot     int
	Anchor  int
}

// Selection returns the selected range as start <= end.
func (b Buffer) Selection() (int, int) {
	if b.Anchor < b.Dot {
		return b.Anchor, b.Dot
	}
	return b.Dot, b.Anchor
}

// Editor drives one value from keystrokes. Rejected keystrokes leave both
// the value and the buffer untouched.
type Editor struct {
	value   value.Value
	dot     int
	anchor  int
	handle  int
	editing bool
}

// New binds an editor to v with the cursor at the end of the text.
func New(v value.Value) *Editor {
	e := &Editor{value: v}
	e.dot = e.length()
	e.anchor = e.dot
	e.handle = v.Subscribe(value.PropValue, e.external)
	return e
}

// Close detaches the editor from its value.
func (e *Editor) Close() {
	e.value.Unsubscribe(e.handle)
}

// Value returns the bound value.
func (e *Editor) Value() value.Value { return e.value }

// Buffer returns the current text, cursor and anchor.
func (e *Editor) Buffer() Buffer {
	return Buffer{Content: e.value.String(), Dot: e.dot, Anchor: e.anchor}
}

func (e *Editor) length() int {
	return utf8.RuneCountInString(e.value.String())
}

// external moves the cursor to the end when the text changes outside the
// editor, for example through SetValue.
func (e *Editor) external(notify.Change) {
	if e.editing {
		return
	}
	e.dot = e.length()
	e.anchor = e.dot
}

// Insert replaces the selection with s, or inserts s at the cursor. The
// whole edit is admitted or rejected as one step.
func (e *Editor) Insert(s string) bool {
	start, end := Buffer{Dot: e.dot, Anchor: e.anchor}.Selection()
	return e.splice(start, end-start, s)
}

// Paste inserts s as a single edit.
func (e *Editor) Paste(s string) bool {
	return e.Insert(s)
}

// Backspace deletes the selection or the rune before the cursor.
func (e *Editor) Backspace() bool {
	start, end := Buffer{Dot: e.dot, Anchor: e.anchor}.Selection()
	if start == end {
		if start == 0 {
			return false
		}
		start--
	}
	return e.splice(start, end-start, "")
}

// Delete deletes the selection or the rune after the cursor.
func (e *Editor) Delete() bool {
	start, end := Buffer{Dot: e.dot, Anchor: e.anchor}.Selection()
	if start == end {
		if end == e.length() {
			return false
		}
		end++
	}
	return e.splice(start, end-start, "")
}

// splice replaces length runes at offset with s.
func (e *Editor) splice(offset, length int, s string) bool {
	if length == 0 && s == "" {
		return false
	}

	// The cursor keeps its distance from the end of the text, which survives
	// reformatting such as regrouping digits.
	tail := e.length() - (offset + length)

	e.editing = true
	ok := e.value.TryReplace(offset, length, s)
	e.editing = false
	if !ok {
		return false
	}

	dot := e.length() - tail
	if dot < 0 {
		dot = 0
	}
	e.dot, e.anchor = dot, dot
	return true
}

// MoveTo places the cursor at dot and drops the selection.
func (e *Editor) MoveTo(dot int) {
	dot = e.clamp(dot)
	e.dot, e.anchor = dot, dot
}

// Select selects the runes between anchor and dot; the cursor ends at dot.
func (e *Editor) Select(anchor, dot int) {
	e.anchor, e.dot = e.clamp(anchor), e.clamp(dot)
}

// SelectAll selects the whole text.
func (e *Editor) SelectAll() {
	e.Select(0, e.length())
}

func (e *Editor) Left()  { e.MoveTo(e.dot - 1) }
func (e *Editor) Right() { e.MoveTo(e.dot + 1) }
func (e *Editor) Home()  { e.MoveTo(0) }
func (e *Editor) End()   { e.MoveTo(e.length()) }

func (e *Editor) clamp(dot int) int {
	if dot < 0 {
		return 0
	}
	if n := e.length(); dot > n {
		return n
	}
	return dot
}
