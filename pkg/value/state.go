package value

import "github.com/goliatone/go-formvalue/pkg/notify"

// state holds what every typed value shares: the text, the derived validity,
// the flags and the subscriber list. Concrete types embed it and mutate it
// only through commit and the flag setters.
type state struct {
	kind     Kind
	text     string
	parsed   bool
	clear    bool
	valid    bool
	required bool
	key      bool
	readOnly bool
	events   notify.Publisher
}

func newState(kind Kind) state {
	return state{kind: kind, parsed: true, clear: true, valid: true}
}

func (s *state) Kind() Kind     { return s.kind }
func (s *state) String() string { return s.text }
func (s *state) Valid() bool    { return s.valid }
func (s *state) Required() bool { return s.required }
func (s *state) Key() bool      { return s.key }
func (s *state) ReadOnly() bool { return s.readOnly }

// SetRequired toggles the required flag and re-derives validity.
func (s *state) SetRequired(required bool) {
	if s.required == required {
		return
	}
	oldValid := s.valid
	s.required = required
	s.valid = s.derive()
	s.events.Publish(notify.Change{Property: PropRequired, Old: !required, New: required})
	s.events.PublishIfChanged(PropValid, oldValid, s.valid)
}

func (s *state) SetKey(key bool) {
	if s.key == key {
		return
	}
	s.key = key
	s.events.Publish(notify.Change{Property: PropKey, Old: !key, New: key})
}

// SetReadOnly blocks or unblocks interactive edits. SetValue is unaffected.
func (s *state) SetReadOnly(readOnly bool) {
	if s.readOnly == readOnly {
		return
	}
	s.readOnly = readOnly
	s.events.Publish(notify.Change{Property: PropReadOnly, Old: !readOnly, New: readOnly})
}

func (s *state) Subscribe(property string, handler notify.Handler) int {
	return s.events.Attach(property, handler)
}

func (s *state) Unsubscribe(handle int) {
	s.events.Detach(handle)
}

func (s *state) derive() bool {
	return s.parsed && !(s.required && s.clear)
}

// commit stores the outcome of an accepted edit and publishes value, the
// type-specific changes in extra, then valid. Callers pass only extras whose
// values actually changed.
func (s *state) commit(text string, parsed, clear bool, extra ...notify.Change) {
	oldText, oldValid := s.text, s.valid
	s.text, s.parsed, s.clear = text, parsed, clear
	s.valid = s.derive()

	s.events.PublishIfChanged(PropValue, oldText, text)
	for _, change := range extra {
		s.events.Publish(change)
	}
	s.events.PublishIfChanged(PropValid, oldValid, s.valid)
}

// revalidate re-derives validity after a configuration change that did not
// touch the text.
func (s *state) revalidate(parsed bool) {
	oldValid := s.valid
	s.parsed = parsed
	s.valid = s.derive()
	s.events.PublishIfChanged(PropValid, oldValid, s.valid)
}

// configChanged announces a configuration change; New carries the setting
// name.
func (s *state) configChanged(setting string) {
	s.events.Publish(notify.Change{Property: PropConfig, New: setting})
}

// clone copies flags and text without the subscribers.
func (s *state) clone() state {
	return state{
		kind:     s.kind,
		text:     s.text,
		parsed:   s.parsed,
		clear:    s.clear,
		valid:    s.valid,
		required: s.required,
		key:      s.key,
		readOnly: s.readOnly,
	}
}

// insertion returns the candidate text for an interactive insert, or false
// when the value is read-only or the offset is out of bounds.
func (s *state) insertion(offset int, inserted string) (string, bool) {
	return s.replacement(offset, 0, inserted)
}

// removal returns the candidate text for an interactive deletion.
func (s *state) removal(offset, length int) (string, bool) {
	return s.replacement(offset, length, "")
}

// replacement returns the text with length runes at offset replaced by
// inserted.
func (s *state) replacement(offset, length int, inserted string) (string, bool) {
	if s.readOnly {
		return "", false
	}
	runes := []rune(s.text)
	if offset < 0 || length < 0 || offset > len(runes) || length > len(runes)-offset {
		return "", false
	}
	add := []rune(inserted)
	out := make([]rune, 0, len(runes)-length+len(add))
	out = append(out, runes[:offset]...)
	out = append(out, add...)
	out = append(out, runes[offset+length:]...)
	return string(out), true
}

func changed(property string, old, new any) []notify.Change {
	if old == new {
		return nil
	}
	return []notify.Change{{Property: property, Old: old, New: new}}
}
