package testsupport

import (
	"testing"
	"unicode/utf8"

	"github.com/goliatone/go-formvalue/pkg/notify"
	"github.com/goliatone/go-formvalue/pkg/value"
)

// Type feeds s to v one rune at a time at the end of the current text, the
// way a bound widget forwards keystrokes. It returns the runes that were
// rejected, in order.
func Type(v value.Value, s string) string {
	var rejected []rune
	for _, r := range s {
		end := utf8.RuneCountInString(v.String())
		if !v.TryInsert(end, string(r)) {
			rejected = append(rejected, r)
		}
	}
	return string(rejected)
}

// MustType types s into v and fails the test when any keystroke is rejected.
func MustType(t *testing.T, v value.Value, s string) {
	t.Helper()
	if rejected := Type(v, s); rejected != "" {
		t.Fatalf("type %q into %s: rejected %q, text now %q", s, v.Kind(), rejected, v.String())
	}
}

// Backspace removes up to n runes from the end of v's text and returns how
// many removals were admitted. It stops at the first rejection.
func Backspace(v value.Value, n int) int {
	done := 0
	for ; done < n; done++ {
		end := utf8.RuneCountInString(v.String())
		if end == 0 || !v.TryRemove(end-1, 1) {
			break
		}
	}
	return done
}

// Subscriber is anything that publishes notify changes: values and records.
type Subscriber interface {
	Subscribe(property string, handler notify.Handler) int
	Unsubscribe(handle int)
}

// ChangeLog collects the changes a Subscriber publishes.
type ChangeLog struct {
	Changes []notify.Change

	src    Subscriber
	handle int
}

// Watch subscribes to property ("" for every property) and records each
// change until Stop is called.
func Watch(src Subscriber, property string) *ChangeLog {
	log := &ChangeLog{src: src}
	log.handle = src.Subscribe(property, func(change notify.Change) {
		log.Changes = append(log.Changes, change)
	})
	return log
}

// Properties lists the recorded property names in publication order.
func (l *ChangeLog) Properties() []string {
	out := make([]string, 0, len(l.Changes))
	for _, change := range l.Changes {
		out = append(out, change.Property)
	}
	return out
}

// Reset forgets the recorded changes.
func (l *ChangeLog) Reset() {
	l.Changes = nil
}

// Stop detaches the log from its source.
func (l *ChangeLog) Stop() {
	l.src.Unsubscribe(l.handle)
}
