package chat

import (
	"slices"
	"sync"
)

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Entry is one message of the transcript. Typing marks the placeholder shown
// while a request is in flight.
type Entry struct {
	ID     int
	Sender Sender
	Text   string
	Typing bool
}

// View displays the transcript and owns the input field.
type View interface {
	Append(e Entry)
	Remove(id int)
	ClearInput()
}

// Transcript is the ordered list of chat entries for one session.
type Transcript struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int
	view    View
}

func NewTranscript(view View) *Transcript {
	return &Transcript{view: view, nextID: 1}
}

func (t *Transcript) append(sender Sender, text string, typing bool) Entry {
	t.mu.Lock()
	e := Entry{ID: t.nextID, Sender: sender, Text: text, Typing: typing}
	t.nextID++
	t.entries = append(t.entries, e)
	t.mu.Unlock()

	if t.view != nil {
		t.view.Append(e)
	}
	return e
}

func (t *Transcript) remove(id int) {
	t.mu.Lock()
	i := slices.IndexFunc(t.entries, func(e Entry) bool { return e.ID == id && e.Typing })
	if i < 0 {
		t.mu.Unlock()
		return
	}
	t.entries = slices.Delete(t.entries, i, i+1)
	t.mu.Unlock()

	if t.view != nil {
		t.view.Remove(id)
	}
}

// Entries returns a copy of the transcript in order.
func (t *Transcript) Entries() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.entries)
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
