package storage

import (
	"slices"
	"sync"
)

// Draft is an answer being composed over several button presses.
// It belongs to one question position; a draft for another position is stale.
type Draft struct {
	Position int
	Sequence []string          // order: items picked so far
	Left     string            // match: left item waiting for its pair
	Pairs    map[string]string // match: chosen left -> right pairs
}

// AddItem appends item to the sequence unless it was already picked.
func (d *Draft) AddItem(item string) bool {
	if slices.Contains(d.Sequence, item) {
		return false
	}
	d.Sequence = append(d.Sequence, item)
	return true
}

// SelectLeft marks left as the item the next right-hand choice is paired with.
func (d *Draft) SelectLeft(left string) {
	d.Left = left
}

// PairWith pairs the selected left item with right. Any previous pair using either side is dropped.
func (d *Draft) PairWith(right string) bool {
	if d.Left == "" {
		return false
	}
	if d.Pairs == nil {
		d.Pairs = make(map[string]string)
	}
	for l, r := range d.Pairs {
		if r == right {
			delete(d.Pairs, l)
		}
	}
	d.Pairs[d.Left] = right
	d.Left = ""
	return true
}

func (d Draft) clone() Draft {
	out := d
	out.Sequence = slices.Clone(d.Sequence)
	if d.Pairs != nil {
		out.Pairs = make(map[string]string, len(d.Pairs))
		for k, v := range d.Pairs {
			out.Pairs[k] = v
		}
	}
	return out
}

// DraftStorage provides in-memory storage for answer drafts by chat ID.
type DraftStorage struct {
	mu     sync.RWMutex
	drafts map[int64]Draft
}

// NewDraftStorage creates a new DraftStorage.
func NewDraftStorage() *DraftStorage {
	return &DraftStorage{
		drafts: make(map[int64]Draft),
	}
}

// Get returns the draft of a chat for the given position. A missing or stale draft yields an empty one.
func (s *DraftStorage) Get(chatID int64, position int) Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[chatID]
	if !ok || d.Position != position {
		return Draft{Position: position}
	}
	return d.clone()
}

// Update applies fn to the chat's draft for position and stores the result.
func (s *DraftStorage) Update(chatID int64, position int, fn func(d *Draft)) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[chatID]
	if !ok || d.Position != position {
		d = Draft{Position: position}
	}
	fn(&d)
	s.drafts[chatID] = d

	return d.clone()
}

// Delete removes the draft of a chat.
func (s *DraftStorage) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, chatID)
}
