package ledger

import (
	"sort"
)

type Entry struct {
	Word  string
	Count int
}

// Ledger maps distinct words to occurrence counts. Entries live in an arena
// slice and index holds each word's slot in it.
type Ledger struct {
	entries []Entry
	index   map[string]int
}

func New() *Ledger {
	return &Ledger{
		entries: make([]Entry, 0, 64),
		index:   make(map[string]int),
	}
}

func (l *Ledger) InsertOrIncrement(word string) {
	l.Add(word, 1)
}

// Add increments word by n, creating the entry if needed.
func (l *Ledger) Add(word string, n int) {
	if i, ok := l.index[word]; ok {
		l.entries[i].Count += n
		return
	}
	l.index[word] = len(l.entries)
	l.entries = append(l.entries, Entry{Word: word, Count: n})
}

func (l *Ledger) Lookup(word string) (Entry, bool) {
	i, ok := l.index[word]
	if !ok {
		return Entry{}, false
	}
	return l.entries[i], true
}

func (l *Ledger) Size() int {
	return len(l.entries)
}

// Total is the number of tokens recorded, summed over every entry.
func (l *Ledger) Total() int {
	total := 0
	for _, e := range l.entries {
		total += e.Count
	}
	return total
}

// Entries returns a copy of the entries in insertion order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Merge folds every entry of other into l. other is left untouched.
func (l *Ledger) Merge(other *Ledger) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		l.Add(e.Word, e.Count)
	}
}

// Less orders entries by count, then by word.
func Less(a, b Entry) bool {
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	return a.Word < b.Word
}

func (l *Ledger) Sorted() []Entry {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}
