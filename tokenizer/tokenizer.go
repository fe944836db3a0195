package tokenizer

import (
	"bufio"
	"io"

	"words/ledger"

	"github.com/pkg/errors"
)

// MaxWordLen bounds the bytes kept per token. Letters past the bound are read
// and dropped, so over-long words sharing a prefix land on the same key.
const MaxWordLen = 64

type Option func(*Tokenizer)

func WithMaxWordLen(n int) Option {
	return func(t *Tokenizer) {
		if n > 0 {
			t.maxLen = n
		}
	}
}

// Tokenizer splits a byte stream into lowercase runs of ASCII letters.
// It is single pass: once Scan returns false it stays false.
type Tokenizer struct {
	r      *bufio.Reader
	maxLen int
	buf    []byte
	token  string
	err    error
	done   bool
}

func New(r io.Reader, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		r:      bufio.NewReader(r),
		maxLen: MaxWordLen,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.buf = make([]byte, 0, t.maxLen)
	return t
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func toLower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// IsToken reports whether word is something a Tokenizer with the default
// bound can produce: 1 to MaxWordLen lowercase ASCII letters.
func IsToken(word string) bool {
	if len(word) == 0 || len(word) > MaxWordLen {
		return false
	}
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return false
		}
	}
	return true
}

// Scan advances to the next token. It returns false at end of stream or on a
// read error, which Err then reports.
func (t *Tokenizer) Scan() bool {
	if t.done {
		return false
	}

	t.buf = t.buf[:0]
	in_word := false
	for {
		c, err := t.r.ReadByte()
		if err != nil {
			t.done = true
			if err != io.EOF {
				t.err = errors.Wrap(err, "reading input")
			}
			if in_word {
				t.token = string(t.buf)
				return true
			}
			t.token = ""
			return false
		}

		if isAlpha(c) {
			in_word = true
			if len(t.buf) < t.maxLen {
				t.buf = append(t.buf, toLower(c))
			}
		} else if in_word {
			t.token = string(t.buf)
			return true
		}
	}
}

func (t *Tokenizer) Token() string {
	return t.token
}

func (t *Tokenizer) Err() error {
	return t.err
}

// CountWords returns how many tokens r holds.
func CountWords(r io.Reader, opts ...Option) (int, error) {
	t := New(r, opts...)
	n := 0
	for t.Scan() {
		n++
	}
	return n, t.Err()
}

// CountInto records every token of r in l.
func CountInto(l *ledger.Ledger, r io.Reader, opts ...Option) error {
	t := New(r, opts...)
	for t.Scan() {
		l.InsertOrIncrement(t.Token())
	}
	return t.Err()
}
