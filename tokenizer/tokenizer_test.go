package tokenizer

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
	"testing/quick"

	"words/ledger"
)

func tokens(t *testing.T, input string, opts ...Option) []string {
	t.Helper()
	tk := New(strings.NewReader(input), opts...)
	var out []string
	for tk.Scan() {
		out = append(out, tk.Token())
	}
	if err := tk.Err(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return out
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{"empty", "", nil},
		{"separators only", "  123 ,.!\n\t", nil},
		{"simple", "The cat sat.", []string{"the", "cat", "sat"}},
		{"digits split", "abc1def", []string{"abc", "def"}},
		{"apostrophe split", "can't", []string{"can", "t"}},
		{"flush at eof", "hello world", []string{"hello", "world"}},
		{"mixed case", "CaT cAt", []string{"cat", "cat"}},
		{"non ascii is a separator", "naïve", []string{"na", "ve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokens(t, tt.input)
			if !reflect.DeepEqual(tt.expect, got) {
				t.Fatalf("expect=%q actual=%q", tt.expect, got)
			}
		})
	}
}

func TestTruncation(t *testing.T) {
	long := strings.Repeat("a", MaxWordLen) + "bcd"
	other := strings.Repeat("a", MaxWordLen) + "xyz"

	got := tokens(t, long+" "+other)
	if len(got) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(got))
	}
	for _, tok := range got {
		if tok != strings.Repeat("a", MaxWordLen) {
			t.Fatalf("token not truncated: %q", tok)
		}
	}

	l := ledger.New()
	if err := CountInto(l, strings.NewReader(long+" "+other)); err != nil {
		t.Fatal(err)
	}
	if l.Size() != 1 {
		t.Fatalf("expected truncated words to share one entry, got %d", l.Size())
	}
}

func TestWithMaxWordLen(t *testing.T) {
	got := tokens(t, "abcdef ab", WithMaxWordLen(3))
	expect := []string{"abc", "ab"}
	if !reflect.DeepEqual(expect, got) {
		t.Fatalf("expect=%q actual=%q", expect, got)
	}

	got = tokens(t, strings.Repeat("z", 100), WithMaxWordLen(0))
	if len(got) != 1 || len(got[0]) != MaxWordLen {
		t.Fatalf("non-positive bound should keep the default, got %q", got)
	}
}

func TestScanAfterExhaustion(t *testing.T) {
	tk := New(strings.NewReader("one"))
	if !tk.Scan() || tk.Token() != "one" {
		t.Fatalf("expected token one")
	}
	for i := 0; i < 3; i++ {
		if tk.Scan() {
			t.Fatalf("scan succeeded after exhaustion with %q", tk.Token())
		}
	}
}

func TestReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("hello wor"), iotest.ErrReader(boom))

	l := ledger.New()
	err := CountInto(l, r)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if _, ok := l.Lookup("wor"); !ok {
		t.Fatalf("partial token before the error should be recorded")
	}
	if l.Total() != 2 {
		t.Fatalf("expected 2 tokens before the error, got %d", l.Total())
	}
}

func TestCaseInsensitive(t *testing.T) {
	l := ledger.New()
	if err := CountInto(l, strings.NewReader("Cat cat CAT")); err != nil {
		t.Fatal(err)
	}
	e, ok := l.Lookup("cat")
	if !ok || e.Count != 3 || l.Size() != 1 {
		t.Fatalf("expected cat:3 only, got %v", l.Entries())
	}
}

func TestScenario(t *testing.T) {
	l := ledger.New()
	if err := CountInto(l, strings.NewReader("The cat sat. The CAT sat!")); err != nil {
		t.Fatal(err)
	}
	expect := []ledger.Entry{{Word: "cat", Count: 2}, {Word: "sat", Count: 2}, {Word: "the", Count: 2}}
	if got := l.Sorted(); !reflect.DeepEqual(expect, got) {
		t.Fatalf("expect=%v actual=%v", expect, got)
	}
}

const alphabet = "aZq9 .,\n!-'"

func mix(b []byte) string {
	s := make([]byte, len(b))
	for i, c := range b {
		s[i] = alphabet[int(c)%len(alphabet)]
	}
	return string(s)
}

func countRuns(s string) int {
	n := 0
	in_word := false
	for i := 0; i < len(s); i++ {
		if isAlpha(s[i]) {
			if !in_word {
				n++
			}
			in_word = true
		} else {
			in_word = false
		}
	}
	return n
}

func TestCountMatchesRuns(t *testing.T) {
	f := func(b []byte) bool {
		s := mix(b)
		n, err := CountWords(strings.NewReader(s))
		return err == nil && n == countRuns(s)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestCountMatchesLedgerTotal(t *testing.T) {
	f := func(b []byte) bool {
		s := mix(b)
		n, err := CountWords(strings.NewReader(s))
		if err != nil {
			return false
		}
		l := ledger.New()
		if err := CountInto(l, strings.NewReader(s)); err != nil {
			return false
		}
		return l.Total() == n
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestRetokenizeIsIdempotent(t *testing.T) {
	f := func(b []byte) bool {
		s := mix(b)
		l1, l2 := ledger.New(), ledger.New()
		if CountInto(l1, strings.NewReader(s)) != nil || CountInto(l2, strings.NewReader(s)) != nil {
			return false
		}
		return reflect.DeepEqual(l1.Entries(), l2.Entries())
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}

func TestIsToken(t *testing.T) {
	good := []string{"a", "cat", strings.Repeat("z", MaxWordLen)}
	bad := []string{"", "Cat", "can't", "naïve", "a1", strings.Repeat("z", MaxWordLen+1)}
	for _, w := range good {
		if !IsToken(w) {
			t.Fatalf("%q should be a token", w)
		}
	}
	for _, w := range bad {
		if IsToken(w) {
			t.Fatalf("%q should not be a token", w)
		}
	}
}

func TestScannedTokensAreTokens(t *testing.T) {
	f := func(b []byte) bool {
		tk := New(strings.NewReader(mix(b) + string(b)))
		for tk.Scan() {
			if !IsToken(tk.Token()) {
				return false
			}
		}
		return tk.Err() == nil
	}
	if err := quick.Check(f, nil); err != nil {
		t.Fatal(err)
	}
}
