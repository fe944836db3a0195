package report

import (
	"bufio"
	"fmt"
	"io"

	"words/ledger"

	"github.com/pkg/errors"
)

const (
	totalFormat     = "The total number of words is: %d\n"
	frequencyHeader = "The frequencies of each word are:\n"
)

func WriteTotal(w io.Writer, n int) error {
	_, err := fmt.Fprintf(w, totalFormat, n)
	return errors.Wrap(err, "writing total")
}

// WriteFrequencies writes a header and one "count\tword" line per entry,
// least frequent first.
func WriteFrequencies(w io.Writer, l *ledger.Ledger) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(frequencyHeader); err != nil {
		return errors.Wrap(err, "writing frequencies")
	}
	for _, e := range l.Sorted() {
		if _, err := fmt.Fprintf(bw, "%d\t%s\n", e.Count, e.Word); err != nil {
			return errors.Wrap(err, "writing frequencies")
		}
	}
	return errors.Wrap(bw.Flush(), "writing frequencies")
}
