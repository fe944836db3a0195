package report

import (
	"bufio"
	"io"

	"words/ledger"
	"words/tokenizer"
	"words/util"
	"words/wire"

	"github.com/pkg/errors"
)

// WriteWire streams the sorted ledger as framed records followed by a
// summary carrying the totals and the md5 of the entry frames.
func WriteWire(w io.Writer, l *ledger.Ledger) error {
	bw := bufio.NewWriter(w)
	wh := wire.NewWireHandler(nil, bw)

	for _, e := range l.Sorted() {
		e := e
		if err := wh.Send(&wire.Record{Entry: &e}); err != nil {
			return err
		}
	}

	err := wh.Send(&wire.Record{Summary: &wire.Summary{
		Total:    uint64(l.Total()),
		Distinct: uint64(l.Size()),
		Checksum: wh.Digest(),
	}})
	if err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "flushing wire report")
}

// ReadWire decodes a stream written by WriteWire into a fresh ledger.
func ReadWire(r io.Reader) (*ledger.Ledger, error) {
	wh := wire.NewWireHandler(bufio.NewReader(r), nil)
	l := ledger.New()

	for {
		rec, err := wh.Receive()
		if err == io.EOF {
			return nil, errors.Wrap(wire.ErrTruncated, "stream ended before summary")
		}
		if err != nil {
			return nil, err
		}

		if rec.Entry != nil {
			if !tokenizer.IsToken(rec.Entry.Word) {
				return nil, errors.Wrapf(wire.ErrMalformed, "entry word %q", rec.Entry.Word)
			}
			if rec.Entry.Count <= 0 {
				return nil, errors.Wrapf(wire.ErrMalformed, "count %d for %q", rec.Entry.Count, rec.Entry.Word)
			}
			if _, ok := l.Lookup(rec.Entry.Word); ok {
				return nil, errors.Wrapf(wire.ErrMalformed, "duplicate entry %q", rec.Entry.Word)
			}
			l.Add(rec.Entry.Word, rec.Entry.Count)
			continue
		}

		s := rec.Summary
		if err := util.VerifyChecksum(s.Checksum, wh.Digest()); err != nil {
			return nil, err
		}
		if s.Total != uint64(l.Total()) || s.Distinct != uint64(l.Size()) {
			return nil, errors.Wrapf(wire.ErrMalformed, "summary %d/%d does not match entries %d/%d",
				s.Total, s.Distinct, l.Total(), l.Size())
		}
		return l, nil
	}
}
