package wire

import (
	"words/ledger"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Record is one frame of a report stream. Exactly one of Entry and Summary
// is set.
//
//	message Record {
//	  oneof msg {
//	    Entry   entry   = 1;
//	    Summary summary = 2;
//	  }
//	}
//	message Entry   { bytes word = 1; uint64 count = 2; }
//	message Summary { uint64 total = 1; uint64 distinct = 2; bytes checksum = 3; }
type Record struct {
	Entry   *ledger.Entry
	Summary *Summary
}

type Summary struct {
	Total    uint64
	Distinct uint64
	Checksum []byte
}

const (
	recordEntry   protowire.Number = 1
	recordSummary protowire.Number = 2

	entryWord  protowire.Number = 1
	entryCount protowire.Number = 2

	summaryTotal    protowire.Number = 1
	summaryDistinct protowire.Number = 2
	summaryChecksum protowire.Number = 3
)

var ErrMalformed = errors.New("malformed record")

func Marshal(rec *Record) ([]byte, error) {
	var b []byte
	switch {
	case rec == nil:
		return nil, errors.Wrap(ErrMalformed, "nil record")
	case rec.Entry != nil && rec.Summary != nil:
		return nil, errors.Wrap(ErrMalformed, "record has both entry and summary")
	case rec.Entry != nil:
		if rec.Entry.Count < 0 {
			return nil, errors.Wrapf(ErrMalformed, "negative count for %q", rec.Entry.Word)
		}
		var msg []byte
		msg = protowire.AppendTag(msg, entryWord, protowire.BytesType)
		msg = protowire.AppendString(msg, rec.Entry.Word)
		msg = protowire.AppendTag(msg, entryCount, protowire.VarintType)
		msg = protowire.AppendVarint(msg, uint64(rec.Entry.Count))

		b = protowire.AppendTag(b, recordEntry, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	case rec.Summary != nil:
		var msg []byte
		msg = protowire.AppendTag(msg, summaryTotal, protowire.VarintType)
		msg = protowire.AppendVarint(msg, rec.Summary.Total)
		msg = protowire.AppendTag(msg, summaryDistinct, protowire.VarintType)
		msg = protowire.AppendVarint(msg, rec.Summary.Distinct)
		msg = protowire.AppendTag(msg, summaryChecksum, protowire.BytesType)
		msg = protowire.AppendBytes(msg, rec.Summary.Checksum)

		b = protowire.AppendTag(b, recordSummary, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	default:
		return nil, errors.Wrap(ErrMalformed, "empty record")
	}
	return b, nil
}

func Unmarshal(b []byte) (*Record, error) {
	rec := &Record{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "record tag")
		}
		b = b[n:]

		switch {
		case num == recordEntry && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "entry")
			}
			e, err := unmarshalEntry(msg)
			if err != nil {
				return nil, err
			}
			rec.Entry, rec.Summary = e, nil
			b = b[n:]
		case num == recordSummary && typ == protowire.BytesType:
			msg, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "summary")
			}
			s, err := unmarshalSummary(msg)
			if err != nil {
				return nil, err
			}
			rec.Entry, rec.Summary = nil, s
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "field %d", num)
			}
			b = b[n:]
		}
	}

	if rec.Entry == nil && rec.Summary == nil {
		return nil, errors.Wrap(ErrMalformed, "empty record")
	}
	return rec, nil
}

func unmarshalEntry(b []byte) (*ledger.Entry, error) {
	e := &ledger.Entry{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "entry tag")
		}
		b = b[n:]

		switch {
		case num == entryWord && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "entry word")
			}
			e.Word = string(v)
			b = b[n:]
		case num == entryCount && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "entry count")
			}
			e.Count = int(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "entry field %d", num)
			}
			b = b[n:]
		}
	}
	return e, nil
}

func unmarshalSummary(b []byte) (*Summary, error) {
	s := &Summary{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, errors.Wrap(protowire.ParseError(n), "summary tag")
		}
		b = b[n:]

		switch {
		case (num == summaryTotal || num == summaryDistinct) && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "summary field %d", num)
			}
			if num == summaryTotal {
				s.Total = v
			} else {
				s.Distinct = v
			}
			b = b[n:]
		case num == summaryChecksum && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, errors.Wrap(protowire.ParseError(n), "summary checksum")
			}
			s.Checksum = append([]byte(nil), v...)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, errors.Wrapf(protowire.ParseError(n), "summary field %d", num)
			}
			b = b[n:]
		}
	}
	return s, nil
}
