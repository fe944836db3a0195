package wire

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"hash"
	"io"

	"words/util"

	"github.com/pkg/errors"
)

// MaxFrame bounds the payload size accepted by Receive.
const MaxFrame = 16 << 20

var ErrTruncated = errors.New("truncated frame")

// WireHandler frames records with an 8-byte little-endian length prefix.
// The digest covers every entry frame sent or received, prefix included.
type WireHandler struct {
	r      io.Reader
	w      io.Writer
	digest hash.Hash
}

// NewWireHandler returns a handler reading from r and writing to w.
// Either may be nil when the handler is used in one direction only.
func NewWireHandler(r io.Reader, w io.Writer) *WireHandler {
	return &WireHandler{
		r:      r,
		w:      w,
		digest: md5.New(),
	}
}

func (wh *WireHandler) Digest() []byte {
	return wh.digest.Sum(nil)
}

func (wh *WireHandler) readN(buf []byte) (int, error) {
	bytesRead := 0
	for bytesRead < len(buf) {
		n, err := wh.r.Read(buf[bytesRead:])
		bytesRead += n
		if err != nil {
			if err == io.EOF && bytesRead == len(buf) {
				return bytesRead, nil
			}
			return bytesRead, err
		}
	}
	return bytesRead, nil
}

func (wh *WireHandler) Receive() (*Record, error) {
	prefix := make([]byte, 8)
	n, err := wh.readN(prefix)
	if err != nil {
		if err == io.EOF && n == 0 {
			return nil, io.EOF
		}
		if err == io.EOF {
			return nil, errors.Wrap(ErrTruncated, "frame prefix")
		}
		return nil, errors.Wrap(err, "reading frame prefix")
	}

	payloadSize := binary.LittleEndian.Uint64(prefix)
	if payloadSize > MaxFrame {
		return nil, errors.Wrapf(ErrMalformed, "frame of %d bytes", payloadSize)
	}
	payload := make([]byte, payloadSize)
	if _, err := wh.readN(payload); err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrTruncated, "frame payload")
		}
		return nil, errors.Wrap(err, "reading frame payload")
	}

	rec, err := Unmarshal(payload)
	if err != nil {
		return nil, err
	}
	if rec.Entry != nil {
		wh.digest.Write(prefix)
		wh.digest.Write(payload)
	}
	return rec, nil
}

func (wh *WireHandler) Send(rec *Record) error {
	serialized, err := Marshal(rec)
	if err != nil {
		return err
	}

	frame := make([]byte, 8, 8+len(serialized))
	binary.LittleEndian.PutUint64(frame, uint64(len(serialized)))
	frame = append(frame, serialized...)

	if rec.Entry != nil {
		err = util.WriteAndHash(bytes.NewReader(frame), int64(len(frame)), wh.digest, wh.w)
	} else {
		_, err = wh.w.Write(frame)
	}
	return errors.Wrap(err, "writing frame")
}
