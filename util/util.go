package util

import (
	"bytes"
	"hash"
	"io"

	"github.com/pkg/errors"
)

var ErrChecksum = errors.New("checksum mismatch")

// WriteAndHash copies n bytes of src into every dst and into h.
func WriteAndHash(src io.Reader, n int64, h hash.Hash, dsts ...io.Writer) error {
	dsts = append(dsts, h)
	writer := io.MultiWriter(dsts...)

	_, err := io.CopyN(writer, src, n)
	return err
}

func VerifyChecksum(sentCheck []byte, calcdCheck []byte) error {
	if bytes.Equal(calcdCheck, sentCheck) {
		return nil
	}
	return errors.Wrapf(ErrChecksum, "sent %x, calculated %x", sentCheck, calcdCheck)
}
