package source

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// StdinName is the name passed to Each callbacks for standard input.
const StdinName = "<stdin>"

var ErrDirectory = errors.New("is a directory")

type Option func(*Sources)

func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Sources) {
		s.log = log
	}
}

// WithStdin replaces os.Stdin as the fallback source.
func WithStdin(r io.Reader) Option {
	return func(s *Sources) {
		s.stdin = r
	}
}

// WithProgress draws a progress bar over the combined size of the files to w.
func WithProgress(w io.Writer) Option {
	return func(s *Sources) {
		s.progress = w
	}
}

// Sources walks input files in order, one open file at a time. With no paths
// it reads stdin once.
type Sources struct {
	paths    []string
	stdin    io.Reader
	log      logrus.FieldLogger
	progress io.Writer
	skipped  []string
}

func New(paths []string, opts ...Option) *Sources {
	s := &Sources{
		paths: paths,
		stdin: os.Stdin,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Skipped lists the paths that could not be opened or read during Each.
func (s *Sources) Skipped() []string {
	return s.skipped
}

// Each calls fn with every source in order. A source that fails to open, or
// whose fn returns an error, is logged and skipped. Counts fn gathered before
// a read error are kept by the caller.
func (s *Sources) Each(fn func(name string, r io.Reader) error) {
	if len(s.paths) == 0 {
		s.log.WithField("source", StdinName).Debug("reading")
		if err := fn(StdinName, s.stdin); err != nil {
			s.skip(StdinName, err)
		}
		return
	}

	bar := s.startBar()
	if bar != nil {
		defer bar.Finish()
	}

	for _, p := range s.paths {
		s.consume(p, bar, fn)
	}
}

func (s *Sources) skip(name string, err error) {
	s.log.WithField("source", name).WithError(err).Warn("skipping source")
	s.skipped = append(s.skipped, name)
}

func (s *Sources) consume(p string, bar *pb.ProgressBar, fn func(name string, r io.Reader) error) {
	f, err := os.Open(p)
	if err != nil {
		s.skip(p, err)
		return
	}
	defer f.Close()

	if err := prepare(f); err != nil {
		s.skip(p, err)
		return
	}

	s.log.WithField("source", p).Debug("reading")

	var r io.Reader = f
	if bar != nil {
		r = bar.NewProxyReader(f)
	}
	if err := fn(p, r); err != nil {
		s.skip(p, err)
	}
}

// startBar returns nil when no progress writer is set or nothing has a size.
func (s *Sources) startBar() *pb.ProgressBar {
	if s.progress == nil {
		return nil
	}

	total := int64(0)
	for _, p := range s.paths {
		f_info, err := os.Stat(p)
		if err != nil || !f_info.Mode().IsRegular() {
			continue
		}
		total += f_info.Size()
	}
	if total == 0 {
		return nil
	}

	bar := pb.New64(total)
	bar.SetWriter(s.progress)
	bar.Set(pb.Bytes, true)
	return bar.Start()
}
