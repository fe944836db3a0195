package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"words/ledger"
	"words/report"
	"words/source"
	"words/tokenizer"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// -h
func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintf(fs.Output(), `Usage: %s [-c | -f] [options] [FILES...]

  Count the words in FILES, or in standard input when no FILES are given.
  A word is a run of ASCII letters, folded to lower case.

`, fs.Name())
		fs.PrintDefaults()
	}
}

type options struct {
	count     bool
	frequency bool
	help      bool
	format    string
	plot      string
	top       int
	progress  bool
	verbose   bool
}

func parse(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	fs.BoolVar(&o.count, "c", false, "print the total number of words")
	fs.BoolVar(&o.count, "count", false, "same as -c")
	fs.BoolVar(&o.frequency, "f", false, "print each word with its frequency, least frequent first")
	fs.BoolVar(&o.frequency, "frequency", false, "same as -f")
	fs.BoolVar(&o.help, "h", false, "print this help")
	fs.BoolVar(&o.help, "help", false, "same as -h")
	fs.StringVar(&o.format, "format", "text", "frequency report format: text or wire")
	fs.StringVar(&o.plot, "plot", "", "also save a bar chart of the frequencies to `file`")
	fs.IntVar(&o.top, "top", 0, "plot only the `n` most frequent words (0 plots all)")
	fs.BoolVar(&o.progress, "progress", false, "show a progress bar while reading files")
	fs.BoolVar(&o.verbose, "v", false, "log each source as it is read")
	fs.Usage = usage(fs)

	return o, fs.Parse(args)
}

func validate(o *options) string {
	switch {
	case !o.count && !o.frequency:
		return "Please specify -c (count) or -f (frequency)"
	case o.count && o.frequency:
		return "-c (count) and -f (frequency) are mutually exclusive"
	case o.format != "text" && o.format != "wire":
		return fmt.Sprintf("unknown format %q, want text or wire", o.format)
	case o.count && (o.format != "text" || o.plot != ""):
		return "-format and -plot only apply to -f (frequency)"
	}
	return ""
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.Out = w
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	if verbose {
		log.Level = logrus.DebugLevel
	}
	return log
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("words", flag.ContinueOnError)
	fs.SetOutput(stderr)

	o, err := parse(fs, args)
	if err != nil {
		return exitUsage
	}

	if o.help {
		fs.SetOutput(stdout)
		fs.Usage()
		return exitOK
	}

	if msg := validate(o); msg != "" {
		fmt.Fprintln(stderr, msg)
		fs.Usage()
		return exitFail
	}

	log := newLogger(stderr, o.verbose)

	s_opts := []source.Option{source.WithStdin(stdin), source.WithLogger(log)}
	if o.progress {
		s_opts = append(s_opts, source.WithProgress(stderr))
	}
	srcs := source.New(fs.Args(), s_opts...)

	if o.count {
		total := 0
		srcs.Each(func(name string, r io.Reader) error {
			n, err := tokenizer.CountWords(r)
			total += n
			log.WithField("source", name).WithField("words", n).Debug("counted")
			return err
		})
		err = report.WriteTotal(stdout, total)
	} else {
		l := ledger.New()
		srcs.Each(func(name string, r io.Reader) error {
			per_source := ledger.New()
			err := tokenizer.CountInto(per_source, r)
			log.WithField("source", name).WithField("words", per_source.Total()).Debug("counted")
			l.Merge(per_source)
			return err
		})
		err = frequencyReport(stdout, l, o)
		if errors.Is(err, report.ErrNothingToPlot) {
			log.WithField("plot", o.plot).Warn("no words to plot")
			err = nil
		}
	}

	if skipped := srcs.Skipped(); len(skipped) > 0 {
		n_sources := len(fs.Args())
		if n_sources == 0 {
			n_sources = 1
		}
		log.WithField("skipped", skipped).Warnf("%d of %d sources skipped", len(skipped), n_sources)
	}

	if err != nil {
		log.WithError(err).Error("words failed")
		return exitFail
	}
	return exitOK
}

func frequencyReport(w io.Writer, l *ledger.Ledger, o *options) error {
	var err error
	if o.format == "wire" {
		err = report.WriteWire(w, l)
	} else {
		err = report.WriteFrequencies(w, l)
	}
	if err != nil || o.plot == "" {
		return err
	}
	return report.PlotFrequencies(o.plot, l, o.top)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
