// Command turtle-regex searches a text for a pattern and prints the text with all matches highlighted.
//
// Usage:
//
//	turtle-regex [flags] PATTERN [TEXT]
//
// Without TEXT, the text is read from standard input until EOF.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/magnetde/starlark-turtle/logger"
	"github.com/magnetde/starlark-turtle/regex"
	"github.com/magnetde/starlark-turtle/util"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// options holds the command line configuration.
type options struct {
	debug     bool
	logFormat string
	logFile   string
	stopAtMax bool
	compare   bool
	color     string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the command and returns its exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet("turtle-regex", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.debug, "debug", false, "write debug records of the compiler and the engine")
	fs.StringVar(&opts.logFormat, "log-format", "text", "format of log records: text or json")
	fs.StringVar(&opts.logFile, "log-file", "", "append log records to this file instead of standard error")
	fs.BoolVar(&opts.stopAtMax, "stop-at-max", false, "end bounded repetitions successfully at their maximum")
	fs.BoolVar(&opts.compare, "compare", false, "compare the matches with the regexp2 reference engine")
	fs.StringVar(&opts.color, "color", "auto", "highlight matches with colors: auto, always or never")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: turtle-regex [flags] PATTERN [TEXT]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if err := opts.validate(fs.NArg()); err != nil {
		fmt.Fprintln(stderr, "turtle-regex:", err)
		fs.Usage()
		return exitUsage
	}

	if err := logger.Init(opts.loggerConfig(stderr)); err != nil {
		fmt.Fprintln(stderr, "turtle-regex:", err)
		return exitFailure
	}
	defer logger.Close()

	pattern := fs.Arg(0)
	logger.Info("looking for pattern", "pattern", util.Repr(pattern))

	var text string
	if fs.NArg() > 1 {
		text = fs.Arg(1)
	} else {
		logger.Info("enter multiple lines (Ctrl+D to finish)")

		b, err := io.ReadAll(stdin)
		if err != nil {
			logger.Error("failed to read standard input", "err", err)
			return exitFailure
		}
		text = string(b)
	}

	var flags regex.Flags
	if opts.stopAtMax {
		flags |= regex.FlagStopAtMax
	}

	re, err := regex.Compile(pattern, flags)
	if err != nil {
		logger.Error("failed to compile pattern", "err", err)
		return exitFailure
	}

	chars, offs := util.RuneOffsets(text)

	spans := re.Search(text)
	logger.Info("search done", "matches", len(spans), "spans", fmt.Sprint(spans))

	st := opts.style(stdout)

	heading := st.heading(len(spans) > 0)
	fmt.Fprintln(stdout, heading, highlight(text, byteSpans(spans, offs), st))

	if opts.compare {
		if err := compare(stdout, re, chars); err != nil {
			logger.Error("failed to compare with the reference engine", "err", err)
			return exitFailure
		}
	}

	return exitOK
}

func (o *options) validate(nargs int) error {
	if nargs < 1 {
		return errors.New("no pattern passed")
	}
	if nargs > 2 {
		return fmt.Errorf("got %d arguments, want at most 2", nargs)
	}

	switch o.logFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", o.logFormat)
	}

	switch o.color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid color mode %q", o.color)
	}

	return nil
}

func (o *options) loggerConfig(stderr io.Writer) logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Output = stderr
	cfg.Format = o.logFormat
	cfg.LogFile = o.logFile

	if o.debug {
		cfg.Level = logger.LevelDebug
	}

	return cfg
}

// style returns the highlighting style for the output.
func (o *options) style(w io.Writer) style {
	switch o.color {
	case "always":
		return colorStyle
	case "never":
		return plainStyle
	}

	if isTerminal(w) && os.Getenv("NO_COLOR") == "" {
		return colorStyle
	}

	return plainStyle
}

// byteSpans converts character spans into byte spans of the text.
func byteSpans(spans []regex.Span, offs util.Offsets) []regex.Span {
	res := make([]regex.Span, len(spans))
	for i, s := range spans {
		res[i] = regex.Span{Start: offs.Byte(s.Start), End: offs.Byte(s.End)}
	}
	return res
}

// compare runs the reference engine on the text and prints, where it disagrees with the turtle engine.
func compare(w io.Writer, re *regex.Regex, text []rune) error {
	ref, err := regex.NewReference(re.Tree(), re.Pattern())
	if err != nil {
		return err
	}

	logger.Debug("reference expression", "expr", ref.Expr())

	onlyTurtle, onlyRef, err := regex.Compare(re, ref, text)
	if err != nil {
		return err
	}

	if len(onlyTurtle) == 0 && len(onlyRef) == 0 {
		fmt.Fprintln(w, "Engines agree.")
		return nil
	}

	logger.Warn("engines disagree", "pattern", util.Repr(re.Pattern()), "expr", ref.Expr())

	fmt.Fprintln(w, "Only turtle:", formatSpans(onlyTurtle))
	fmt.Fprintln(w, "Only reference:", formatSpans(onlyRef))

	return nil
}
