package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/ansigen/internal/app"
	"github.com/kk-code-lab/ansigen/internal/config"
	"github.com/kk-code-lab/ansigen/internal/styling"
	"github.com/kk-code-lab/ansigen/internal/textutil"
	"golang.org/x/term"
)

const usageText = `ansigen - Discord ANSI text generator

USAGE:
    ansigen [OPTIONS]
    echo "text" | ansigen --range 0:4:fg=#dc322f,bold

OPTIONS:
    -h, --help              Show this help message and exit
    --config PATH           Read configuration from PATH
    --debug                 Write a debug log to the user cache directory
    --text TEXT             Initial text (batch mode: the text to style)
    --print                 Print the ANSI block to stdout instead of starting the UI
    --range SPEC            start:end[:fg=#hex,bg=#hex,bold,underline]; repeatable
    --fg HEX, --bg HEX      Default foreground / background colors

Without --print, ansigen starts the interactive editor when stdin is a
terminal and reads the text from stdin otherwise.
`

const logFileName = "ansigen.log"

var logDir = defaultLogDir()

// launchTUI runs the interactive application until the user quits.
var launchTUI = func(opts apppkg.Options) error {
	app, err := apppkg.NewApplication(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = app.Close()
	}()
	app.Run()
	return nil
}

type rangeFlags []apppkg.RangeSpec

func (r *rangeFlags) String() string {
	parts := make([]string, 0, len(*r))
	for _, spec := range *r {
		parts = append(parts, fmt.Sprintf("%d:%d", spec.Start, spec.End))
	}
	return strings.Join(parts, " ")
}

func (r *rangeFlags) Set(value string) error {
	spec, err := apppkg.ParseRangeSpec(value)
	if err != nil {
		return err
	}
	*r = append(*r, spec)
	return nil
}

type options struct {
	configPath string
	debug      bool
	text       string
	textSet    bool
	print      bool
	fg, bg     string
	ranges     rangeFlags
}

func main() {
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, interactive))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer, interactive bool) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usageText)
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "ansigen: %v\n", err)
		return 2
	}

	loader := config.NewLoader()
	cfg, err := loader.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "ansigen: %v\n", err)
		return 1
	}
	if opts.fg != "" {
		cfg.Default.Foreground = opts.fg
	}
	if opts.bg != "" {
		cfg.Default.Background = opts.bg
	}
	if opts.textSet {
		cfg.SeedText = opts.text
	}

	logFile := setupLogging(opts.debug || cfg.Debug)
	if logFile != nil {
		defer logFile.Close()
	}
	if cfg.Source != "" {
		log.Printf("config loaded from %s", cfg.Source)
	}

	if opts.print || len(opts.ranges) > 0 || !interactive {
		text := opts.text
		if !opts.textSet {
			data, err := io.ReadAll(stdin)
			if err != nil {
				fmt.Fprintf(stderr, "ansigen: reading stdin: %v\n", err)
				return 1
			}
			decoded, err := textutil.DecodeText(data)
			if err != nil {
				fmt.Fprintf(stderr, "ansigen: reading stdin: %v\n", err)
				return 1
			}
			text = trimFinalNewline(decoded)
		}
		if err := apppkg.RunBatch(stdout, cfg, text, opts.ranges); err != nil {
			fmt.Fprintf(stderr, "ansigen: %v\n", err)
			return 1
		}
		return 0
	}

	appOpts := apppkg.Options{Config: cfg, Logger: log.Default()}
	if cfg.Source != "" {
		watcher, err := config.NewWatcher(loader, cfg.Source)
		if err != nil {
			log.Printf("config reload disabled: %v", err)
		} else {
			defer watcher.Close()
			appOpts.ConfigUpdates = watcher.Updates()
			appOpts.ConfigErrors = watcher.Errors()
		}
	}

	if err := launchTUI(appOpts); err != nil {
		fmt.Fprintf(stderr, "Error initializing application: %v\n", err)
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("ansigen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	var help bool
	fs.BoolVar(&help, "h", false, "show help")
	fs.BoolVar(&help, "help", false, "show help")
	fs.StringVar(&opts.configPath, "config", "", "configuration file")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug log")
	fs.StringVar(&opts.text, "text", "", "text to style")
	fs.BoolVar(&opts.print, "print", false, "print the ANSI block and exit")
	fs.StringVar(&opts.fg, "fg", "", "default foreground color")
	fs.StringVar(&opts.bg, "bg", "", "default background color")
	fs.Var(&opts.ranges, "range", "styled range start:end[:options]")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if help {
		return opts, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "text" {
			opts.textSet = true
		}
	})
	for _, c := range []struct{ name, value string }{{"fg", opts.fg}, {"bg", opts.bg}} {
		if c.value != "" && !styling.ParseColor(c.value).Valid {
			return opts, fmt.Errorf("invalid --%s color %q", c.name, c.value)
		}
	}
	return opts, nil
}

// setupLogging routes the standard logger to the debug log file, or
// discards output when debug is off.
func setupLogging(debug bool) *os.File {
	if !debug || logDir == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Println("=== ansigen started ===")
	return f
}

func defaultLogDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ansigen")
}

func trimFinalNewline(s string) string {
	if !strings.HasSuffix(s, "\n") {
		return s
	}
	return strings.TrimSuffix(strings.TrimSuffix(s, "\n"), "\r")
}
