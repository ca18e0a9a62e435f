// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.19
//

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	m "github.com/mkhts/gnssviz"
	"github.com/pkg/browser"
	"github.com/spf13/pflag"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		m.PrintE(err)
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args, os.Stdin, os.Stdout); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Structure to hold command line argument information
type cmdOpt struct {
	logFn     string
	cfgFn     string
	outDir    string
	noBrowser bool
	window    int
	polyOrder int
	altOffset float64
	debug     int
	changed   func(name string) bool
}

// Parse command line arguments
func parseArgs(argv []string) (a cmdOpt, err error) {
	fs := pflag.NewFlagSet("gnssviz", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `
[Usage]
	%s [Options] [logfile]

	Without logfile the file name is asked for interactively.

[Options]
`, filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	fs.StringVarP(&a.cfgFn, "config", "c", "", "YAML configuration file.")
	fs.StringVarP(&a.outDir, "out", "o", "", "Output directory for plots and exports. strftime patterns like %Y%m%d are expanded.")
	fs.BoolVar(&a.noBrowser, "no-browser", false, "Print the map link without opening a browser.")
	fs.IntVarP(&a.window, "window", "w", m.SgWindow, "Savitzky-Golay window length (odd).")
	fs.IntVarP(&a.polyOrder, "polyorder", "p", m.SgOrder, "Savitzky-Golay polynomial order.")
	fs.Float64Var(&a.altOffset, "alt-offset", m.Hof, "Altitude correction subtracted before conversion [m]. 0 disables it.")
	fs.IntVarP(&a.debug, "debug", "x", 0, "Debug information display. 0(OFF), 1(display), 2(detailed display)")
	if err = fs.Parse(argv); err != nil {
		return a, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		a.logFn = fs.Arg(0)
	default:
		return a, fmt.Errorf("too many arguments")
	}
	a.changed = fs.Changed
	return
}

// Main application processing
func runApplication(args cmdOpt, stdin io.Reader, stdout io.Writer) error {

	cfg, err := loadConfig(args)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	m.SetDebug(cfg.Debug)
	m.PrintAIf(args.cfgFn != "", "configuration loaded from %s\n", args.cfgFn)

	sess := &m.Session{
		Path:   args.logFn,
		Config: cfg,
	}
	if !args.noBrowser {
		sess.OpenURL = browser.OpenURL
	}

	in := bufio.NewReader(stdin)
	if sess.Path == "" {
		fmt.Fprintln(stdout, "Welcome to the GNSS log visualization tool!")
		fmt.Fprintln(stdout, "Please type in the filename containing PDPPOSA and PDPVELA data.")
		fmt.Fprintln(stdout, "Filename (.txt included). Example: \"Glide.txt\"")
		fn, err := readLine(in)
		if err != nil && fn == "" {
			return fmt.Errorf("failed to read filename: %w", err)
		}
		sess.Path = fn
	}

	return runMenu(in, stdout, sess)
}

// Configuration file (or defaults) with command line overrides
func loadConfig(args cmdOpt) (*m.Config, error) {
	cfg := m.DefaultConfig()
	if args.cfgFn != "" {
		var err error
		if cfg, err = m.LoadConfig(args.cfgFn); err != nil {
			return nil, err
		}
	}
	changed := args.changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if args.outDir != "" {
		cfg.Output.Dir = args.outDir
	}
	if changed("window") {
		cfg.Smoothing.Window = args.window
	}
	if changed("polyorder") {
		cfg.Smoothing.PolyOrder = &args.polyOrder
	}
	if changed("alt-offset") {
		cfg.Transform.AltOffset = &args.altOffset
	}
	if changed("debug") {
		cfg.Debug = args.debug
	}
	if args.noBrowser {
		f := false
		cfg.MapLink.OpenBrowser = &f
	}
	return cfg, cfg.Validate()
}

// Menu loop. Returns on exit or end of input.
func runMenu(in *bufio.Reader, out io.Writer, sess *m.Session) error {
	for {
		printMenu(out)

		s, err := readLine(in)
		if err != nil && s == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		sel, err := m.ParseSelector(s)
		if err != nil {
			fmt.Fprintln(out, "Invalid input. Please try again.")
			continue
		}

		res, err := m.Dispatch(sel, sess)
		if res != nil {
			printResult(out, res)
		}
		if err != nil {
			m.PrintE(err)
			continue
		}
		if res.Exit {
			fmt.Fprintln(out, "Thank you for using our program!")
			return nil
		}
	}
}

func printMenu(out io.Writer) {
	fmt.Fprintln(out, "\nPlease select an option to continue:")
	for _, sel := range m.Selectors {
		fmt.Fprintf(out, "%d.) %s\n", int(sel), sel)
	}
	fmt.Fprintln(out, strings.Repeat("=", 80))
}

func printResult(out io.Writer, res *m.Result) {
	if res.URL != "" {
		fmt.Fprintln(out, "Opening Google Maps with path:", res.URL)
	}
	for _, fn := range res.Files {
		fmt.Fprintln(out, "wrote", fn)
	}
	if res.Summary != nil {
		fmt.Fprint(out, res.Summary)
	}
}

// One line without the line break. err is io.EOF on the last unterminated line.
func readLine(r *bufio.Reader) (string, error) {
	s, err := r.ReadString('\n')
	return strings.TrimRight(s, "\r\n"), err
}
