package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/midbel/cli"
	"github.com/midbel/gridcalc/export"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/internal/config"
	"github.com/midbel/gridcalc/s2v"
	"github.com/midbel/gridcalc/store"
)

var errFail = errors.New("fail")

var (
	summary = "gridcalc"
	help    = "spreadsheet engine with formulas kept up to date with the cells they read"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	warnColor   = color.New(color.FgYellow)
	headerColor = color.New(color.Bold)
	kindColor   = color.New(color.Faint)
)

type environment struct {
	cfg    config.Config
	logger *slog.Logger
}

var env = environment{
	cfg:    config.Default(),
	logger: slog.New(slog.DiscardHandler),
}

type globals struct {
	Config  string
	Verbose bool
	Args    []string
}

func parseGlobals(args []string) (globals, error) {
	var (
		set = cli.NewFlagSet("gridcalc")
		g   globals
	)
	set.StringVar(&g.Config, "config", "", "configuration file")
	set.BoolVar(&g.Verbose, "v", false, "verbose logging")
	if err := set.Parse(args); err != nil {
		return g, err
	}
	g.Args = set.Args()
	return g, nil
}

func main() {
	root := prepare()
	root.SetSummary(summary)
	root.SetHelp(help)
	g, err := parseGlobals(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			root.Help()
			os.Exit(2)
		}
		errorColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := setup(config.Locate(g.Config), g.Verbose); err != nil {
		errorColor.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = root.Execute(g.Args)
	if err != nil {
		if s, ok := err.(cli.SuggestionError); ok && len(s.Others) > 0 {
			fmt.Fprintln(os.Stderr, "similar command(s)")
			for _, n := range s.Others {
				fmt.Fprintln(os.Stderr, "-", n)
			}
		}
		if !errors.Is(err, errFail) {
			errorColor.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func setup(file string, verbose bool) error {
	cfg, err := config.Load(file)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	env.cfg = cfg
	env.logger = slog.New(handler)
	return nil
}

func prepare() *cli.CommandTrie {
	root := cli.New()
	root.Register([]string{"new"}, &newCmd)
	root.Register([]string{"set"}, &setCmd)
	root.Register([]string{"get"}, &getCmd)
	root.Register([]string{"print"}, &printCmd)
	root.Register([]string{"deps"}, &depsCmd)
	root.Register([]string{"convert"}, &convertCmd)
	root.Register([]string{"export"}, &exportCmd)
	root.Register([]string{"snapshot"}, &snapshotCmd)
	root.Register([]string{"restore"}, &restoreCmd)
	root.Register([]string{"history"}, &historyCmd)
	root.Register([]string{"edit"}, &editCmd)
	root.Register([]string{"config"}, &configCmd)
	return root
}

var newCmd = cli.Command{
	Name:    "new",
	Alias:   []string{"create"},
	Summary: "create an empty spreadsheet",
	Usage:   "new [-l lines] [-c columns] [-o file]",
	Handler: &CreateFileCommand{},
}

var setCmd = cli.Command{
	Name:    "set",
	Alias:   []string{"assign"},
	Summary: "assign a value or a formula to a cell",
	Usage:   "set [-o file] <spreadsheet> <cell> <value>",
	Handler: &SetCellCommand{},
}

var getCmd = cli.Command{
	Name:    "get",
	Summary: "show raw content, kind and value of cells",
	Usage:   "get <spreadsheet> <cell> [<cell>...]",
	Handler: &GetCellCommand{},
}

var printCmd = cli.Command{
	Name:    "print",
	Alias:   []string{"view", "show", "dump"},
	Summary: "print content of a spreadsheet",
	Usage:   "print [-w width] [-s separator] [-f pattern] [-r range] [-raw] [-n] <spreadsheet>",
	Handler: &PrintSheetCommand{},
}

var depsCmd = cli.Command{
	Name:    "deps",
	Summary: "show the cells read by a cell and the cells reading it",
	Usage:   "deps <spreadsheet> <cell> [<cell>...]",
	Handler: &DependenciesCommand{},
}

var convertCmd = cli.Command{
	Name:    "convert",
	Summary: "convert spreadsheet to another format (s2v, gcb, xlsx)",
	Usage:   "convert -o file <spreadsheet>",
	Handler: &ConvertFileCommand{},
}

var exportCmd = cli.Command{
	Name:    "export",
	Summary: "export a spreadsheet to xlsx",
	Usage:   "export [-o file] <spreadsheet>",
	Handler: &ExportFileCommand{},
}

var snapshotCmd = cli.Command{
	Name:    "snapshot",
	Summary: "save a new version of a spreadsheet in a database",
	Usage:   "snapshot -d database [-n name] <spreadsheet>",
	Handler: &SnapshotCommand{},
}

var restoreCmd = cli.Command{
	Name:    "restore",
	Summary: "restore a version of a spreadsheet from a database",
	Usage:   "restore -d database -n name [-r version] -o file",
	Handler: &RestoreCommand{},
}

var historyCmd = cli.Command{
	Name:    "history",
	Summary: "list the versions kept in a database",
	Usage:   "history -d database",
	Handler: &HistoryCommand{},
}

var editCmd = cli.Command{
	Name:    "edit",
	Summary: "edit a spreadsheet interactively",
	Usage:   "edit [-o file] [<spreadsheet>]",
	Handler: &EditFileCommand{},
}

var configCmd = cli.Command{
	Name:    "config",
	Summary: "print the configuration in use",
	Usage:   "config",
	Handler: &PrintConfigCommand{},
}

const (
	extText   = ".s2v"
	extBinary = ".gcb"
	extExcel  = ".xlsx"
)

// openFile loads a spreadsheet according to its format then computes every
// formula. Cells that could not be loaded or computed are reported as
// warnings.
func openFile(file string) (*grid.Sheet, error) {
	var (
		sh   *grid.Sheet
		err  error
		opts = append(env.cfg.Options(), grid.WithLogger(env.logger))
	)
	zip, err := isZip(file)
	if err != nil {
		return nil, err
	}
	switch {
	case zip:
		sh, err = openExcel(file, opts)
	case filepath.Ext(file) == extBinary:
		sh, err = openSnapshot(file, opts)
	default:
		sh, err = s2v.ReadFile(file, env.cfg.Dimension(), opts...)
	}
	if sh == nil {
		return nil, err
	}
	warn(file, err)
	warn(file, sh.RecomputeAll())
	return sh, nil
}

func openExcel(file string, opts []grid.Option) (*grid.Sheet, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return export.ReadXLSX(r, env.cfg.Dimension(), opts...)
}

func openSnapshot(file string, opts []grid.Option) (*grid.Sheet, error) {
	snap, err := store.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return snap.Restore(opts...)
}

func saveFile(file string, sh *grid.Sheet) error {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	switch filepath.Ext(file) {
	case extBinary:
		name := strings.TrimSuffix(filepath.Base(file), extBinary)
		return store.WriteFile(file, store.TakeSnapshot(name, sh))
	case extExcel:
		w, err := os.Create(file)
		if err != nil {
			return err
		}
		if err := export.WriteXLSX(w, sh); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	default:
		return s2v.WriteFile(file, sh)
	}
}

func newSheet(lines, cols int64) (*grid.Sheet, error) {
	opts := append(env.cfg.Options(), grid.WithLogger(env.logger))
	return grid.New(lines, cols, opts...)
}

func warn(file string, err error) {
	if err == nil {
		return
	}
	var list []error
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		list = j.Unwrap()
	} else {
		list = append(list, err)
	}
	for _, e := range list {
		warnColor.Fprintf(os.Stderr, "%s: warning: %s", file, e)
		fmt.Fprintln(os.Stderr)
	}
}

var magicZipBytes = [][]byte{
	{0x50, 0x4b, 0x03, 0x04},
	{0x50, 0x4b, 0x05, 0x06},
	{0x50, 0x4b, 0x07, 0x08},
}

func isZip(file string) (bool, error) {
	r, err := os.Open(file)
	if err != nil {
		return false, err
	}
	defer r.Close()

	magic := make([]byte, 4)
	if n, err := io.ReadFull(r, magic); err != nil || n != len(magic) {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}
		return false, err
	}
	for _, mzb := range magicZipBytes {
		if bytes.Equal(magic, mzb) {
			return true, nil
		}
	}
	return false, nil
}
