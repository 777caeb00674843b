package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/midbel/cli"
	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/internal/tui"
	"github.com/midbel/gridcalc/layout"
	"github.com/midbel/gridcalc/store"
	"github.com/midbel/gridcalc/value"
	"golang.org/x/term"
)

type CreateFileCommand struct {
	OutFile string
	Lines   int
	Columns int
}

func (c CreateFileCommand) Run(args []string) error {
	set := cli.NewFlagSet("new")
	set.StringVar(&c.OutFile, "o", "new.s2v", "write result to output file")
	set.IntVar(&c.Lines, "l", int(env.cfg.Grid.Lines), "number of lines")
	set.IntVar(&c.Columns, "c", int(env.cfg.Grid.Columns), "number of columns")
	if err := set.Parse(args); err != nil {
		return err
	}
	sh, err := newSheet(int64(c.Lines), int64(c.Columns))
	if err != nil {
		return err
	}
	return saveFile(c.OutFile, sh)
}

type SetCellCommand struct {
	OutFile string
}

func (c SetCellCommand) Run(args []string) error {
	set := cli.NewFlagSet("set")
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 2 {
		return fmt.Errorf("missing spreadsheet and/or cell")
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	pos, err := layout.ParseAddr(set.Arg(1))
	if err != nil {
		return err
	}
	raw := strings.Join(set.Args()[2:], " ")
	if err := sh.Assign(pos, raw); err != nil {
		return err
	}
	if c.OutFile == "" {
		c.OutFile = set.Arg(0)
	}
	return saveFile(c.OutFile, sh)
}

type GetCellCommand struct {
	Pattern string
}

func (c GetCellCommand) Run(args []string) error {
	set := cli.NewFlagSet("get")
	set.StringVar(&c.Pattern, "f", env.cfg.Print.Number, "number pattern")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 2 {
		return fmt.Errorf("missing spreadsheet and/or cell")
	}
	nf, err := format.Parse(c.Pattern)
	if err != nil {
		return err
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	for _, a := range set.Args()[1:] {
		pos, err := layout.ParseAddr(a)
		if err != nil {
			return err
		}
		v, err := sh.Read(pos)
		if err != nil && v.Kind != value.KindFormula {
			return err
		}
		headerColor.Fprint(os.Stdout, pos.Addr())
		fmt.Fprint(os.Stdout, " ")
		kindColor.Fprint(os.Stdout, v.Kind)
		fmt.Fprintf(os.Stdout, " %s -> ", v.Raw)
		if err != nil {
			errorColor.Fprint(os.Stdout, format.Display(v, err, nf))
			fmt.Fprintf(os.Stdout, " (%s)", err)
		} else {
			fmt.Fprint(os.Stdout, format.Display(v, err, nf))
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

type PrintSheetCommand struct {
	Width   int
	Sep     string
	Pattern string
	Range   string
	Raw     bool
	Lino    bool
}

func (c PrintSheetCommand) Run(args []string) error {
	set := cli.NewFlagSet("print")
	set.IntVar(&c.Width, "w", env.cfg.Print.Width, "column width")
	set.StringVar(&c.Sep, "s", env.cfg.Print.Separator, "column separator")
	set.StringVar(&c.Pattern, "f", env.cfg.Print.Number, "number pattern")
	set.StringVar(&c.Range, "r", "", "range of cells to print")
	set.BoolVar(&c.Raw, "raw", false, "print raw contents instead of values")
	set.BoolVar(&c.Lino, "n", false, "print line number")
	if err := set.Parse(args); err != nil {
		return err
	}
	nf, err := format.Parse(c.Pattern)
	if err != nil {
		return err
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	rg := sh.Dimension().Bounds()
	if c.Range != "" {
		if rg, err = layout.ParseRange(c.Range); err != nil {
			return err
		}
		rg = rg.Normalize()
		size := sh.Dimension()
		if !size.Contains(rg.Starts) || !size.Contains(rg.Ends) {
			return fmt.Errorf("%s: %w", c.Range, grid.ErrBounds)
		}
	}
	return c.print(sh, rg, nf)
}

func (c PrintSheetCommand) print(sh *grid.Sheet, rg *layout.Range, nf format.Formatter) error {
	if c.Lino {
		fmt.Fprint(os.Stdout, format.Fit("", 5, false))
		fmt.Fprint(os.Stdout, c.Sep)
	}
	for col := rg.Starts.Column; col <= rg.Ends.Column; col++ {
		if col > rg.Starts.Column {
			fmt.Fprint(os.Stdout, c.Sep)
		}
		headerColor.Fprintf(os.Stdout, " %s ", format.Fit(layout.ColumnLabel(col), c.Width, false))
	}
	fmt.Fprintln(os.Stdout)
	for line := rg.Starts.Line; line <= rg.Ends.Line; line++ {
		if c.Lino {
			fmt.Fprint(os.Stdout, format.Fit(fmt.Sprint(line), 5, false))
			fmt.Fprint(os.Stdout, c.Sep)
		}
		for col := rg.Starts.Column; col <= rg.Ends.Column; col++ {
			if col > rg.Starts.Column {
				fmt.Fprint(os.Stdout, c.Sep)
			}
			pos := layout.Position{
				Line:   line,
				Column: col,
			}
			fmt.Fprintf(os.Stdout, " %s ", c.cell(sh, pos, nf))
		}
		fmt.Fprintln(os.Stdout)
	}
	return nil
}

func (c PrintSheetCommand) cell(sh *grid.Sheet, pos layout.Position, nf format.Formatter) string {
	if c.Raw {
		content, err := sh.Cell(pos)
		if err != nil {
			return format.Fit(format.ErrorCode(err), c.Width, false)
		}
		return format.Fit(content.Raw(), c.Width, false)
	}
	v, err := sh.Read(pos)
	str := format.Fit(format.Display(v, err, nf), c.Width, err == nil && v.Numeric && v.Kind != value.KindText)
	if err != nil {
		return errorColor.Sprint(str)
	}
	return str
}

type DependenciesCommand struct{}

func (c DependenciesCommand) Run(args []string) error {
	set := cli.NewFlagSet("deps")
	if err := set.Parse(args); err != nil {
		return err
	}
	if set.NArg() < 2 {
		return fmt.Errorf("missing spreadsheet and/or cell")
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	for _, a := range set.Args()[1:] {
		pos, err := layout.ParseAddr(a)
		if err != nil {
			return err
		}
		headerColor.Fprintln(os.Stdout, pos.Addr())
		fmt.Fprintf(os.Stdout, "  depends on: %s\n", joinPositions(sh.DependsOn(pos)))
		fmt.Fprintf(os.Stdout, "  used by:    %s\n", joinPositions(sh.Dependents(pos)))
	}
	return nil
}

func joinPositions(list []layout.Position) string {
	if len(list) == 0 {
		return "-"
	}
	var str []string
	for _, p := range list {
		str = append(str, p.Addr())
	}
	return strings.Join(str, ", ")
}

type ConvertFileCommand struct {
	OutFile string
}

func (c ConvertFileCommand) Run(args []string) error {
	set := cli.NewFlagSet("convert")
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	if err := set.Parse(args); err != nil {
		return err
	}
	if c.OutFile == "" {
		return fmt.Errorf("missing output file")
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	return saveFile(c.OutFile, sh)
}

type ExportFileCommand struct {
	OutFile string
}

func (c ExportFileCommand) Run(args []string) error {
	set := cli.NewFlagSet("export")
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	if err := set.Parse(args); err != nil {
		return err
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	if c.OutFile == "" {
		base := filepath.Base(set.Arg(0))
		c.OutFile = strings.TrimSuffix(base, filepath.Ext(base)) + extExcel
	}
	if filepath.Ext(c.OutFile) != extExcel {
		c.OutFile += extExcel
	}
	return saveFile(c.OutFile, sh)
}

type SnapshotCommand struct {
	Database string
	Name     string
}

func (c SnapshotCommand) Run(args []string) error {
	set := cli.NewFlagSet("snapshot")
	set.StringVar(&c.Database, "d", "gridcalc.db", "database file")
	set.StringVar(&c.Name, "n", "", "name of the snapshot")
	if err := set.Parse(args); err != nil {
		return err
	}
	sh, err := openFile(set.Arg(0))
	if err != nil {
		return err
	}
	if c.Name == "" {
		base := filepath.Base(set.Arg(0))
		c.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	db, err := store.Open(c.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	snap := store.TakeSnapshot(c.Name, sh)
	if err := db.Save(snap); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s version %d saved (%d cells)\n", snap.Name, snap.Version, len(snap.Cells))
	return nil
}

type RestoreCommand struct {
	Database string
	Name     string
	Version  int
	OutFile  string
}

func (c RestoreCommand) Run(args []string) error {
	set := cli.NewFlagSet("restore")
	set.StringVar(&c.Database, "d", "gridcalc.db", "database file")
	set.StringVar(&c.Name, "n", "", "name of the snapshot")
	set.IntVar(&c.Version, "r", 0, "version to restore (latest by default)")
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	if err := set.Parse(args); err != nil {
		return err
	}
	if c.Name == "" {
		return fmt.Errorf("missing snapshot name")
	}
	db, err := store.Open(c.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	var snap *store.Snapshot
	if c.Version > 0 {
		snap, err = db.Version(c.Name, c.Version)
	} else {
		snap, err = db.Latest(c.Name)
	}
	if err != nil {
		return err
	}
	opts := append(env.cfg.Options(), grid.WithLogger(env.logger))
	sh, err := snap.Restore(opts...)
	if err != nil {
		return err
	}
	warn(c.Name, sh.RecomputeAll())
	if c.OutFile == "" {
		c.OutFile = c.Name + extText
	}
	return saveFile(c.OutFile, sh)
}

type HistoryCommand struct {
	Database string
}

func (c HistoryCommand) Run(args []string) error {
	set := cli.NewFlagSet("history")
	set.StringVar(&c.Database, "d", "gridcalc.db", "database file")
	if err := set.Parse(args); err != nil {
		return err
	}
	db, err := store.Open(c.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	list, err := db.List()
	if err != nil {
		return err
	}
	for _, i := range list {
		headerColor.Fprintf(os.Stdout, "%s@%d", i.Name, i.Version)
		fmt.Fprintf(os.Stdout, ": %d lines, %d columns - %s\n", i.Lines, i.Columns, i.Created.Format("2006-01-02 15:04:05"))
	}
	return nil
}

type EditFileCommand struct {
	OutFile string
	Pattern string
	Width   int
}

func (c EditFileCommand) Run(args []string) error {
	set := cli.NewFlagSet("edit")
	set.StringVar(&c.OutFile, "o", "", "write result to output file")
	set.StringVar(&c.Pattern, "f", env.cfg.Print.Number, "number pattern")
	set.IntVar(&c.Width, "w", env.cfg.Print.Width, "column width")
	if err := set.Parse(args); err != nil {
		return err
	}
	nf, err := format.Parse(c.Pattern)
	if err != nil {
		return err
	}
	var sh *grid.Sheet
	if set.NArg() > 0 {
		sh, err = openFile(set.Arg(0))
		if c.OutFile == "" {
			c.OutFile = set.Arg(0)
		}
	} else {
		size := env.cfg.Dimension()
		sh, err = newSheet(size.Lines, size.Columns)
	}
	if err != nil {
		return err
	}
	opts := tui.Options{
		Width:     c.Width,
		Formatter: nf,
	}
	if c.OutFile != "" {
		opts.Save = func(sh *grid.Sheet) error {
			return saveFile(c.OutFile, sh)
		}
	}
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.Run(sh, opts)
	}
	return tui.RunLines(os.Stdin, os.Stdout, sh, opts)
}

type PrintConfigCommand struct{}

func (c PrintConfigCommand) Run(args []string) error {
	set := cli.NewFlagSet("config")
	if err := set.Parse(args); err != nil {
		return err
	}
	return env.cfg.Encode(os.Stdout)
}
