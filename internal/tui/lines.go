package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
)

// RunLines reads commands line by line. It is used when the input is not a
// terminal. The commands are:
//
//	A1 = value   assign value (or clear the cell when value is empty)
//	A1           show the cell
//	deps A1      show what A1 reads and what reads A1
//	recompute    evaluate every formula again
//	save         save the sheet
//	quit         stop reading
//
// A failing command is reported and the next line is read.
func RunLines(r io.Reader, w io.Writer, sh *grid.Sheet, opts Options) error {
	if opts.Formatter == nil {
		opts.Formatter = format.Plain()
	}
	scan := bufio.NewScanner(r)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quit, err := execLine(line, w, sh, opts)
		if err != nil {
			fmt.Fprintf(w, "error: %s\n", err)
		}
		if quit {
			break
		}
	}
	return scan.Err()
}

func execLine(line string, w io.Writer, sh *grid.Sheet, opts Options) (bool, error) {
	if addr, raw, ok := strings.Cut(line, "="); ok && !strings.HasPrefix(line, "=") {
		pos, err := layout.ParseAddr(addr)
		if err != nil {
			return false, err
		}
		return false, sh.Assign(pos, strings.TrimSpace(raw))
	}
	cmd, rest, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "quit", "exit":
		return true, nil
	case "save":
		if opts.Save == nil {
			return false, fmt.Errorf("no file to save to")
		}
		return false, opts.Save(sh)
	case "recompute":
		return false, sh.RecomputeAll()
	case "deps":
		pos, err := layout.ParseAddr(rest)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(w, "%s depends on: %s\n", pos, joinPositions(sh.DependsOn(pos)))
		fmt.Fprintf(w, "%s used by: %s\n", pos, joinPositions(sh.Dependents(pos)))
		return false, nil
	default:
		pos, err := layout.ParseAddr(line)
		if err != nil {
			return false, fmt.Errorf("%s: unknown command", line)
		}
		v, err := sh.Read(pos)
		fmt.Fprintf(w, "%s (%s) %s -> %s\n", pos, v.Kind, v.Raw, format.Display(v, err, opts.Formatter))
		return false, nil
	}
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
