package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"syci/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	out    io.Writer
	cyan   *color.Color
	yellow *color.Color
	green  *color.Color
	red    *color.Color
	gray   *color.Color
}

// NewFormatter creates a new Formatter writing to out
func NewFormatter(out io.Writer) *Formatter {
	return &Formatter{
		out:    out,
		cyan:   color.New(color.FgCyan),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		gray:   color.New(color.FgHiBlack),
	}
}

// PrintUnitList prints units in resolver order, each with its sidecars.
func (f *Formatter) PrintUnitList(units []domain.TestUnit, kind domain.SidecarKind) {
	f.green.Fprintf(f.out, "Found %d test unit(s):\n\n", len(units))

	for i, unit := range units {
		isLastUnit := i == len(units)-1
		if isLastUnit {
			f.cyan.Fprintf(f.out, "└── %s\n", unit.Name)
		} else {
			f.cyan.Fprintf(f.out, "├── %s\n", unit.Name)
		}

		children := []string{filepath.Base(unit.SourcePath)}
		if unit.HasInput() {
			children = append(children, filepath.Base(unit.InputPath))
		}
		if sidecar := unit.Sidecar(kind); sidecar != "" {
			children = append(children, filepath.Base(sidecar))
		}

		for j, child := range children {
			isLastChild := j == len(children)-1

			var prefix string
			if isLastUnit {
				if isLastChild {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastChild {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}
			fmt.Fprintf(f.out, "%s%s\n", prefix, f.yellow.Sprint(child))
		}
	}
}

// PrintSummary prints a batch summary table.
func (f *Formatter) PrintSummary(summary domain.RunSummary) {
	fmt.Fprint(f.out, "\n")
	f.cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	f.cyan.Fprintln(f.out, "║                    Test Execution Statistics                  ║")
	f.cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	f.row("Total Units", fmt.Sprintf("%d", summary.Total), nil)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Passed Units", fmt.Sprintf("%d", summary.Passed), f.green)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Failed Units", fmt.Sprintf("%d", summary.Failed), f.red)
	fmt.Fprintln(f.out, "├─────────────────────────────────┼─────────────────────────────┤")
	f.row("Duration", fmt.Sprintf("%.2fs", summary.Duration.Seconds()), nil)
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if summary.Failed == 0 {
		f.green.Fprintln(f.out, "✓ All units passed!")
	} else {
		f.red.Fprintf(f.out, "✗ %d of %d unit(s) failed\n", summary.Failed, summary.Total)
	}
}

func (f *Formatter) row(label, value string, c *color.Color) {
	fmt.Fprintf(f.out, "│ %-31s │ ", label)
	cell := fmt.Sprintf("%-27s", value)
	if c != nil {
		cell = c.Sprint(cell)
	}
	fmt.Fprintf(f.out, "%s │\n", cell)
}

// PrintFailures lists failed units with their exit codes.
func (f *Formatter) PrintFailures(results []domain.RunResult) {
	var failed []domain.RunResult
	for _, r := range results {
		if !r.Passed() {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return
	}

	fmt.Fprintln(f.out)
	for i, r := range failed {
		connector := "├── "
		if i == len(failed)-1 {
			connector = "└── "
		}
		f.red.Fprintf(f.out, "%s%s %s\n", connector, r.Unit.Name, f.gray.Sprintf("(exit %d)", r.ExitCode))
	}
}

// PrintOutputs prints the captured output of every unit.
func (f *Formatter) PrintOutputs(results []domain.RunResult) {
	for _, r := range results {
		status := f.green.Sprint("PASS")
		if !r.Passed() {
			status = f.red.Sprint("FAIL")
		}
		fmt.Fprintf(f.out, "%s %s %s\n", status, f.cyan.Sprint(r.Unit.Name), f.gray.Sprintf("(%s)", r.Duration().Round(time.Millisecond)))
		if out := strings.TrimRight(r.Output, "\n"); out != "" {
			for _, line := range strings.Split(out, "\n") {
				fmt.Fprintf(f.out, "    %s\n", line)
			}
		}
	}
}
