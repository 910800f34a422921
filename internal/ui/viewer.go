package ui

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"syci/internal/domain"
)

// Viewer displays run results interactively
type Viewer interface {
	View(results []domain.RunResult) error
}

// ResultViewer browses unit results in a TUI: units on the left, the
// selected unit's invocation and output on the right.
type ResultViewer struct {
	failedOnly bool
}

// NewResultViewer creates a new ResultViewer
func NewResultViewer() *ResultViewer {
	return &ResultViewer{}
}

// View blocks until the user exits.
func (rv *ResultViewer) View(results []domain.RunResult) error {
	if len(results) == 0 {
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)

	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	// visible maps list rows to indexes in results
	var visible []int

	updateDetails := func() {
		row := list.GetCurrentItem()
		if row < 0 || row >= len(visible) {
			statsView.SetText("")
			detailsView.SetText("")
			return
		}
		r := results[visible[row]]
		statsView.SetText(formatResultStats(r))
		detailsView.SetText(formatResultDetails(r)).ScrollToBeginning()
	}

	updateHeader := func() {
		summary := domain.Summarize(results, 0)
		mode := "all"
		if rv.failedOnly {
			mode = "failed only"
		}
		headerView.SetText(fmt.Sprintf(" Units (%d total, [green]%d passed[white], [red]%d failed[white], showing %s) | ↑↓ navigate, → details, ← back, [yellow]F[white] toggle failed, Ctrl+C exit ",
			summary.Total, summary.Passed, summary.Failed, mode))
	}

	populate := func() {
		list.Clear()
		visible = visible[:0]
		for i, r := range results {
			if rv.failedOnly && r.Passed() {
				continue
			}
			visible = append(visible, i)
			list.AddItem(listItemText(r, len(visible)), "", 0, nil)
		}
		updateHeader()
		updateDetails()
	}

	detailsContainer := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(detailsView, 0, 1, false).
		AddItem(tview.NewBox(), 2, 0, false)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsContainer, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'f' || event.Rune() == 'F' {
				rv.failedOnly = !rv.failedOnly
				populate()
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(index int, mainText string, secondaryText string, shortcut rune) {
		updateDetails()
	})

	populate()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func listItemText(r domain.RunResult, number int) string {
	if r.Passed() {
		return fmt.Sprintf("[green]✓ [yellow]%d.[white] %s", number, r.Unit.Name)
	}
	return fmt.Sprintf("[red]✗ [yellow]%d.[white] %s", number, r.Unit.Name)
}

// formatResultStats formats the header line for a unit using tview color tags
func formatResultStats(r domain.RunResult) string {
	status := "[green]passed[white]"
	if !r.Passed() {
		status = fmt.Sprintf("[red]failed (exit %d)[white]", r.ExitCode)
	}
	return fmt.Sprintf("[cyan]unit:[white] [yellow]%s[white]  %s  [gray]%s[white]\n",
		tview.Escape(r.Unit.Name), status, r.Duration().Round(time.Millisecond))
}

// formatResultDetails formats invocation and output for the details pane
func formatResultDetails(r domain.RunResult) string {
	var builder strings.Builder
	w := tabwriter.NewWriter(&builder, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "[cyan]Source:\t[white]%s\n", tview.Escape(r.Unit.SourcePath))
	if r.Unit.HasInput() {
		fmt.Fprintf(w, "[cyan]Input:\t[white]%s\n", tview.Escape(r.Unit.InputPath))
	}
	if r.Unit.ExpectedOutputPath != "" {
		fmt.Fprintf(w, "[cyan]Expected:\t[white]%s\n", tview.Escape(r.Unit.ExpectedOutputPath))
	}
	fmt.Fprintf(w, "[cyan]Command:\t[white]%s %s\n", tview.Escape(r.Script), tview.Escape(strings.Join(r.Args, " ")))
	if r.Err != nil && r.ExitCode < 0 {
		fmt.Fprintf(w, "[red]Error:\t%s[white]\n", tview.Escape(r.Err.Error()))
	}
	fmt.Fprintf(w, "\n")

	if r.Output == "" {
		fmt.Fprintf(w, "[gray](no output)[white]\n")
	} else {
		fmt.Fprintf(w, "[yellow]Output:[white]\n%s\n", tview.Escape(r.Output))
	}

	w.Flush()
	return builder.String()
}
