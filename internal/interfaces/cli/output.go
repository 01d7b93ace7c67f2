package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/turtacn/chem2smiles/internal/batch"
	"github.com/turtacn/chem2smiles/internal/resolver"
)

// printer writes user-facing output.  All status text goes through here so
// --no-color has a single enforcement point.
type printer struct {
	w       io.Writer
	noColor bool
}

func newPrinter(w io.Writer, noColor bool) *printer {
	return &printer{w: w, noColor: noColor}
}

func (p *printer) println(s string) {
	fmt.Fprintln(p.w, s)
}

func (p *printer) successf(format string, args ...interface{}) {
	p.statusf(color.FgGreen, format, args...)
}

func (p *printer) failf(format string, args ...interface{}) {
	p.statusf(color.FgRed, format, args...)
}

func (p *printer) statusf(attr color.Attribute, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if p.noColor {
		fmt.Fprintln(p.w, msg)
		return
	}
	c := color.New(attr)
	c.Fprintln(p.w, msg)
}

// resultTable renders the ordered outcome as a terminal table, one row per
// input name, unresolved entries marked "Not Found" like the file output.
func (p *printer) resultTable(results []resolver.Result) {
	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"Name", "SMILES"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range results {
		smiles := "Not Found"
		if r.Resolved() {
			smiles = r.SMILES
		}
		table.Append([]string{r.Name, smiles})
	}
	table.Render()
}

// summary prints the observational resolved/unresolved tally.
func (p *printer) summary(s batch.Summary) {
	msg := fmt.Sprintf("%d resolved, %d unresolved of %d names in %s",
		s.Resolved, s.Unresolved, s.Total, s.Elapsed.Round(time.Millisecond))
	if s.Unresolved == 0 {
		p.successf("%s", msg)
	} else {
		p.statusf(color.FgYellow, "%s", msg)
	}
}

// imagePath builds a per-name image destination inside dir.  The index
// prefix keeps repeated names from overwriting each other.
func imagePath(dir string, index int, name string) string {
	return filepath.Join(dir, fmt.Sprintf("%03d_%s.png", index+1, sanitizeFilename(name)))
}

// sanitizeFilename maps a chemical name onto a safe filename fragment.
func sanitizeFilename(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
