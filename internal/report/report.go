// Package report renders planning outcomes for the terminal or for other
// programs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bartolsthoorn/chipnet/internal/network"
)

// Format selects a renderer.
type Format string

const (
	FormatPlain Format = "plain"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formats lists the accepted values of Format.
var Formats = []Format{FormatPlain, FormatTable, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want plain, table or json)", s)
}

const separator = "==============================="

// Render writes outcomes to w in format f. Plain and table outcomes are
// separated by a blank line; JSON is a single array.
func Render(w io.Writer, f Format, outcomes ...*network.Outcome) error {
	switch f {
	case FormatJSON:
		return JSON(w, outcomes...)
	case FormatPlain, FormatTable:
		for i, o := range outcomes {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			var err error
			if f == FormatPlain {
				err = Plain(w, o)
			} else {
				err = Table(w, o)
			}
			if err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}

// Plain writes the console layout of the planning scripts:
//
//	Status: Optimal
//	Open_Tucson = 1.0
//	...
//	Total cost: 123.0
//	===============================
//	Sites opened: 2.0
func Plain(w io.Writer, o *network.Outcome) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	if !o.Feasible() {
		_, err := io.WriteString(w, b.String())
		return err
	}
	for _, a := range o.Assignments {
		fmt.Fprintf(&b, "%s = %s\n", a.Name, Number(a.Value))
	}
	fmt.Fprintf(&b, "Total cost: %s\n", Number(o.Objective))
	if len(o.Summary) > 0 {
		b.WriteString(separator + "\n")
		for _, l := range o.Summary {
			fmt.Fprintf(&b, "%s: %s\n", l.Label, Number(l.Value))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// JSON writes outcomes as an indented array.
func JSON(w io.Writer, outcomes ...*network.Outcome) error {
	if outcomes == nil {
		outcomes = []*network.Outcome{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(outcomes)
}

// Number formats v the shortest way that still reads as a float, so whole
// numbers keep a trailing ".0".
func Number(v float64) string {
	if v == 0 {
		v = 0 // drop negative zero
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !math.IsInf(v, 0) && !math.IsNaN(v) && !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
