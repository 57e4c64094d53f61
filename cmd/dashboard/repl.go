package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matst80/slask-dashboard/pkg/dashboard"
	"github.com/matst80/slask-dashboard/pkg/query"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/matst80/slask-dashboard/pkg/view"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  toggle <facet> <value>   select or deselect a facet value
  name <text>              filter by game name, empty clears
  nl <text>                apply a natural language query
  reset                    clear every filter
  refresh                  refresh every view
  options [facet]          list the selectable values
  query                    print the encoded filter query
  export                   write report.csv to the output directory
  quit
`

// Repl runs dashboard commands read line by line.
type Repl struct {
	dash *dashboard.Dashboard
	out  io.Writer
}

func NewRepl(d *dashboard.Dashboard, out io.Writer) *Repl {
	return &Repl{dash: d, out: out}
}

// Run reads commands until the input ends, quit is entered or ctx is done.
func (r *Repl) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	fmt.Fprint(r.out, "> ")
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := r.Execute(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
			fmt.Fprint(r.out, "> ")
		}
	}
}

func (r *Repl) Execute(ctx context.Context, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(cmd) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprint(r.out, helpText)
	case "quit", "exit":
		return errQuit
	case "toggle":
		name, value, _ := strings.Cut(rest, " ")
		facet, err := types.ParseFacet(name)
		if err != nil {
			return err
		}
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("toggle %s: missing value", facet)
		}
		report, err := r.dash.Toggle(ctx, facet, value)
		if err != nil {
			return err
		}
		r.summary(report)
	case "name":
		r.summary(r.dash.SetName(ctx, rest))
	case "nl":
		applied, err := r.dash.ApplyNaturalLanguage(ctx, rest)
		if err != nil {
			return err
		}
		if applied == nil {
			return nil
		}
		fmt.Fprintf(r.out, "applied %s\n", query.EncodeSpec(&applied.Spec))
		r.summary(applied.Report)
	case "reset":
		r.summary(r.dash.Reset(ctx))
	case "refresh":
		r.summary(r.dash.Refresh(ctx))
	case "options":
		facets := types.AllFacets
		if rest != "" {
			facet, err := types.ParseFacet(rest)
			if err != nil {
				return err
			}
			facets = []types.Facet{facet}
		}
		for _, f := range facets {
			values := make([]string, 0)
			for _, c := range r.dash.Registry.Controls(f) {
				mark := " "
				if c.Checked {
					mark = "x"
				}
				values = append(values, fmt.Sprintf("[%s] %s", mark, c.Value))
			}
			fmt.Fprintf(r.out, "%s: %s\n", f, strings.Join(values, " "))
		}
	case "query":
		fmt.Fprintln(r.out, query.Encode(r.dash.State))
	case "export":
		path, n, err := r.dash.Export(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "wrote %d bytes to %s\n", n, path)
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (r *Repl) summary(report dashboard.Report) {
	for _, res := range report.Results {
		if res.Outcome == view.OutcomeRendered {
			continue
		}
		if res.Err != nil {
			fmt.Fprintf(r.out, "%s: %s (%v)\n", res.Name, res.Outcome, res.Err)
			continue
		}
		fmt.Fprintf(r.out, "%s: %s\n", res.Name, res.Outcome)
	}
}
