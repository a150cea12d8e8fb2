package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/date"
	"github.com/etnz/leilao/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	scenario scenarioValue
	date     string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the performance summary of a property" }
func (*summaryCmd) Usage() string {
	return `leilao summary [-s <scenario>] [-d <date>] <property>

  Displays the profit, capital employed and return on investment of a property's
  scenario, with the breakdown of its line items.
  An unsold property in the Execution is measured up to the given date, today by default.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the summary (YYYY-MM-DD)")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(f.Arg(0)) {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderSummary(leilao.SummarizeOn(s.es, f.Arg(0), c.scenario.Scenario, on)))
	return subcommands.ExitSuccess
}

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	date string
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the Projection and the Execution of a property" }
func (*compareCmd) Usage() string {
	return `leilao compare [-d <date>] <property>

  Displays both scenarios of a property side by side, with the difference of every
  line item the Execution actually sets.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the comparison (YYYY-MM-DD)")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(f.Arg(0)) {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderComparison(leilao.Compare(s.es, f.Arg(0), on)))
	return subcommands.ExitSuccess
}
