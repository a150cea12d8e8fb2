package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct {
	scenario   scenarioValue
	states     string
	properties string
	purchase   string
	sold       string
	categories string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the portfolio dashboard" }
func (*dashboardCmd) Usage() string {
	return `leilao dashboard [-s <scenario>] [-state <uf,...>] [-property <name,...>] [-purchase <type,...>] [-sold <sim|não,...>] [-category <category,...>]

  Displays the revenue, costs and profit of the portfolio, per property, per line item,
  per state and per month of sale. The Execution falls back on the Projection for
  every line item it does not set.

  Every filter takes a comma separated list, an empty filter selects everything.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
	f.StringVar(&c.states, "state", "", "States (UF) to include")
	f.StringVar(&c.properties, "property", "", "Properties to include")
	f.StringVar(&c.purchase, "purchase", "", "Purchase types to include (cash, financed)")
	f.StringVar(&c.sold, "sold", "", "Sold flags to include (sim, não)")
	f.StringVar(&c.categories, "category", "", "Categories to include (sale, acquisition, preparation, maintenance)")
}

// filter builds the dashboard filter of the flags.
func (c *dashboardCmd) filter() (leilao.Filter, error) {
	f := leilao.Filter{
		States:     parseList(c.states),
		Properties: parseList(c.properties),
	}
	var err error
	if f.PurchaseTypes, err = parseEach(c.purchase, leilao.ParsePurchaseType); err != nil {
		return f, err
	}
	if f.Sold, err = parseEach(c.sold, parseSold); err != nil {
		return f, err
	}
	if f.Categories, err = parseEach(c.categories, leilao.ParseCategory); err != nil {
		return f, err
	}
	return f, nil
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	printMarkdown(renderer.RenderDashboard(leilao.NewDashboard(s.es, c.scenario.Scenario, filter)))
	return subcommands.ExitSuccess
}
