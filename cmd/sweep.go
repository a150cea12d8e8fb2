package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/amortization"
	"github.com/etnz/leilao/date"
	"github.com/etnz/leilao/renderer"
	"github.com/etnz/leilao/viability"
	"github.com/google/subcommands"
)

type sweepCmd struct {
	property string
	scenario scenarioValue

	rows      int
	bid       string
	increment string
	sale      string
	months    int

	broker, auctioneer, itbi string
	registry, deed           string
	renovation, vacancy      string
	condo, propertyTax       string
	capitalGains             string

	financed bool
	down     string
	rate     string
	term     int
	system   string
}

func (*sweepCmd) Name() string     { return "sweep" }
func (*sweepCmd) Synopsis() string { return "simulate a range of auction bids" }
func (*sweepCmd) Usage() string {
	return `leilao sweep [-property <name> [-s <scenario>]] [-bid <amount>] [-sale <amount>] [flags]

  Simulates the purchase at a bid, then at the bids above it, one increment apart,
  and displays profit, capital invested and return on investment of each.

  Inputs start from the defaults of a new simulation, or from a property's scenario
  with -property. Any flag given replaces the corresponding input.

  Example: leilao sweep -bid 100000 -sale 250000 -renovation 15000
`
}

func (c *sweepCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.property, "property", "", "Property to start the simulation from")
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado) of the property")

	f.IntVar(&c.rows, "rows", viability.DefaultRows, "Number of bids to simulate")
	f.StringVar(&c.bid, "bid", "", "First bid")
	f.StringVar(&c.increment, "increment", "", "Bid increment between rows")
	f.StringVar(&c.sale, "sale", "", "Sale value, registry and deed default to 1% of it")
	f.IntVar(&c.months, "months", 0, "Months from purchase to sale")

	f.StringVar(&c.broker, "broker", "", "Broker commission, in percent of the sale")
	f.StringVar(&c.auctioneer, "auctioneer", "", "Auctioneer commission, in percent of the bid")
	f.StringVar(&c.itbi, "itbi", "", "ITBI, in percent of the bid")
	f.StringVar(&c.registry, "registry", "", "Registry fee")
	f.StringVar(&c.deed, "deed", "", "Deed fee")
	f.StringVar(&c.renovation, "renovation", "", "Renovation cost")
	f.StringVar(&c.vacancy, "vacancy", "", "Vacancy cost")
	f.StringVar(&c.condo, "condo", "", "Monthly condominium fee")
	f.StringVar(&c.propertyTax, "iptu", "", "Annual property tax (IPTU)")
	f.StringVar(&c.capitalGains, "cgt", "", "Capital gains tax, in percent of the gain")

	f.BoolVar(&c.financed, "financed", false, "Simulate a financed purchase")
	f.StringVar(&c.down, "down", "", "Down payment, in percent of the bid")
	f.StringVar(&c.rate, "rate", "", "Annual interest rate, in percent")
	f.IntVar(&c.term, "term", 0, "Loan term, in months")
	f.StringVar(&c.system, "system", "", "Amortization system (SAC, Price)")
}

// inputs applies the flags actually set on top of base.
//
// Percentages are applied before the bid, and the bid before the amounts it couples.
func (c *sweepCmd) inputs(f *flag.FlagSet, base viability.Inputs) (viability.Inputs, error) {
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	in := base
	var err error
	amount := func(name, v string, apply func(leilao.Money)) {
		if err != nil || !set[name] {
			return
		}
		var m leilao.Money
		if m, err = parseAmount(v); err == nil {
			apply(m)
		}
	}
	percent := func(name, v string, apply func(leilao.Percent)) {
		if err != nil || !set[name] {
			return
		}
		var p leilao.Percent
		if p, err = parsePercent(v); err == nil {
			apply(p)
		}
	}

	amount("sale", c.sale, func(m leilao.Money) { in = in.WithSaleValue(m) })
	percent("broker", c.broker, func(p leilao.Percent) { in.BrokerPct = p })
	percent("auctioneer", c.auctioneer, func(p leilao.Percent) { in = in.WithAuctioneerPct(p) })
	percent("itbi", c.itbi, func(p leilao.Percent) { in = in.WithITBIPct(p) })
	amount("bid", c.bid, func(m leilao.Money) { in = in.WithBid(m) })
	amount("increment", c.increment, func(m leilao.Money) { in.Increment = m })
	amount("registry", c.registry, func(m leilao.Money) { in.Registry = m })
	amount("deed", c.deed, func(m leilao.Money) { in.Deed = m })
	amount("renovation", c.renovation, func(m leilao.Money) { in.Renovation = m })
	amount("vacancy", c.vacancy, func(m leilao.Money) { in.Vacancy = m })
	amount("condo", c.condo, func(m leilao.Money) { in.MonthlyCondo = m })
	amount("iptu", c.propertyTax, func(m leilao.Money) { in.AnnualPropertyTax = m })
	percent("cgt", c.capitalGains, func(p leilao.Percent) { in.CapitalGainsPct = p })
	percent("down", c.down, func(p leilao.Percent) { in.DownPaymentPct = p })
	percent("rate", c.rate, func(p leilao.Percent) { in.Financing.AnnualRate = p })
	if err != nil {
		return in, err
	}

	if set["months"] {
		if c.months < 0 {
			return in, fmt.Errorf("invalid number of months %d", c.months)
		}
		in.MonthsToSale = c.months
	}
	if set["financed"] {
		in.PurchaseType = leilao.Cash
		if c.financed {
			in.PurchaseType = leilao.Financed
		}
	}
	if set["term"] {
		if c.term <= 0 {
			return in, fmt.Errorf("invalid term %d", c.term)
		}
		in.Financing.TermMonths = c.term
	}
	if set["system"] {
		if in.Financing.System, err = amortization.ParseSystem(c.system); err != nil {
			return in, err
		}
	}
	return in, nil
}

func (c *sweepCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	base := viability.DefaultInputs()
	if c.property != "" {
		s, status := openOrFail()
		if s == nil {
			return status
		}
		if !s.requireProperty(c.property) {
			return subcommands.ExitFailure
		}
		base = viability.FromProperty(s.es, c.property, c.scenario.Scenario, date.Today())
	}

	in, err := c.inputs(f, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	printMarkdown(renderer.RenderSweep(in, viability.Sweep(in, in.Increment, c.rows)))
	return subcommands.ExitSuccess
}
