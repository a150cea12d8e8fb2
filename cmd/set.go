package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/amortization"
	"github.com/google/subcommands"
)

// --- Set Command ---

type setCmd struct {
	scenario scenarioValue
	category string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "set the value of a line item" }
func (*setCmd) Usage() string {
	return `leilao set [-s <scenario>] [-category <category>] <property> <label> <amount>

  Sets the amount of a line item, as a positive magnitude. The sign follows the label:
  "Venda" is an income, everything else a cost.
  The value is then a manual one, never rewritten by the recomputation, unless it is set
  again through a percentage.

  Labels other than the known ones are custom items of the given category
  (acquisition by default: sale, acquisition, preparation, maintenance).

  Example: leilao set guapo-casa1 Reforma 12.000,00
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
	f.StringVar(&c.category, "category", "acquisition", "Category of a custom label")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	property, text := f.Arg(0), f.Arg(1)
	cat, err := leilao.ParseCategory(c.category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	amount, err := parseAmount(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(property) {
		return subcommands.ExitFailure
	}
	l := leilao.ParseLabel(text, cat)
	s.es = leilao.SetValue(s.es, property, c.scenario.Scenario, l, amount, leilao.WriteOptions{})
	s.log.Debug().Str("property", property).Stringer("label", l).Stringer("amount", amount).Msg("value set")
	return s.commit(property, c.scenario.Scenario)
}

// --- Pct Command ---

type pctCmd struct {
	scenario scenarioValue
}

func (*pctCmd) Name() string     { return "pct" }
func (*pctCmd) Synopsis() string { return "set a rate of a property" }
func (*pctCmd) Usage() string {
	return `leilao pct [-s <scenario>] <property> <rate> <percentage>

  Sets one of the rates: itbi, broker, auctioneer, down-payment, capital-gains.
  The target line item is computed again from the rate and becomes automatic.

  Example: leilao pct guapo-casa1 broker 6
`
}

func (c *pctCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
}

func (c *pctCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	property := f.Arg(0)
	r, err := leilao.ParseRate(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	pct, err := parsePercent(f.Arg(2))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(property) {
		return subcommands.ExitFailure
	}
	if r == leilao.DownPaymentRate && s.es.Anchor(property, c.scenario.Scenario).PurchaseType != leilao.Financed {
		s.log.Warn().Str("property", property).Msg("property is not financed, the down payment is kept")
	}
	s.es = leilao.SetPercentage(s.es, property, c.scenario.Scenario, r, pct)
	return s.commit(property, c.scenario.Scenario)
}

// --- Financing Command ---

type financingCmd struct {
	scenario scenarioValue
	rate     string
	term     int
	system   string
}

func (*financingCmd) Name() string     { return "financing" }
func (*financingCmd) Synopsis() string { return "set the loan parameters of a property" }
func (*financingCmd) Usage() string {
	return `leilao financing [-s <scenario>] [-rate <annual %>] [-term <months>] [-system <SAC|Price>] <property>

  Changes the loan parameters of a financed property. Parameters left out keep their
  current value. Installment and outstanding balance are computed again.
`
}

func (c *financingCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
	f.StringVar(&c.rate, "rate", "", "Annual interest rate, in percent")
	f.IntVar(&c.term, "term", 0, "Loan term, in months")
	f.StringVar(&c.system, "system", "", "Amortization system (SAC, Price)")
}

func (c *financingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	property := f.Arg(0)

	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(property) {
		return subcommands.ExitFailure
	}

	fin := leilao.LoadParams(s.es, property, c.scenario.Scenario).Financing
	if c.rate != "" {
		rate, err := parsePercent(c.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		fin.AnnualRate = rate
	}
	if c.term < 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid term %d\n", c.term)
		return subcommands.ExitUsageError
	}
	if c.term > 0 {
		fin.TermMonths = c.term
	}
	if c.system != "" {
		sys, err := amortization.ParseSystem(c.system)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		fin.System = sys
	}
	if s.es.Anchor(property, c.scenario.Scenario).PurchaseType != leilao.Financed {
		s.log.Warn().Str("property", property).Msg("property is not financed, the loan parameters are kept for later")
	}
	s.es = leilao.SetFinancing(s.es, property, c.scenario.Scenario, fin)
	return s.commit(property, c.scenario.Scenario)
}

// --- Sale Time Command ---

type saleTimeCmd struct {
	scenario scenarioValue
}

func (*saleTimeCmd) Name() string     { return "sale-time" }
func (*saleTimeCmd) Synopsis() string { return "set the time to sale of a property" }
func (*saleTimeCmd) Usage() string {
	return `leilao sale-time [-s <scenario>] <property> <months>

  Sets the number of months between purchase and sale, used by the Execution summary.
  It defaults to the Execution scenario.
`
}

func (c *saleTimeCmd) SetFlags(f *flag.FlagSet) {
	c.scenario.Scenario = leilao.Executed
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
}

func (c *saleTimeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	property := f.Arg(0)
	months, err := strconv.ParseFloat(f.Arg(1), 64)
	if err != nil || months < 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid number of months %q\n", f.Arg(1))
		return subcommands.ExitUsageError
	}

	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(property) {
		return subcommands.ExitFailure
	}
	s.es = leilao.SetSaleDuration(s.es, property, c.scenario.Scenario, months)
	return s.commit(property, c.scenario.Scenario)
}

// --- Recompute Command ---

type recomputeCmd struct {
	scenario scenarioValue
	dryRun   bool
}

func (*recomputeCmd) Name() string     { return "recompute" }
func (*recomputeCmd) Synopsis() string { return "derive the automatic values again" }
func (*recomputeCmd) Usage() string {
	return `leilao recompute [-s <scenario>] [-n] [<property>]

  Derives the automatic values of a property's scenario from its inputs, or of every
  property in both scenarios without argument. Manual values are left untouched.

  With -n, lists the values that would change without saving.
`
}

func (c *recomputeCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado) of the given property")
	f.BoolVar(&c.dryRun, "n", false, "Print the pending changes only")
}

func (c *recomputeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}

	type target struct {
		property string
		scenario leilao.Scenario
	}
	var targets []target
	if f.NArg() == 1 {
		if !s.requireProperty(f.Arg(0)) {
			return subcommands.ExitFailure
		}
		targets = append(targets, target{f.Arg(0), c.scenario.Scenario})
	} else {
		for _, p := range s.es.Properties() {
			targets = append(targets, target{p, leilao.Projected})
			if len(s.es.Scenario(p, leilao.Executed)) > 0 {
				targets = append(targets, target{p, leilao.Executed})
			}
		}
	}

	for _, t := range targets {
		params := leilao.LoadParams(s.es, t.property, t.scenario)
		if c.dryRun {
			for _, w := range leilao.PendingWrites(s.es, t.property, t.scenario, params) {
				fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", t.property, t.scenario, w.Label, w.Value())
			}
			continue
		}
		s.es = leilao.RecomputeAll(s.es, t.property, t.scenario, params)
	}
	if c.dryRun {
		return subcommands.ExitSuccess
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
