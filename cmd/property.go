package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/date"
	"github.com/etnz/leilao/renderer"
	"github.com/google/subcommands"
)

// scenarioValue is a scenario flag, Projetado by default.
type scenarioValue struct{ leilao.Scenario }

func (v *scenarioValue) Set(s string) (err error) {
	v.Scenario, err = leilao.ParseScenario(s)
	return err
}

// --- Init Command ---

type initCmd struct {
	seed  bool
	force bool
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create the entries file" }
func (*initCmd) Usage() string {
	return `leilao init [-seed] [-force]

  Creates an empty entries file, or the demonstration portfolio with -seed.
  An existing file is never overwritten unless -force is given.
`
}

func (c *initCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.seed, "seed", false, "Fill the file with the demonstration portfolio")
	f.BoolVar(&c.force, "force", false, "Overwrite an existing file")
}

func (c *initCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := openOrFail()
	if s == nil {
		return status
	}
	if len(s.es) > 0 && !c.force {
		fmt.Fprintf(os.Stderr, "Error: %q already holds %d entries, use -force to overwrite it\n", s.File, len(s.es))
		return subcommands.ExitFailure
	}
	s.es = nil
	if c.seed {
		s.es = leilao.Seed()
		for _, p := range s.es.Properties() {
			s.recompute(p, leilao.Projected)
		}
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Add Command ---

type addCmd struct {
	name string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new property" }
func (*addCmd) Usage() string {
	return `leilao add [-name <name>]

  Adds a property with an empty down payment in the Projection, bought today and sold
  a year later. Without -name it is called "Novo Imóvel", numbered when already taken.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Name of the new property")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := openOrFail()
	if s == nil {
		return status
	}
	es, name := s.es.AddProperty(date.Today())
	if c.name != "" {
		var err error
		if es, err = es.RenameProperty(name, c.name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		name = c.name
	}
	s.es = es
	fmt.Fprintln(out, name)
	return s.commit(name, leilao.Projected)
}

// --- Rename Command ---

type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a property" }
func (*renameCmd) Usage() string {
	return `leilao rename <property> <new name>

  Renames every entry of a property, in both scenarios.
`
}
func (*renameCmd) SetFlags(f *flag.FlagSet) {}

func (c *renameCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	es, err := s.es.RenameProperty(f.Arg(0), f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, leilao.ErrPropertyExists) || errors.Is(err, leilao.ErrUnknownProperty) {
			return subcommands.ExitFailure
		}
		return subcommands.ExitUsageError
	}
	s.es = es
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Duplicate Command ---

type duplicateCmd struct{}

func (*duplicateCmd) Name() string     { return "duplicate" }
func (*duplicateCmd) Synopsis() string { return "copy a property under a new name" }
func (*duplicateCmd) Usage() string {
	return `leilao duplicate <property>

  Copies every entry of a property as "<property> (Cópia)" and prints the new name.
`
}
func (*duplicateCmd) SetFlags(f *flag.FlagSet) {}

func (c *duplicateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	es, name, err := s.es.DuplicateProperty(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s.es = es
	fmt.Fprintln(out, name)
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Delete Command ---

type deleteCmd struct {
	entry string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a property or a single entry" }
func (*deleteCmd) Usage() string {
	return `leilao delete <property>
leilao delete -entry <id>

  Deletes every entry of a property, or a single entry by ID.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.entry, "entry", "", "ID of a single entry to delete")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.entry == "") == (f.NArg() == 0) || f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	before := len(s.es)
	if c.entry != "" {
		s.es = s.es.Delete(c.entry)
	} else {
		if !s.requireProperty(f.Arg(0)) {
			return subcommands.ExitFailure
		}
		s.es = s.es.DeleteProperty(f.Arg(0))
	}
	if len(s.es) == before {
		fmt.Fprintf(os.Stderr, "Error: no entry %q\n", c.entry)
		return subcommands.ExitFailure
	}
	s.log.Info().Int("deleted", before-len(s.es)).Msg("entries deleted")
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Status Command ---

type statusCmd struct{}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "mark a property in progress or finished" }
func (*statusCmd) Usage() string {
	return `leilao status <property> <em_andamento|finalizado>
`
}
func (*statusCmd) SetFlags(f *flag.FlagSet) {}

func (c *statusCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	st, err := leilao.ParseStatus(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !s.requireProperty(f.Arg(0)) {
		return subcommands.ExitFailure
	}
	s.es = s.es.SetStatus(f.Arg(0), st)
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- Info Command ---

type infoCmd struct {
	scenario scenarioValue

	state, city  string
	purchaseType string
	purchaseDate string
	saleDate     string
	sold         string
	shares       int
}

func (*infoCmd) Name() string     { return "info" }
func (*infoCmd) Synopsis() string { return "list properties or edit a property metadata" }
func (*infoCmd) Usage() string {
	return `leilao info
leilao info [-s <scenario>] [-state <uf>] [-city <city>] [-purchase <type>] [-bought <date>] [-sale <date>] [-sold <sim|não>] [-shares <n>] <property>

  Without arguments, lists the properties. Otherwise edits the metadata of a property,
  applied to all its entries. Changing the purchase date moves the sale date a year
  later, unless -sale is given too. In the Execution, the time to sale follows the dates.
`
}

func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.scenario, "s", "Scenario (Projetado, Executado)")
	f.StringVar(&c.state, "state", "", "State (UF)")
	f.StringVar(&c.city, "city", "", "City")
	f.StringVar(&c.purchaseType, "purchase", "", "Purchase type (cash, financed)")
	f.StringVar(&c.purchaseDate, "bought", "", "Purchase date (YYYY-MM-DD)")
	f.StringVar(&c.saleDate, "sale", "", "Sale date (YYYY-MM-DD)")
	f.StringVar(&c.sold, "sold", "", "Sold flag (sim, não)")
	f.IntVar(&c.shares, "shares", 0, "Number of co-investors")
}

func (c *infoCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, status := openOrFail()
	if s == nil {
		return status
	}
	if f.NArg() == 0 {
		printMarkdown(renderer.RenderProperties(s.es))
		return subcommands.ExitSuccess
	}
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	property := f.Arg(0)
	if !s.requireProperty(property) {
		return subcommands.ExitFailure
	}

	edit, err := c.edit(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	s.es = s.es.UpdateInfo(property, c.scenario.Scenario, edit)
	return s.commit(property, c.scenario.Scenario)
}

// edit returns the metadata edit of the flags actually set.
func (c *infoCmd) edit(f *flag.FlagSet) (func(*leilao.PropertyInfo), error) {
	var edits []func(*leilao.PropertyInfo)
	var err error
	f.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "state":
			edits = append(edits, func(p *leilao.PropertyInfo) { p.State = c.state })
		case "city":
			edits = append(edits, func(p *leilao.PropertyInfo) { p.City = c.city })
		case "purchase":
			var t leilao.PurchaseType
			if t, err = leilao.ParsePurchaseType(c.purchaseType); err == nil {
				edits = append(edits, func(p *leilao.PropertyInfo) { p.PurchaseType = t })
			}
		case "bought":
			var d date.Date
			if d, err = date.Parse(c.purchaseDate); err == nil {
				edits = append(edits, func(p *leilao.PropertyInfo) { p.PurchaseDate = d })
			}
		case "sale":
			var d date.Date
			if d, err = date.Parse(c.saleDate); err == nil {
				edits = append(edits, func(p *leilao.PropertyInfo) { p.SaleDate = d })
			}
		case "sold":
			var sold bool
			if sold, err = parseSold(c.sold); err == nil {
				edits = append(edits, func(p *leilao.PropertyInfo) { p.Sold = sold })
			}
		case "shares":
			edits = append(edits, func(p *leilao.PropertyInfo) { p.ShareCount = c.shares })
		}
	})
	return func(p *leilao.PropertyInfo) {
		for _, e := range edits {
			e(p)
		}
	}, err
}
