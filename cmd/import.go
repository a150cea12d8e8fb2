package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/leilao"
	"github.com/etnz/leilao/backup"
	"github.com/google/subcommands"
)

// --- Import Command ---

type importCmd struct {
	merge bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a backup of the web dashboard" }
func (*importCmd) Usage() string {
	return `leilao import [-merge] <backup.json>

  Reads a JSON backup of the web dashboard, either the array of entries or the browser
  storage dump holding it, and replaces the entries file with it.
  With -merge, imported entries are added to the existing ones, replacing those with
  the same property, scenario and label.

  Every imported property is recomputed.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.merge, "merge", false, "Merge into the existing entries instead of replacing them")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Please provide the path to the backup file.")
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	r, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", path, err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	imported, err := backup.Import(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %s: %v\n", path, err)
		return subcommands.ExitFailure
	}

	s, status := openOrFail()
	if s == nil {
		return status
	}
	if !c.merge {
		s.es = nil
	}
	for _, e := range imported {
		s.es = s.es.Upsert(e)
	}
	s.log.Info().Str("backup", path).Int("entries", len(imported)).Bool("merge", c.merge).Msg("backup imported")

	for _, p := range imported.Properties() {
		s.recompute(p, leilao.Projected)
	}
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
