// Package cmd implements the CLI application to manage auction real estate investments.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"github.com/charmbracelet/glamour"
	"github.com/etnz/leilao"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&initCmd{}, "properties")
	c.Register(&addCmd{}, "properties")
	c.Register(&renameCmd{}, "properties")
	c.Register(&duplicateCmd{}, "properties")
	c.Register(&deleteCmd{}, "properties")
	c.Register(&statusCmd{}, "properties")
	c.Register(&infoCmd{}, "properties")
	c.Register(&importCmd{}, "properties")

	c.Register(&setCmd{}, "values")
	c.Register(&pctCmd{}, "values")
	c.Register(&financingCmd{}, "values")
	c.Register(&saleTimeCmd{}, "values")
	c.Register(&recomputeCmd{}, "values")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&compareCmd{}, "reports")
	c.Register(&dashboardCmd{}, "reports")
	c.Register(&sweepCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	fileFlag    = flag.String("file", "", "Path to the entries file (JSONL format), overrides LEILAO_FILE")
	verboseFlag = flag.Bool("v", false, "Print debug logs, overrides LEILAO_LOG_LEVEL")
	rawFlag     = flag.Bool("raw", false, "Print reports as raw markdown")
)

// out is where reports are printed.
var out io.Writer = os.Stdout

// Config is the configuration read from the environment.
type Config struct {
	File      string `env:"LEILAO_FILE"       envDefault:"leilao.jsonl"`
	LogLevel  string `env:"LEILAO_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LEILAO_LOG_FORMAT" envDefault:"console"`
}

// LoadConfig reads the configuration from the environment, global flags taking precedence.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	if *fileFlag != "" {
		cfg.File = *fileFlag
	}
	if *verboseFlag {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// session is the state of a command execution: its configuration and the entries it works on.
type session struct {
	Config
	log zerolog.Logger
	es  leilao.Entries
}

// open loads the entries file. A missing file is an empty store.
func open() (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	s := &session{Config: cfg, log: NewLogger(cfg)}

	f, err := os.Open(cfg.File)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn().Str("file", cfg.File).Msg("entries file does not exist, starting with an empty store")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open entries file %q: %w", cfg.File, err)
	}
	defer f.Close()

	if s.es, err = leilao.DecodeEntries(f); err != nil {
		return nil, fmt.Errorf("cannot read entries file %q: %w", cfg.File, err)
	}
	s.log.Debug().Str("file", cfg.File).Int("entries", len(s.es)).Msg("entries loaded")
	return s, nil
}

// save writes the entries file, replacing it only once fully written.
func (s *session) save() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.File), ".leilao-*.jsonl")
	if err != nil {
		return fmt.Errorf("cannot write entries file %q: %w", s.File, err)
	}
	defer os.Remove(tmp.Name())

	if err := leilao.EncodeEntries(tmp, s.es); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write entries file %q: %w", s.File, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write entries file %q: %w", s.File, err)
	}
	if err := os.Rename(tmp.Name(), s.File); err != nil {
		return fmt.Errorf("cannot write entries file %q: %w", s.File, err)
	}
	s.log.Info().Str("file", s.File).Int("entries", len(s.es)).Msg("entries saved")
	return nil
}

// recompute refreshes the derived fields of a property's scenario.
//
// A change in the Projection also refreshes the Execution when it has entries, since it
// inherits from it.
func (s *session) recompute(property string, scenario leilao.Scenario) {
	scenarios := []leilao.Scenario{scenario}
	if scenario == leilao.Projected && len(s.es.Scenario(property, leilao.Executed)) > 0 {
		scenarios = append(scenarios, leilao.Executed)
	}
	for _, sc := range scenarios {
		params := leilao.LoadParams(s.es, property, sc)
		writes := len(leilao.PendingWrites(s.es, property, sc, params))
		s.es = leilao.Recompute(s.es, property, sc, params)
		s.log.Debug().Str("property", property).Stringer("scenario", sc).Int("writes", writes).Msg("recomputed")
	}
}

// commit recomputes the touched property's scenario and saves the entries.
func (s *session) commit(property string, scenario leilao.Scenario) subcommands.ExitStatus {
	s.recompute(property, scenario)
	if err := s.save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown prints a report, rendered for the terminal unless -raw is set.
func printMarkdown(md string) {
	if *rawFlag {
		fmt.Fprint(out, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var rendered string
		if rendered, err = r.Render(md); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, md)
}

// openOrFail opens the session, or prints the error.
func openOrFail() (*session, subcommands.ExitStatus) {
	s, err := open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return s, subcommands.ExitSuccess
}

// requireProperty prints an error if the property is unknown.
func (s *session) requireProperty(name string) bool {
	if !s.es.Has(name) {
		fmt.Fprintf(os.Stderr, "Error: %v: %q\n", leilao.ErrUnknownProperty, name)
		return false
	}
	return true
}
