package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// EnvRaw passes the -raw flag to extensions.
const EnvRaw = "LEILAO_RAW"

// RunExtension attempts to find and execute an external leilao-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
//
// The extension receives the configuration in its environment, global flags included.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "leilao-" + subcommand
	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = out
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(),
		"LEILAO_FILE="+cfg.File,
		"LEILAO_LOG_LEVEL="+cfg.LogLevel,
		"LEILAO_LOG_FORMAT="+cfg.LogFormat,
		EnvRaw+"="+strconv.FormatBool(*rawFlag),
	)
	logger := NewLogger(cfg)
	logger.Debug().Str("extension", lp).Strs("args", args).Msg("running extension")

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
