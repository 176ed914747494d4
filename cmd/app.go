// Package cmd implements the cpfr CLI application.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cpfolio"
	"github.com/etnz/cpfolio/date"
	"github.com/etnz/cpfolio/yahoo"
	"github.com/google/subcommands"
)

// Commands lists every subcommand in registration order. The main package
// registers them on a commander and hands over execution.
var Commands = []subcommands.Command{
	&reportCmd{},
	&breakevenCmd{},
	&feesCmd{},
	&signalsCmd{},
	&riskCmd{},
	&watchCmd{},
	&pushCmd{},
	&publishCmd{},
	&assistCmd{},
}

// defaultConfigFile is where every command looks for the portfolio unless -c
// points elsewhere. Missing file is fine: the defaults carry the full fee
// and CPF schedules.
const defaultConfigFile = "cpfolio.toml"

// loadConfig reads the configuration for one command run.
func loadConfig(path string) (*cpfolio.Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	return cpfolio.LoadConfig(path)
}

// market returns the production market-data source: the Yahoo chart API
// behind the daily disk cache.
func market() *yahoo.Client {
	return yahoo.NewClient(cpfolio.DailyClient())
}

// parseDate resolves an optional -d flag value, defaulting to today.
func parseDate(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// printMarkdown renders a markdown document on the terminal, falling back to
// the raw text when the terminal renderer cannot be built.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "dark")
	if err != nil {
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}

// fail prints a command error the way every subcommand reports them.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
