package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/StWron/customnode4portfolio/internal/config"
)

var (
	version string
	commit  string
	date    string
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pipectl",
	Short: "Pipectl - Asset pipeline inspection and setup",
	Long: `Pipectl manages the data pipeline shared by the editor nodes: the
channel bus the sender publishes to, the archive the master controller
writes, and the category folders the settings nodes scan.

Use it to scaffold a project's category folders, inspect archived runs,
read the latest record on a channel, and preview the parameter schema a
settings node would synthesize.`,
	Version: version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing; detailed errors are
	// printed with color formatting by the printer package.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to pipeline.yml (defaults to ./pipeline.yml when present)")
}

// loadConfig resolves the effective configuration: the --config path when
// given, ./pipeline.yml when it exists, built-in defaults otherwise.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	if _, err := os.Stat(config.DefaultFileName); err == nil {
		return config.Load(config.DefaultFileName)
	}
	return config.Default(), nil
}
