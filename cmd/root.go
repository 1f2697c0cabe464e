package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags shared by all subcommands
	logLevel string // Log verbosity level

	// CLI flags for the evaluate subcommand
	datasetPath     string  // CSV file with logged timestep rows
	evalPolicyPath  string  // CSV matrix for the evaluation policy
	behavPolicyPath string  // CSV matrix for the behavior policy
	clipThreshold   float64 // HCOPE clipping threshold c
	delta           float64 // Confidence parameter for the lower bounds
	nPost           int     // Future sample size for the HCOPE prediction (0 = skip)
	twoPass         bool    // Use the O(n^2) reference HCOPE algorithm
	rawScale        bool    // Report bounds on the working scale instead of return units

	// CLI flags for the repair subcommand
	repairPolicyPath  string // CSV matrix for the policy to repair
	defaultPolicyPath string // CSV matrix for the fallback policy
	outputPath        string // Where to write the repaired policy CSV
	actionSpacePath   string // Optional YAML overriding the built-in action space
	greedyRepair      bool   // Put all repaired mass on the default policy's argmax
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "vent-ope",
	Short: "Offline off-policy evaluation for discretized ventilation policies",
}

// setUpLogging configures logrus from the --log-level flag.
func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(repairCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
