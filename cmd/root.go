package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gobeam/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gobeam",
	Short: "Beam analysis with singularity functions",
	Long: `gobeam - Go Beam Analyzer

A CLI tool for the exact analysis of straight Euler-Bernoulli beams
using singularity (Macaulay bracket) functions.

This tool helps structural engineers perform:
  - Reaction solving for determinate and indeterminate beams
  - Shear, moment, slope and deflection curves in closed form
  - Maximum values and points of contraflexure
  - Influence lines for reactions, shear and moment
  - Composite beams joined by a fixed joint or a hinge

Loads may carry NSCP 2015 load case tags and be factored by any
basic load combination.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gobeam v%-48s║\n", version.Version)
		fmt.Println("  ║   Go Beam Analyzer                                        ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Exact reactions, shear, moment, slope and deflection")
		fmt.Println("    • Maximum values and contraflexure points")
		fmt.Println("    • Influence lines")
		fmt.Println("    • NSCP 2015 load combinations")
		fmt.Println("    • Terminal charts, images, XLSX and PDF reports")
		fmt.Println()
		fmt.Println("  Use 'gobeam --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ./gobeam.yaml, then $HOME/.gobeam.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log solver steps to stderr")

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("plot.samples", 201)
	viper.SetDefault("plot.format", "png")
	viper.SetDefault("output.dir", ".")
}

// initConfig reads .env, the config file and GOBEAM_ variables, then
// installs the default logger
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	viper.SetEnvPrefix("GOBEAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = defaultConfig()
	}
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(viper.GetString("log.level"))); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: log.level: %v\n", err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if cfgFile != "" {
		slog.Debug("config loaded", "file", cfgFile)
	}
}

// defaultConfig returns the first config file that exists, or ""
func defaultConfig() string {
	candidates := []string{"gobeam.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".gobeam.yaml"))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}
