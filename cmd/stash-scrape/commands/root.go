package commands

import (
	"context"
	"fmt"
	"os"

	"stash-scrape/lib/scrapers/stash"
	"stash-scrape/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	password   string
	scrapeType string
	noReload   bool
	isList     bool
	verifyTLS  bool
	httpDump   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "stash-scrape [flags] [urls]",
	Short: "stash-scrape asks a stash server to scrape metadata for urls through its graphql api.",
	Long: `stash-scrape asks a stash server to scrape metadata for urls through its
graphql api and renders each result.

urls may be given as a single argument (one per line), as a path to a
list file with --list, or omitted entirely for interactive prompting.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		run(cmd.Context(), args)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", stash.DefaultConfigPath(), "stash config path")
	rootCmd.Flags().StringVarP(&password, "password", "p", "", "stash password, if set. required in order to use graphql")
	rootCmd.Flags().StringVarP(&scrapeType, "type", "t", "scene", `type of scraped object ("scene" or "gallery")`)
	rootCmd.Flags().BoolVar(&noReload, "no-reload", false, "disable reloading the scrapers and clearing the scraper cache before scraping")
	rootCmd.Flags().BoolVarP(&isList, "list", "l", false, "load the urls list from the provided list file path")
	rootCmd.Flags().BoolVar(&verifyTLS, "verify-tls", false, "verify the server's tls certificate")
	rootCmd.Flags().StringVar(&httpDump, "http-dump", "", "directory to write request/response dumps to")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
