package main

import (
	"fmt"
	"io"
	"log"

	"CryptoAnalyst/internal/app"
	"CryptoAnalyst/internal/collector"
	"CryptoAnalyst/internal/config"
	"CryptoAnalyst/internal/display"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "analyst",
		Short:         "Crypto Analyst - technical and news sentiment analysis for crypto assets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "configs/config.yaml", "Configuration file path")
	root.PersistentFlags().Bool("verbose", false, "Show log output")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Analyze a ticker, e.g. BTC-USD or ETH",
		Long: `Fetch a year of daily prices, compute trend, support/resistance, RSI and volume,
and score recent headlines. A bare ticker gets the -USD quote.
Without SYMBOL the ticker is prompted for.
Example: analyst analyze BTC`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			noNews, _ := cmd.Flags().GetBool("no-news")
			verbose, _ := cmd.Flags().GetBool("verbose")
			if !verbose {
				log.SetOutput(io.Discard)
			}
			raw := ""
			if len(args) == 1 {
				raw = args[0]
			} else {
				var err error
				if raw, err = askSymbol(); err != nil {
					return err
				}
			}
			return runAnalyze(cmd, cfgPath, raw, noNews)
		},
	}
	cmd.Flags().Bool("no-news", false, "Skip news and sentiment")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "analyst %s\n", version)
		},
	}
}

func runAnalyze(cmd *cobra.Command, cfgPath, raw string, noNews bool) error {
	symbol, err := collector.NormalizeSymbol(raw)
	if err != nil {
		return fmt.Errorf("%q is not a valid ticker symbol (e.g. BTC-USD, ETH)", raw)
	}
	symbol = collector.DisplaySymbol(symbol)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	a := app.New(cfg, app.Options{NoNews: noNews})
	defer a.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, display.Info(fmt.Sprintf("Analyzing %s...", symbol)))

	report, err := a.Service.Analyze(cmd.Context(), symbol)
	if err != nil {
		return fmt.Errorf("analyzing market data: %w", err)
	}
	display.Report(out, report)
	return nil
}

func errorLine(err error) string {
	return display.Error("Error: " + err.Error())
}
