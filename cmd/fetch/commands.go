package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"stockinsight/internal/analysis"
	"stockinsight/internal/catalog"
	"stockinsight/internal/config"
	"stockinsight/internal/glossary"
	"stockinsight/internal/httpx"
	"stockinsight/internal/logger"
	"stockinsight/internal/quote"
	"stockinsight/internal/quote/yahoo"
	"stockinsight/internal/sources"
)

// app carries what the subcommands share once flags are parsed. The
// constructors are fields so tests can swap the upstream.
type app struct {
	cfg config.Config
	log zerolog.Logger

	newSource func(config.Quotes, *httpx.Client) (quote.Source, error)
	newYahoo  func(config.Quotes, *httpx.Client) (*yahoo.Client, error)
}

func newApp() *app {
	return &app{newSource: sources.New, newYahoo: sources.YahooClient}
}

func (a *app) httpClient() *httpx.Client {
	return httpx.New(time.Duration(a.cfg.Quotes.TimeoutSec) * time.Second)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "fetch",
		Short:         "Look up stock fundamentals from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if s, _ := cmd.Flags().GetString("source"); s != "" {
				cfg.Quotes.Source = s
			}
			if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
				cfg.Log.Level = lvl
			}
			a.cfg = cfg
			a.log = logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, Out: cmd.ErrOrStderr()})
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "config file path (default: ./config.json or ./config.yaml)")
	root.PersistentFlags().String("source", "", "quote source override (yahoo, financego)")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(quoteCmd(a), explainCmd(), tickersCmd(), rawCmd(a))
	return root
}

type quoteResult struct {
	Symbol   string              `json:"symbol"`
	Data     *quote.Fundamentals `json:"data,omitempty"`
	Error    string              `json:"error,omitempty"`
	Analysis []string            `json:"analysis"`
}

func quoteCmd(a *app) *cobra.Command {
	var (
		all         bool
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "quote [SYMBOL...]",
		Short: "Fetch and analyze one or more symbols",
		Args: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("requires at least one symbol or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.newSource(a.cfg.Quotes, a.httpClient())
			if err != nil {
				return err
			}
			fetcher := quote.NewFetcher(src, a.log)

			symbols := args
			if all {
				symbols = catalog.Symbols()
			}
			results := make([]quoteResult, len(symbols))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(concurrency, 1))
			for i, sym := range symbols {
				g.Go(func() error {
					q := fetcher.Fetch(ctx, strings.TrimSpace(sym))
					results[i] = quoteResult{Symbol: q.Symbol, Data: q.Data, Error: q.Error, Analysis: analysis.Analyze(q)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(results)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "fetch every catalog symbol")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 4, "parallel lookups")
	return cmd
}

func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain METRIC",
		Short: "Print the glossary entry for a metric",
		Long:  "Print the glossary entry for a metric. Known metrics: " + strings.Join(glossary.Keys(), ", "),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), glossary.Explain(args[0]))
			return err
		},
	}
}

func tickersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List the ticker catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(catalog.Symbols(), "\n"))
			return err
		},
	}
}

func rawCmd(a *app) *cobra.Command {
	var modules []string
	cmd := &cobra.Command{
		Use:   "raw SYMBOL",
		Short: "Dump the raw Yahoo quoteSummary response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newYahoo(a.cfg.Quotes, a.httpClient())
			if err != nil {
				return err
			}
			body, err := client.RawQuoteSummary(cmd.Context(), args[0], modules)
			if err != nil {
				return fmt.Errorf("raw %s: %w", args[0], err)
			}
			_, err = cmd.OutOrStdout().Write(append(body, '\n'))
			return err
		},
	}
	cmd.Flags().StringSliceVar(&modules, "modules", yahoo.DefaultModules, "quoteSummary modules")
	return cmd
}
