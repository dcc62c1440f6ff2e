package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/budgetbuddy/statement-engine/internal/api"
	"github.com/budgetbuddy/statement-engine/internal/engine"
	"github.com/budgetbuddy/statement-engine/internal/extractor"
	"github.com/budgetbuddy/statement-engine/internal/models"
	"github.com/budgetbuddy/statement-engine/internal/writer"
)

const version = "1.0.0"

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "statement-engine",
	})

	root := &cobra.Command{
		Use:           "statement-engine",
		Short:         "Convert financial statement files into structured transactions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if lvl, err := log.ParseLevel(viper.GetString("log-level")); err == nil {
				logger.SetLevel(lvl)
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Int("lookahead", 7, "multi-line reconstruction window in lines")
	pf.Int("before-amount-limit", 50, "max description chars before a trailing amount")
	pf.Int("trailing-window", 50, "max distance of a fuzzy amount from line end")
	pf.Int("attribution-window", 6, "lines scanned above a row for a cardholder name")
	pf.Int("max-transactions", 10000, "cap on transactions per statement")
	pf.Float64("min-confidence", 0.5, "drop candidates scored below this")

	viper.SetEnvPrefix("STATEMENT_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.BindPFlags(pf); err != nil {
		logger.Fatal("flag binding failed", "err", err)
	}

	root.AddCommand(newParseCmd(logger), newServeCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}

func engineOptions() engine.Options {
	return engine.Options{
		Lookahead:         viper.GetInt("lookahead"),
		BeforeAmountLimit: viper.GetInt("before-amount-limit"),
		TrailingWindow:    viper.GetInt("trailing-window"),
		AttributionWindow: viper.GetInt("attribution-window"),
		MaxTransactions:   viper.GetInt("max-transactions"),
		MinConfidence:     viper.GetFloat64("min-confidence"),
	}
}

func newParseCmd(logger *log.Logger) *cobra.Command {
	var (
		output      string
		metadata    bool
		accountType string
		holder      string
	)
	cmd := &cobra.Command{
		Use:   "parse <input> [input...]",
		Short: "Parse statement files and write transactions as CSV",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.New(engineOptions(), logger)
			for _, inputPath := range args {
				outPath := output
				if outPath == "" || len(args) > 1 {
					outPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + ".csv"
				}
				if err := processFile(eng, logger, inputPath, outPath, metadata, accountType, holder); err != nil {
					return fmt.Errorf("%s: %w", inputPath, err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (per-input default: <input>.csv)")
	cmd.Flags().BoolVar(&metadata, "metadata", true, "include statement metadata rows in CSV")
	cmd.Flags().StringVar(&accountType, "account-type", "", "account type hint: creditcard, checking, savings")
	cmd.Flags().StringVar(&holder, "account-holder", "", "account holder name hint for user attribution")
	return cmd
}

func newServeCmd(logger *log.Logger) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parsing engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine.New(engineOptions(), logger)
			app := api.NewApp(eng, logger)
			logger.Info("listening", "addr", addr)
			return app.Listen(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func processFile(eng *engine.Engine, logger *log.Logger, inputPath, outPath string, metadata bool, accountType, holder string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	logger.Info("processing", "file", inputPath)

	text, err := extractInput(inputPath)
	if err != nil {
		return err
	}

	var account *models.AccountContext
	if accountType != "" || holder != "" {
		account = &models.AccountContext{Type: accountType, HolderName: holder}
	}

	res, err := eng.Parse(engine.Document{
		Text:     text,
		Filename: filepath.Base(inputPath),
		Account:  account,
	})
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if len(res.Transactions) == 0 {
		logger.Warn("no transactions found", "file", inputPath)
	}

	w := &writer.CSVWriter{IncludeMetadata: metadata}
	if err := w.WriteToFile(outPath, res); err != nil {
		return fmt.Errorf("CSV write failed: %w", err)
	}

	logger.Info("done",
		"output", outPath,
		"transactions", len(res.Transactions),
		"rowErrors", len(res.RowErrors),
		"truncated", res.Truncated)
	return nil
}

func extractInput(inputPath string) (string, error) {
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		return extractor.ExtractTextCombined(inputPath)
	case ".xls":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", err
		}
		return extractor.ExtractXLS(data)
	case ".txt", ".text":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported file type %q: use .pdf, .xls or .txt", filepath.Ext(inputPath))
	}
}
