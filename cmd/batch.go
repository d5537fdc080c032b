package main

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/shell-assess/internal/assess"
	"github.com/sells-group/shell-assess/internal/exporter"
	"github.com/sells-group/shell-assess/internal/fetcher"
	"github.com/sells-group/shell-assess/internal/model"
)

var (
	batchFile        string
	batchQuery       string
	batchOutput      string
	batchConcurrency int
	batchSkipAI      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Assess a batch of accounts from a file or SOQL query",
	Long:  "Reads accounts from a CSV/XLSX export or an Id-only SOQL query, computes relationship flags for each, persists the run, and optionally writes a report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if batchFile == "" && batchQuery == "" {
			return eris.New("either --file or --query is required")
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		pairs, source, err := loadPairs(cmd, env)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			return eris.New("no accounts to assess")
		}

		run, err := env.Store.CreateRun(ctx, source)
		if err != nil {
			return err
		}
		if err := env.Store.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
			return err
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrentAccounts
		}

		assessments, err := env.Engine.EvaluateBatch(ctx, pairs, concurrency)
		if err != nil {
			_ = env.Store.FailRun(ctx, run.ID, eris.ToString(err, false))
			return err
		}

		if env.Scorer != nil && !batchSkipAI {
			for i := range assessments {
				ai := env.Scorer.Score(ctx, assessments[i])
				assessments[i].AI = &ai
			}
		}

		if err := env.Store.CompleteRun(ctx, run.ID, assessments); err != nil {
			return err
		}
		zap.L().Info("batch complete",
			zap.String("run_id", run.ID),
			zap.Int("accounts", len(assessments)))

		if batchOutput != "" {
			return writeReport(batchOutput, assessments)
		}
		return nil
	},
}

// loadPairs resolves the account set from whichever input was given.
func loadPairs(cmd *cobra.Command, env *appEnv) ([]assess.Pair, string, error) {
	ctx := cmd.Context()

	if batchQuery != "" {
		if env.Source == nil {
			return nil, "", eris.New("--query requires salesforce to be configured")
		}
		pairs, err := env.Source.PairsFromQuery(ctx, batchQuery)
		return pairs, batchQuery, err
	}

	var accounts []model.Account
	var err error
	switch {
	case strings.HasSuffix(batchFile, ".xlsx"):
		accounts, err = fetcher.ReadAccountsXLSX(batchFile, fetcher.XLSXOptions{})
	default:
		f, openErr := os.Open(batchFile)
		if openErr != nil {
			return nil, "", eris.Wrap(openErr, "open accounts file")
		}
		defer f.Close() //nolint:errcheck
		accounts, err = fetcher.ReadAccountsCSV(f)
	}
	if err != nil {
		return nil, "", err
	}

	return fetcher.PairsFromAccounts(accounts), batchFile, nil
}

// writeReport picks the output format from the file extension.
func writeReport(path string, assessments []model.Assessment) error {
	if strings.HasSuffix(path, ".xlsx") {
		return exporter.ExportXLSX(path, assessments)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "create report file")
	}
	defer f.Close() //nolint:errcheck
	return exporter.ExportCSV(f, assessments)
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV or XLSX account export to assess")
	batchCmd.Flags().StringVar(&batchQuery, "query", "", "Id-only SOQL query selecting accounts")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "report path (.csv or .xlsx)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker count (default from config)")
	batchCmd.Flags().BoolVar(&batchSkipAI, "skip-ai", false, "skip the AI confidence step")
	rootCmd.AddCommand(batchCmd)
}
