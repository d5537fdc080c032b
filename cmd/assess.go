package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/shell-assess/internal/model"
	"github.com/sells-group/shell-assess/pkg/salesforce"
)

var assessSkipAI bool

var assessCmd = &cobra.Command{
	Use:   "assess <account-id>",
	Short: "Assess a single account against its shell",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		id := args[0]

		if !salesforce.IsValidAccountID(id) {
			return eris.Errorf("%q is not a valid Account ID", id)
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		if env.Source == nil {
			return eris.New("salesforce is not configured")
		}

		pairs, err := env.Source.Pairs(ctx, []string{id})
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			return eris.Errorf("account not found: %s", id)
		}

		a := model.Assessment{
			Account: pairs[0].Account,
			Parent:  pairs[0].Parent,
			Flags:   env.Engine.Evaluate(pairs[0].Account, pairs[0].Parent),
		}
		if env.Scorer != nil && !assessSkipAI {
			ai := env.Scorer.Score(ctx, a)
			a.AI = &ai
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(a), "encode assessment")
	},
}

func init() {
	assessCmd.Flags().BoolVar(&assessSkipAI, "skip-ai", false, "skip the AI confidence step")
	rootCmd.AddCommand(assessCmd)
}
