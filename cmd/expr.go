package cmd

import (
	"fmt"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/expr"
	"github.com/spf13/cobra"
)

// exprCmd translates one expression and prints the result.
var exprCmd = &cobra.Command{
	Use:   "expr [expression]",
	Short: "Translate a condition or script expression to Lua",
	Long: `Translate an authored expression to Lua as the converter would.

Known variables are rewritten to Variable["Set.name"]; pass them as a
comma-separated list with --variables.

Example:
  dialoguetools expr --condition --variables Game.hp "Game.hp > 3 && !done"
  dialoguetools expr --variables Game.gold "Game.gold += 5; talked++"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isCondition, _ := cmd.Flags().GetBool("condition")
		variables, _ := cmd.Flags().GetString("variables")

		translator := expr.NewTranslator(common.SplitList(variables, ","))
		fmt.Println(translator.Translate(args[0], isCondition))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exprCmd)

	exprCmd.Flags().BoolP("condition", "c", false, "Translate as a condition")
	exprCmd.Flags().String("variables", "", "Comma-separated full variable names (Set.name)")
}
