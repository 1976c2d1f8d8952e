package cmd

import (
	"fmt"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/spf13/cobra"
)

// exportCmd writes a YAML database to SQLite.
var exportCmd = &cobra.Command{
	Use:   "export [database_file] [sqlite_file]",
	Short: "Export a YAML dialogue database to SQLite",
	Long: `Export a YAML dialogue database to a SQLite file.

Every export is recorded under a new export id, so one SQLite file can
hold several snapshots. With --seal, links inside a conversation take
their destination entry's condition priority first.

Example:
  dialoguetools export database.yaml database.db
  dialoguetools export --seal database.yaml database.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		if err := setVerbose(cmd); err != nil {
			return err
		}
		seal, _ := cmd.Flags().GetBool("seal")

		fmt.Printf("Processing database file: %s\n", inputFile)
		fmt.Printf("SQLite file: %s\n", outputFile)

		db, err := database.LoadYAMLFile(inputFile)
		if err != nil {
			return err
		}
		if seal {
			db.SealLinkPriorities()
			common.LogInfo(common.InfoLinkPrioritiesSealed, len(db.Conversations))
		}

		summary, err := database.ExportSQLiteFile(db, outputFile)
		if err != nil {
			return err
		}

		fmt.Println("Database exported successfully!")
		fmt.Printf("- Export id: %s\n", summary.ExportID)
		fmt.Printf("- Assets: %d, conversations: %d, entries: %d, links: %d\n",
			summary.Assets, summary.Conversations, summary.Entries, summary.Links)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Bool("seal", false, "Set in-conversation link priorities from destination entries")
	exportCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
}
