package cmd

import (
	"fmt"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/config"
	"github.com/hansbonini/dialoguetools/pkg/converter"
	"github.com/hansbonini/dialoguetools/pkg/database"
	"github.com/hansbonini/dialoguetools/pkg/project"
	"github.com/spf13/cobra"
)

// convertCmd converts a project file into a dialogue database.
var convertCmd = &cobra.Command{
	Use:   "convert [project_file] [output_file]",
	Short: "Convert a project into a dialogue database",
	Long: `Convert a narrative project (YAML or JSON) into a dialogue database.

This command will:
- Convert entities to actors and items, locations and variables
- Turn every dialogue into a conversation and walk the hierarchy
- Link entries from connections and jumps, then prune and sort links
- Write the database as YAML, or as SQLite when the output ends in
  .db, .sqlite or .sqlite3 (override with --format)

Example:
  dialoguetools convert project.yaml database.yaml
  dialoguetools convert -v --prefs prefs.yaml project.yaml database.db`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		if err := setVerbose(cmd); err != nil {
			return err
		}

		prefsFile, _ := cmd.Flags().GetString("prefs")
		if prefsFile == "" {
			prefsFile = env.PrefsFile
		}
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = env.Format
		}
		if format == "" {
			format = config.FormatYAML
			if common.IsSQLitePath(outputFile) {
				format = config.FormatSQLite
			}
		}

		prefs := converter.DefaultPrefs()
		if prefsFile != "" {
			loaded, err := converter.LoadPrefs(prefsFile)
			if err != nil {
				return err
			}
			prefs = loaded
		}

		fmt.Printf("Processing project file: %s\n", inputFile)
		fmt.Printf("Output file: %s (%s)\n", outputFile, format)

		p, err := project.Load(inputFile)
		if err != nil {
			return err
		}
		common.LogInfo(common.InfoProjectLoaded, p.Attributes.DisplayName, len(p.Dialogues), len(p.Connections))

		c := converter.NewConverter(prefs, converter.WithProgress(func(stage string, fraction float64) {
			fmt.Printf("[%3.0f%%] %s\n", fraction*100, stage)
		}))
		db, err := c.Convert(p)
		if err != nil {
			return fmt.Errorf("failed to convert project: %w", err)
		}

		switch format {
		case config.FormatSQLite:
			summary, err := database.ExportSQLiteFile(db, outputFile)
			if err != nil {
				return err
			}
			fmt.Printf("- Export %s: %d conversations, %d entries, %d links\n",
				summary.ExportID, summary.Conversations, summary.Entries, summary.Links)
		case config.FormatYAML:
			if err := database.ExportYAMLFile(db, outputFile); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown output format %q", format)
		}

		fmt.Println("Project converted successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("prefs", "p", "", "Converter prefs file (YAML)")
	convertCmd.Flags().StringP("format", "f", "", "Output format: yaml or sqlite")
	convertCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output with conversion details")
}
