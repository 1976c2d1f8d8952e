// Package cmd provides the command-line interface of DialogueTools.
// DialogueTools converts authored narrative projects into dialogue
// databases and exports them as YAML or SQLite.
package cmd

import (
	"os"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"github.com/hansbonini/dialoguetools/pkg/config"
	"github.com/spf13/cobra"
)

// env holds the defaults read from the environment before any command runs.
var env = &config.Config{}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dialoguetools",
	Short: "Convert narrative projects into dialogue databases",
	Long: `DialogueTools - Utilities for turning authored narrative projects
(dialogues, flow fragments, conditions, instructions and jumps) into a
dialogue database of conversations, entries and prioritized links.

Currently supports:
  - Converting a project to a YAML or SQLite dialogue database
  - Translating condition and script expressions to Lua
  - Exporting an existing YAML database to SQLite

Examples:
  dialoguetools convert project.yaml database.yaml
  dialoguetools convert --prefs prefs.yaml project.yaml database.db
  dialoguetools expr --condition --variables Game.hp "Game.hp > 3"
  dialoguetools export --seal database.yaml database.db

Environment:
  DIALOGUETOOLS_PREFS     default converter prefs file
  DIALOGUETOOLS_FORMAT    default output format (yaml or sqlite)
  DIALOGUETOOLS_VERBOSE   enable debug output (true, 1 or yes)

Use 'dialoguetools [command] --help' for more information about a command.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		env = loaded
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setVerbose enables debug output from the -v flag or the environment.
func setVerbose(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return common.FormatError("error getting verbose flag", err)
	}
	common.SetVerboseMode(verbose || env.Verbose)
	return nil
}
