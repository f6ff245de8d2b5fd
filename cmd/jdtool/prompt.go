package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-composer/internal/compose"
	"resume-composer/internal/profiles"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the compose prompt for a profile snapshot and a job description",
	Long:  "Renders the same system message and prompt the compose endpoint sends to the model. The profile is a snapshot JSON file; the job description may be PDF, DOCX or plain text.",
	RunE:  runPrompt,
}

var (
	promptProfileFile string
	promptJDFile      string
	promptShowSystem  bool
)

func init() {
	promptCmd.Flags().StringVarP(&promptProfileFile, "profile", "p", "", "Path to profile snapshot JSON (required)")
	promptCmd.Flags().StringVarP(&promptJDFile, "jd", "j", "", "Path to job description file (required)")
	promptCmd.Flags().BoolVar(&promptShowSystem, "system", false, "Also print the system message")

	if err := promptCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := promptCmd.MarkFlagRequired("jd"); err != nil {
		panic(fmt.Sprintf("failed to mark jd flag as required: %v", err))
	}

	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(promptProfileFile)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}
	var snapshot profiles.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal profile JSON: %w", err)
	}

	jd, err := readJobDescription(cmd, promptJDFile, true)
	if err != nil {
		return err
	}

	prompt, err := compose.BuildPrompt(snapshot, jd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if promptShowSystem {
		if _, err := fmt.Fprintf(out, "%s\n\n", compose.SystemMessage); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(out, prompt)
	return err
}
