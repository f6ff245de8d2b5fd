package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-composer/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Print the text extracted from a PDF or DOCX job description",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := readJobDescription(cmd, args[0], false)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no text could be extracted from %s", filepath.Base(args[0]))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// readJobDescription returns the text of path. With allowPlain set, files that
// are neither PDF nor DOCX are read as plain text.
func readJobDescription(cmd *cobra.Command, path string, allowPlain bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	kind, err := extract.KindFromFileName(path)
	if err != nil {
		if allowPlain {
			return string(data), nil
		}
		return "", fmt.Errorf("%s: %w (expected .pdf or .docx)", filepath.Base(path), err)
	}
	text, err := extract.Extract(cmd.Context(), data, kind)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", filepath.Base(path), err)
	}
	return text, nil
}
