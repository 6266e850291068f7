package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
	"github.com/Beviryon/BeCandidature-sub000/internal/extract"
	"github.com/Beviryon/BeCandidature-sub000/internal/fetch"
)

var (
	extractURL     string
	extractFile    string
	extractHint    string
	extractBrowser bool
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a candidature draft from text or a job posting URL",
	Long: `Extract a candidature draft and print it as JSON.
Use --url for a job posting link, or --file for a pasted email body
("-" reads from stdin).`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Job posting URL")
	extractCmd.Flags().StringVar(&extractFile, "file", "", "Text file to extract from, '-' for stdin")
	extractCmd.Flags().StringVar(&extractHint, "hint", "", "Page title hint for URL extraction")
	extractCmd.Flags().BoolVar(&extractBrowser, "browser", false, "Allow a headless-browser fallback for JS-rendered pages")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	if (extractURL == "") == (extractFile == "") {
		return fmt.Errorf("exactly one of --url or --file is required")
	}

	var draft candidature.Draft
	if extractURL != "" {
		cache, err := fetch.NewCache(fetch.DefaultCacheTTL)
		if err != nil {
			return err
		}
		extractor := extract.NewURLExtractor(fetch.NewProxy(nil, nil, cache), extractBrowser)
		draft, err = extractor.FromURL(cmd.Context(), extractURL, extractHint)
		if err != nil {
			return err
		}
	} else {
		text, err := readInput(extractFile)
		if err != nil {
			return err
		}
		draft = extract.FromText(text)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(draft)
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
