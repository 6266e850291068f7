package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Beviryon/BeCandidature-sub000/internal/candidature"
	"github.com/Beviryon/BeCandidature-sub000/internal/db"
	"github.com/Beviryon/BeCandidature-sub000/internal/importer"
)

var (
	importUserEmail string
	importDryRun    bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import candidatures from a spreadsheet",
	Long: `Parse an xlsx export and create one candidature per non-empty row.
With --dry-run the parsed rows and their warnings are printed without
touching the database. Otherwise DATABASE_URL and --user are required.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importUserEmail, "user", "", "Email of the account owning the imported candidatures")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and print the rows without persisting")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = file.Close() }()

	results, err := importer.Parse(file, time.Now())
	if err != nil {
		return fmt.Errorf("failed to parse workbook: %w", err)
	}

	if importDryRun {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}

	if importUserEmail == "" {
		return fmt.Errorf("--user is required (or use --dry-run)")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx := cmd.Context()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}

	user, err := database.GetUserByEmail(ctx, importUserEmail)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no account with email %s", importUserEmail)
	}

	created, failed := 0, 0
	for _, result := range results {
		if err := persistDraft(ctx, database, user, result); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "row %d: %v\n", result.Row, err)
			continue
		}
		created++
		for _, warning := range result.Warnings {
			fmt.Fprintf(os.Stderr, "row %d: %s: %s\n", result.Row, warning.Field, warning.Message)
		}
	}

	fmt.Printf("Imported %d candidature(s), %d failed\n", created, failed)
	return nil
}

func persistDraft(ctx context.Context, database *db.DB, user *db.User, result importer.Result) error {
	record := &db.Candidature{
		UserID:          user.ID,
		Company:         result.Draft.Company,
		Title:           result.Draft.Title,
		ApplicationDate: db.NewDate(result.Draft.ApplicationDate),
		Status:          result.Draft.Status,
		ContractType:    result.Draft.ContractType,
		Contact:         result.Draft.Contact,
		Email:           result.Draft.Email,
		Link:            result.Draft.Link,
		Notes:           result.Draft.Notes,
	}
	if followUp := candidature.ComputeFollowUp(result.Draft.ApplicationDate, result.Draft.Status); followUp != nil {
		d := db.NewDate(*followUp)
		record.FollowUpDate = &d
	}
	_, err := database.CreateCandidature(ctx, record)
	return err
}
