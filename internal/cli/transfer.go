package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Export writes the full dataset to a JSON file.
func (a *App) Export(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Export file path", os.Stdout)
	if err != nil {
		return err
	}

	doc, err := a.transfer.Export(ctx)
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn(fmt.Sprintf("Exported %d users and %d lessons to %s.", len(doc.Users), len(doc.Lessons), path))
	return nil
}

// Import reads a JSON file and replaces the matching collections.
func (a *App) Import(ctx context.Context) error {
	path, err := GetSimpleText(a.reader, "Import file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}

	result, err := a.transfer.Import(ctx, data)
	if err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn(fmt.Sprintf("Import finished: users replaced=%v, lessons replaced=%v.", result.UsersReplaced, result.LessonsReplaced))
	return nil
}

// Reset wipes all stored data back to the seed dataset after an explicit
// confirmation. The current session is closed.
func (a *App) Reset(ctx context.Context) error {
	confirm, err := GetSimpleText(a.reader, "This erases all data and restores the defaults. Type RESET to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "RESET" {
		printlnFn("Reset cancelled.")
		return nil
	}

	if err := a.transfer.Reset(ctx); err != nil {
		printlnFn(fmt.Sprintf("Error: %v", err))
		return err
	}
	printlnFn("Factory reset complete. You have been logged out.")
	return nil
}
