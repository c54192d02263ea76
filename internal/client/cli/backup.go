package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/zerotask/zerotask/internal/client/models"
)

// Export writes the full collection (ignoring any active filter) to a JSON
// file as an array of tasks.
func (a *App) Export(ctx context.Context, path string) error {
	tasks := a.tasks.List()
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Exported %d task(s) to %s", len(tasks), path))
	return nil
}

// Import replaces the whole collection with the contents of a JSON file
// after an explicit confirmation. The file must hold an array of tasks.
func (a *App) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		printlnFn("Error: not a valid task backup:", err.Error())
		return err
	}

	answer, err := getSimpleText(a.reader,
		fmt.Sprintf("Replace ALL current tasks with %d imported task(s)? Type 'yes' to confirm", len(tasks)),
		os.Stdout)
	if err != nil {
		return err
	}
	if answer != "yes" {
		printlnFn("Aborted.")
		return nil
	}

	if err := a.tasks.ImportAll(ctx, tasks); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Imported %d task(s).", len(tasks)))
	return nil
}
