package cli

import (
	"context"

	"github.com/zerotask/zerotask/internal/client/repositories/metadata"
)

// Theme shows the stored colour theme preference, or sets it when name is
// non-empty. The value is an opaque label for whatever front end reads it.
func (a *App) Theme(ctx context.Context, name string) error {
	if name == "" {
		data, err := a.backend.Metadata.Get(ctx, metadata.KeyTheme)
		if err != nil {
			printlnFn("Error:", err.Error())
			return err
		}
		if data == nil {
			printlnFn("Theme: default")
		} else {
			printlnFn("Theme:", string(data))
		}
		return nil
	}

	if err := a.backend.Metadata.Set(ctx, metadata.KeyTheme, []byte(name)); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Theme set to", name)
	return nil
}
