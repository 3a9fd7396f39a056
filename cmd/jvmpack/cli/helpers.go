package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/majorcontext/jvmpack/internal/cache"
	"github.com/majorcontext/jvmpack/internal/jre"
	"github.com/majorcontext/jvmpack/internal/ui"
)

// appDir validates the application directory argument.
func appDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("application directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("application directory %s is not a directory", path)
	}
	return path, nil
}

// selectRuntime reads the app's candidates and resolves its runtime.
func selectRuntime(ctx context.Context, dir string, c *cache.Cache) (*jre.Runtime, error) {
	candidates, err := jre.CandidatesFromApp(dir, os.Getenv)
	if err != nil {
		return nil, err
	}

	selector, _ := newSelector(c)
	return selector.Select(ctx, candidates)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	ui.Write(append(data, '\n'))
	return nil
}
