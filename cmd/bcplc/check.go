package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"bcplc/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [files|dirs...]",
	Short: "Parse BCPL sources and report diagnostics",
	Long: `Check parses every given source (or the sources of bcpl.toml) and reports
diagnostics. With --watch it keeps running and checks again when a file changes.`,
	RunE: runCheck,
}

const cacheApp = "bcplc"

func init() {
	addCompileFlags(checkCmd)
	checkCmd.Flags().Bool("cache", false, "skip files that parsed cleanly before (cache in the user cache dir)")
	checkCmd.Flags().Bool("watch", false, "check again whenever a source changes")
	checkCmd.Flags().Duration("debounce", 150*time.Millisecond, "quiet period before re-checking in watch mode")
}

func runCheck(cmd *cobra.Command, args []string) error {
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return fmt.Errorf("failed to get watch flag: %w", err)
	}
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	req, err := readCompileRequest(cmd, args)
	if err != nil {
		return err
	}

	var cache driver.Cache
	if useCache {
		disk, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		cache = disk
	}
	if watch {
		// Unchanged files are skipped between rounds even without --cache.
		cache = driver.NewMemoryCache(len(req.inputs.sources), cache)
		req.ui = uiModeOff
	}
	req.session.Cache = cache

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	_, err = compile(ctx, out, req)
	if !watch {
		return err
	}
	if err != nil && !errors.Is(err, errCompileFailed) {
		return err
	}
	return watchAndCheck(ctx, cmd, req, debounce)
}

func watchAndCheck(ctx context.Context, cmd *cobra.Command, req *compileRequest, debounce time.Duration) error {
	out := cmd.OutOrStdout()
	if !req.opts.quiet {
		fmt.Fprintf(out, "watching %d file(s), press Ctrl+C to stop\n", len(req.inputs.sources))
	}
	var mu sync.Mutex
	err := driver.Watch(ctx, req.inputs.sources, debounce, func(changed []string) {
		mu.Lock()
		defer mu.Unlock()
		if !req.opts.quiet {
			fmt.Fprintf(out, "\n%d file(s) changed, checking again\n", len(changed))
		}
		if _, err := compile(ctx, out, req); err != nil && !errors.Is(err, errCompileFailed) {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.Root().Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
