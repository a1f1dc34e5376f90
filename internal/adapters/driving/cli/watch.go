package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/qadigest/internal/core/domain"
	"github.com/custodia-labs/qadigest/internal/normalisers"
)

// watchDebounce coalesces the burst of write events editors emit on save.
const watchDebounce = 500 * time.Millisecond

var (
	watchRole   string
	watchLens   string
	watchDetail string
	watchJSON   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Summarise documents as they appear in a directory",
	Long: `Watches a directory and summarises every document that is created or
changed in it. Only .txt, .md, .html and similar document files are picked up;
hidden files and editor swap files are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	f := watchCmd.Flags()
	f.StringVarP(&watchRole, "role", "r", "", "audience role (default QA Lead)")
	f.StringVarP(&watchLens, "lens", "l", "", "summary lens (default Regulatory)")
	f.StringVarP(&watchDetail, "detail", "d", "", "detail level (default Standard)")
	f.BoolVar(&watchJSON, "json", false, "print one JSON line per summary")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if summaryService == nil {
		return errors.New("summary service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch %s: not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for documents (Ctrl+C to stop)\n", dir)
	mode := domain.ModeInput{Role: watchRole, Lens: watchLens, Detail: watchDetail}
	return watchLoop(cmd.Context(), watcher.Events, watcher.Errors, watchDebounce, func(path string) {
		summarizeWatched(cmd, path, mode)
	})
}

// watchLoop collects create and write events for document files and calls
// handle once per path after it has been quiet for the debounce interval.
// It returns when ctx is cancelled or the event channel closes.
func watchLoop(
	ctx context.Context,
	events <-chan fsnotify.Event,
	errs <-chan error,
	debounce time.Duration,
	handle func(path string),
) error {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !normalisers.IsDocumentPath(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now()
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			cliLog.Warn("watch error", "error", err)
		case now := <-ticker.C:
			for path, seen := range pending {
				if now.Sub(seen) >= debounce {
					delete(pending, path)
					handle(path)
				}
			}
		}
	}
}

func summarizeWatched(cmd *cobra.Command, path string, mode domain.ModeInput) {
	ctx := cmd.Context()
	doc, err := readDocumentFile(ctx, path, "")
	if err != nil {
		cmd.PrintErrf("skip %s: %v\n", path, err)
		return
	}

	result, err := summaryService.Summarize(ctx, domain.SummaryRequest{Document: doc, Mode: mode})
	if err != nil {
		cliLog.Warn("watch summarize failed", "path", path, "error", err)
		cmd.PrintErrf("skip %s: %v\n", path, err)
		return
	}

	rec := result.Summary
	if watchJSON {
		line, err := json.Marshal(map[string]any{
			"path":       path,
			"summary_id": rec.SummaryID,
			"doc_id":     rec.DocID,
			"confidence": rec.Confidence,
			"violations": len(rec.Guardrails.Violations),
		})
		if err != nil {
			cmd.PrintErrf("skip %s: %v\n", path, err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(line))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (confidence %.2f, %d citations)\n",
		path, rec.SummaryID, rec.Confidence, len(rec.Citations))
}
