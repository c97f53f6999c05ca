package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/iksnae/promptdiff/internal"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-print file changes whenever the session advances",
	Long: `Watch the project's transcript directory and the session's backup store,
and reprint the latest prompt's file changes when they change. Bursts of
filesystem events are collapsed into a single recomputation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := internal.DetectStoragePaths(claudeDir)
		if err != nil {
			return err
		}
		project, err := resolveProject()
		if err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		defer func() { _ = watcher.Close() }()

		projectDir := filepath.Join(paths.ProjectsDir, internal.EncodeProjectPath(project))
		if err := watcher.Add(projectDir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", projectDir, err)
		}

		// The backup store for the current session, once known.
		watchedBackupDir := ""
		rerun := func() {
			session, err := internal.LoadProjectSession(paths, project)
			if err != nil {
				internal.LogError("Reload failed: %v", err)
				return
			}
			if session == nil {
				fmt.Println("No session found for this project.")
				return
			}
			if dir := paths.SessionBackupDir(session.SessionID); dir != watchedBackupDir {
				if watchedBackupDir != "" {
					_ = watcher.Remove(watchedBackupDir)
				}
				if err := watcher.Add(dir); err == nil {
					watchedBackupDir = dir
				}
			}
			printLatestChanges(session)
		}

		rerun()
		internal.LogInfo("Watching %s", projectDir)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		// Collapse event bursts: reset the timer on every event and only
		// recompute once it fires.
		var timer *time.Timer
		fire := make(chan struct{}, 1)
		schedule := func() {
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					schedule()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				internal.LogWarn("Watcher error: %v", err)
			case <-fire:
				rerun()
			case <-sig:
				fmt.Println()
				return nil
			}
		}
	},
}

// printLatestChanges prints the derived changes of the last prompt.
func printLatestChanges(session *internal.Session) {
	if len(session.Prompts) == 0 {
		fmt.Println("No prompts in this session.")
		return
	}
	prompt := &session.Prompts[len(session.Prompts)-1]
	fmt.Println(promptStyle.Render(fmt.Sprintf("[%s] Prompt %d: %s",
		time.Now().Format("15:04:05"), prompt.PromptNumber, truncate(prompt.Text, 60))))

	changes := internal.DeriveChanges(prompt, session.ProjectPath)
	if len(changes) == 0 {
		fmt.Println(pathStyle.Render("  no file changes"))
		return
	}
	for _, change := range changes {
		fmt.Printf("  %s %s\n", changeBadge(change.ChangeType), change.FilePath)
	}
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "Quiet window before recomputing")
	rootCmd.AddCommand(watchCmd)
}
