package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mkoval/claimflow/internal/dispatch"
	"github.com/mkoval/claimflow/internal/ingest"
)

var watchInterval time.Duration

// spoolEvent is the on-disk JSON shape of one inbound event.
type spoolEvent struct {
	Sender      string `json:"sender"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	Attachments []struct {
		Name string `json:"name"`
		Path string `json:"path"`
	} `json:"attachments"`
}

// watchCmd polls a spool directory of event files.
var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a spool directory for inbound claim messages",
	Long: `Watch polls a directory for event JSON files and dispatches each through
the claim engine. Processed files move to a "done" subdirectory; files that
fail to parse move to "failed".

Each file holds one event:
  {"sender": "driver@example.com", "subject": "Claim", "body": "...", "attachments": [{"name": "photo.jpg", "path": "/tmp/photo.jpg"}]}

Example:
  claimflow watch ./spool --interval 10s`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 15*time.Second, "poll interval")
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("spool directory not found: %s", dir)
	}
	for _, sub := range []string{"done", "failed"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0755); err != nil {
			return fmt.Errorf("create %s dir: %w", sub, err)
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	o, err := buildOrchestrator(cfg, log)
	if err != nil {
		return err
	}

	queue := dispatch.NewQueue(cfg.Concurrency.EventWorkers, o, log)
	queue.Start()
	defer queue.Drain()

	log.Info("watching spool directory",
		zap.String("dir", dir),
		zap.Duration("interval", watchInterval))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		sweepSpool(dir, queue, log)
		select {
		case <-stop:
			log.Info("shutting down")
			return nil
		case <-ticker.C:
		}
	}
}

// sweepSpool processes every event file currently in the spool directory.
func sweepSpool(dir string, queue *dispatch.Queue, log *zap.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Error("read spool directory failed", zap.Error(err))
		return
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(dir, name)
		ev, err := readSpoolEvent(path)
		if err != nil {
			log.Warn("unreadable event file",
				zap.String("file", name),
				zap.Error(err))
			moveSpoolFile(path, filepath.Join(dir, "failed", name), log)
			continue
		}
		queue.Submit(ev)
		moveSpoolFile(path, filepath.Join(dir, "done", name), log)
	}
}

// readSpoolEvent parses one spool file into an event, loading any
// referenced attachment content.
func readSpoolEvent(path string) (ingest.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ingest.Event{}, err
	}

	var raw spoolEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return ingest.Event{}, fmt.Errorf("parse event: %w", err)
	}
	if raw.Sender == "" {
		return ingest.Event{}, fmt.Errorf("event has no sender")
	}

	ev := ingest.NewEvent(raw.Sender, raw.Subject, raw.Body, time.Now().UTC())
	for _, att := range raw.Attachments {
		content, err := os.ReadFile(att.Path)
		if err != nil {
			return ingest.Event{}, fmt.Errorf("read attachment %s: %w", att.Name, err)
		}
		ev.Attachments = append(ev.Attachments, ingest.Attachment{
			Name:    att.Name,
			Content: content,
		})
	}
	return ev, nil
}

func moveSpoolFile(from, to string, log *zap.Logger) {
	if err := os.Rename(from, to); err != nil {
		log.Error("move spool file failed",
			zap.String("from", from),
			zap.Error(err))
	}
}
