package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkoval/claimflow/internal/ingest"
)

var (
	processFrom    string
	processSubject string
	processBody    string
	processFile    string
	processAttach  []string
	processTimeout time.Duration
)

// processCmd feeds one inbound event through the engine.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Process a single inbound claim message",
	Long: `Process feeds one claimant message through the claim engine: attachment
description, clarification or triage, specialist dispatch, and any resulting
outbound notification.

Example:
  claimflow process --from driver@example.com --body "someone hit my parked car"
  claimflow process --from driver@example.com -f message.txt --attach photo.jpg`,
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&processFrom, "from", "", "claimant contact address (required)")
	processCmd.Flags().StringVar(&processSubject, "subject", "", "message subject")
	processCmd.Flags().StringVar(&processBody, "body", "", "message body text")
	processCmd.Flags().StringVarP(&processFile, "file", "f", "", "read message body from file")
	processCmd.Flags().StringArrayVar(&processAttach, "attach", nil, "attachment file path (repeatable)")
	processCmd.Flags().DurationVar(&processTimeout, "timeout", 5*time.Minute, "overall processing timeout")
	_ = processCmd.MarkFlagRequired("from")
}

func runProcess(cmd *cobra.Command, args []string) error {
	body := processBody
	if processFile != "" {
		data, err := os.ReadFile(processFile)
		if err != nil {
			return fmt.Errorf("read body file: %w", err)
		}
		body = string(data)
	}
	if body == "" {
		return fmt.Errorf("message body is required (--body or --file)")
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

	ev := ingest.NewEvent(processFrom, processSubject, body, time.Now().UTC())
	for _, path := range processAttach {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read attachment %s: %w", path, err)
		}
		ev.Attachments = append(ev.Attachments, ingest.Attachment{
			Name:    filepath.Base(path),
			Content: content,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	if err := o.HandleEvent(ctx, ev); err != nil {
		return fmt.Errorf("process event: %w", err)
	}

	fmt.Println("Event processed.")
	return nil
}
