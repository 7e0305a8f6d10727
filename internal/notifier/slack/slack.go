package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts sync run reports to the ops Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack client.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	log.Debug("Sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

// SendSyncSummary posts a one-block report for a finished sync run.
func (s *Notifier) SendSyncSummary(summary notifier.SyncSummary, dryRun bool) error {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(
		slack.PlainTextType, fmt.Sprintf("Sync finished: %s", summary.Job), false, false,
	))
	body := slack.NewSectionBlock(slack.NewTextBlockObject(
		slack.MarkdownType,
		fmt.Sprintf("*Run* `%s`\n*Fetched:* %d  *Updated:* %d  *Skipped:* %d\n*Duration:* %.2fs\n%s",
			summary.RunID, summary.Count, summary.Updated, summary.Skipped, summary.Duration, summary.Result),
		false, false,
	), nil, nil)

	msg := slack.NewBlockMessage(header, body)
	return s.sendMessage(msg, dryRun)
}

// SendSyncFailure posts an alert for a failed sync run.
func (s *Notifier) SendSyncFailure(job string, runErr error, dryRun bool) error {
	body := slack.NewSectionBlock(slack.NewTextBlockObject(
		slack.MarkdownType,
		fmt.Sprintf(":rotating_light: *Sync failed: %s*\n```%v```", job, runErr),
		false, false,
	), nil, nil)

	msg := slack.NewBlockMessage(body)
	return s.sendMessage(msg, dryRun)
}
