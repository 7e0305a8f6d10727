package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/jmpark86/fanscore/internal/notifier"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendSyncSummary_DryRun(t *testing.T) {
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123")

	err := n.SendSyncSummary(notifier.SyncSummary{Job: "schedule-sync", RunID: "run-1", Count: 3}, true)
	require.NoError(t, err)
}

func TestSendSyncSummary_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	n := NewNotifierWithAPI(api, "C123")
	err := n.SendSyncSummary(notifier.SyncSummary{Job: "schedule-sync", RunID: "run-1", Count: 3, Updated: 2, Skipped: 1}, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}

func TestSendSyncFailure_PropagatesError(t *testing.T) {
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", errors.New("slack is down")
		},
	}

	n := NewNotifierWithAPI(api, "C123")
	err := n.SendSyncFailure("live-sync", errors.New("upstream 500"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post message")
}
