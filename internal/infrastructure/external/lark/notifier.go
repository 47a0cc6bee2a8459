package lark

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/garyjia/speedauth/internal/application/port"
	"go.uber.org/zap"
)

const (
	receiveIDTypeChat = "chat_id"
	msgTypeText       = "text"
)

// messageSender is the part of SDKClient the notifier needs
type messageSender interface {
	SendMessage(ctx context.Context, receiveIDType, receiveID, msgType, content string) (string, error)
}

// DecisionNotifier posts approve/reject decisions to a Lark group chat
type DecisionNotifier struct {
	sender messageSender
	chatID string
	logger *zap.Logger
}

// NewDecisionNotifier creates a notifier posting to chatID
func NewDecisionNotifier(sender messageSender, chatID string, logger *zap.Logger) *DecisionNotifier {
	return &DecisionNotifier{
		sender: sender,
		chatID: chatID,
		logger: logger,
	}
}

// NotifyDecision implements port.DecisionNotifier
func (n *DecisionNotifier) NotifyDecision(ctx context.Context, event port.DecisionEvent) error {
	content, err := json.Marshal(map[string]string{"text": decisionText(event)})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	messageID, err := n.sender.SendMessage(ctx, receiveIDTypeChat, n.chatID, msgTypeText, string(content))
	if err != nil {
		return err
	}

	n.logger.Info("Decision notification sent",
		zap.Int64("authorization_id", event.AuthorizationID),
		zap.String("message_id", messageID))
	return nil
}

func decisionText(e port.DecisionEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Authorization %s (#%d): %s -> %s", e.UniqueAuthID, e.AuthorizationID, e.FromStatus, e.ToStatus)
	if e.Reason != "" {
		fmt.Fprintf(&b, "\nReason: %s", e.Reason)
	}
	if e.EDIFilePath != "" {
		fmt.Fprintf(&b, "\nEDI: %s", e.EDIFilePath)
	}
	return b.String()
}

// NoopNotifier drops every notification
type NoopNotifier struct{}

func (NoopNotifier) NotifyDecision(ctx context.Context, event port.DecisionEvent) error {
	return nil
}

var (
	_ port.DecisionNotifier = (*DecisionNotifier)(nil)
	_ port.DecisionNotifier = NoopNotifier{}
	_ messageSender         = (*SDKClient)(nil)
)
