// Package notify hands stored outbound messages to delivery channels.
// No channel talks to a real provider; each records what it would send.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/engage-agent/internal/domain"
)

// Sender delivers one message over a single channel.
type Sender interface {
	Send(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error
}

// Dispatcher routes messages to the sender registered for their channel.
type Dispatcher struct {
	log     *slog.Logger
	senders map[domain.Channel]Sender
}

// NewDispatcher returns a dispatcher with the logging email, push and sms senders.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	log := logger.With("adapter", "notify")
	return &Dispatcher{
		log: log,
		senders: map[domain.Channel]Sender{
			domain.ChannelEmail: emailSender{log: log},
			domain.ChannelPush:  pushSender{log: log},
			domain.ChannelSMS:   smsSender{log: log},
		},
	}
}

// Register replaces the sender for ch.
func (d *Dispatcher) Register(ch domain.Channel, s Sender) {
	d.senders[ch] = s
}

// Dispatch sends msg to its recipient. It fails only for unknown channels
// and sender errors; the message row is left untouched either way.
func (d *Dispatcher) Dispatch(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error {
	s, ok := d.senders[msg.Channel]
	if !ok {
		return fmt.Errorf("notify: no sender for channel %q", msg.Channel)
	}
	if err := s.Send(ctx, to, msg); err != nil {
		return fmt.Errorf("notify %s: %w", msg.Channel, err)
	}
	return nil
}

type emailSender struct{ log *slog.Logger }

func (s emailSender) Send(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error {
	var subject string
	if msg.Subject != nil {
		subject = *msg.Subject
	}
	s.log.InfoContext(ctx, "email queued",
		slog.Int64("message_id", msg.ID),
		slog.String("user_id", to.UserID),
		slog.String("to", deref(to.Email)),
		slog.String("subject", subject),
	)
	return nil
}

type pushSender struct{ log *slog.Logger }

func (s pushSender) Send(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error {
	s.log.InfoContext(ctx, "push queued",
		slog.Int64("message_id", msg.ID),
		slog.String("user_id", to.UserID),
		slog.Int("length", len([]rune(msg.Body))),
	)
	return nil
}

type smsSender struct{ log *slog.Logger }

func (s smsSender) Send(ctx context.Context, to domain.UserProfile, msg domain.OutboundMessage) error {
	s.log.InfoContext(ctx, "sms queued",
		slog.Int64("message_id", msg.ID),
		slog.String("user_id", to.UserID),
		slog.String("to", deref(to.Phone)),
	)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
