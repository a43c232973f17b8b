// Package notify publishes install decisions to configured sinks.
// All delivery is best-effort: a sink failure never blocks or reverses
// an install decision.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/slack-go/slack"

	"github.com/SkillFence/skillfence/internal/config"
	"github.com/SkillFence/skillfence/internal/guard"
)

// Event describes one install decision worth telling someone about.
type Event struct {
	Time        time.Time        `json:"time"`
	SkillName   string           `json:"skillName"`
	Source      string           `json:"source"`
	TrustLevel  guard.TrustLevel `json:"trustLevel"`
	Verdict     guard.Verdict    `json:"verdict"`
	Findings    int              `json:"findings"`
	Allowed     bool             `json:"allowed"`
	Forced      bool             `json:"forced"`
	Reason      string           `json:"reason"`
	ContentHash string           `json:"contentHash,omitempty"`
}

// Notifier fans one event out to the enabled sinks.
type Notifier struct {
	cfg config.NotifyConfig
}

// New builds a notifier from config. It is always safe to use: with no
// sinks enabled Publish is a no-op.
func New(cfg config.NotifyConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Publish delivers the event to every enabled sink. Errors are logged
// and swallowed.
func (n *Notifier) Publish(ctx context.Context, ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now().UTC()
	}
	if n.cfg.Slack.Enabled {
		if err := n.publishSlack(ctx, ev); err != nil {
			log.Printf("notify: slack delivery failed: %v", err)
		}
	}
	if n.cfg.Kafka.Enabled {
		if err := n.publishKafka(ctx, ev); err != nil {
			log.Printf("notify: kafka delivery failed: %v", err)
		}
	}
}

func (n *Notifier) publishSlack(ctx context.Context, ev Event) error {
	token := strings.TrimSpace(n.cfg.Slack.Token)
	channel := strings.TrimSpace(n.cfg.Slack.Channel)
	if token == "" || channel == "" {
		return fmt.Errorf("slack sink enabled but token or channel missing")
	}
	api := slack.New(token)
	_, _, err := api.PostMessageContext(ctx, channel,
		slack.MsgOptionText(formatSlackText(ev), false))
	return err
}

func formatSlackText(ev Event) string {
	state := "BLOCKED"
	if ev.Allowed {
		state = "allowed"
		if ev.Forced && ev.Verdict != guard.VerdictSafe {
			state = "FORCE-allowed"
		}
	}
	return fmt.Sprintf("skillfence: %s install of %q from %q (%s source, %s verdict, %d findings)\n%s",
		state, ev.SkillName, ev.Source, ev.TrustLevel, ev.Verdict, ev.Findings, ev.Reason)
}

func (n *Notifier) publishKafka(ctx context.Context, ev Event) error {
	if len(n.cfg.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka sink enabled but no brokers configured")
	}
	topic := strings.TrimSpace(n.cfg.Kafka.Topic)
	if topic == "" {
		topic = "skillfence.decisions"
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	w := &kafka.Writer{
		Addr:         kafka.TCP(n.cfg.Kafka.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
	defer w.Close()
	return w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.SkillName),
		Value: payload,
	})
}
