package notification

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"qrguard/internal/models"
	qrerrors "qrguard/pkg/errors"

	"github.com/bwmarrin/discordgo"
)

// Message is a generic alert pushed to the configured Discord channel.
type Message struct {
	Title       string
	Description string
	Severity    string
	Fields      map[string]string
	Timestamp   time.Time
}

type NotificationClient struct {
	sg *discordgo.Session
}

func NewNotificationClient() (*NotificationClient, error) {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN environment variable not set")
	}

	sg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	if err := sg.Open(); err != nil {
		return nil, err
	}

	return &NotificationClient{sg: sg}, nil
}

func (c *NotificationClient) getSeverityColor(severity string) int {
	switch severity {
	case string(models.RiskDanger):
		return 0xFF0000
	case string(models.RiskCaution):
		return 0xFF8C00
	case string(models.RiskSafe):
		return 0x00BFFF
	default:
		return 0x808080
	}
}

// SendScanAlert pushes a summary of a completed scan to Discord. Intended
// for danger-level results so an operator sees flagged URLs as they happen.
func (c *NotificationClient) SendScanAlert(result *models.ScanResult) error {
	return c.Send(Message{
		Title:       "Dangerous URL detected",
		Description: result.Intent.Label,
		Severity:    string(result.Risk.Level),
		Fields: map[string]string{
			"URL":    result.OriginalURL,
			"Domain": result.Preview.FinalDomain,
			"Score":  strconv.Itoa(result.Risk.Score),
			"Intent": string(result.Intent.Code),
		},
	})
}

func (c *NotificationClient) Send(msg Message) error {
	if c.sg == nil {
		return fmt.Errorf("%w: session not initialized", qrerrors.ErrDiscordNotConfigured)
	}

	channelID := os.Getenv("DISCORD_CHANNEL_ID")
	if channelID == "" {
		return fmt.Errorf("%w: DISCORD_CHANNEL_ID not set", qrerrors.ErrDiscordNotConfigured)
	}

	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	embed := &discordgo.MessageEmbed{
		Title:       msg.Title,
		Description: msg.Description,
		Color:       c.getSeverityColor(msg.Severity),
		Timestamp:   msg.Timestamp.Format(time.RFC3339),
	}

	if len(msg.Fields) > 0 {
		fields := make([]*discordgo.MessageEmbedField, 0, len(msg.Fields))
		for key, value := range msg.Fields {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   key,
				Value:  value,
				Inline: true,
			})
		}
		embed.Fields = fields
	}

	_, err := c.sg.ChannelMessageSendEmbed(channelID, embed)
	return err
}

func (c *NotificationClient) Close() error {
	if c.sg != nil {
		return c.sg.Close()
	}
	return nil
}
