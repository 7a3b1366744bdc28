// Package notification posts short messages to the staff channel.
package notification

import (
	"context"
	"fmt"
	
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

type Notifier interface {
	Notify(ctx context.Context, message string) error
}

type DiscordNotifier struct {
	discord   *discordgo.Session
	channelID string
}

// NewNotifier falls back to a log-only notifier when no bot token is configured.
func NewNotifier(botToken, channelID string) (Notifier, error) {
	if botToken == "" || channelID == "" {
		log.Warn().Msg("discord is not configured, staff notifications will only be logged")
		return LogNotifier{}, nil
	}
	
	discord, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	
	return &DiscordNotifier{
		discord:   discord,
		channelID: channelID,
	}, nil
}

func (n *DiscordNotifier) Notify(ctx context.Context, message string) error {
	_, err := n.discord.ChannelMessageSend(n.channelID, truncate(message), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send discord message: %w", err)
	}
	
	return nil
}

type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, message string) error {
	log.Info().Str("message", message).Msg("staff notification")
	return nil
}

// Discord rejects messages longer than 2000 characters.
const maxMessageLength = 2000

func truncate(message string) string {
	runes := []rune(message)
	if len(runes) <= maxMessageLength {
		return message
	}
	
	return string(runes[:maxMessageLength-1]) + "…"
}
