// Package gateway adapts the Discord gateway to the bot's message model.
package gateway

import (
	"context"
	"fmt"
	"go-economy-bot/logger"
	"go-economy-bot/model"

	"github.com/bwmarrin/discordgo"
)

// MessageHandler consumes inbound messages. *router.Router satisfies it.
type MessageHandler interface {
	Handle(ctx context.Context, msg *model.Message)
}

// Intents are the gateway intents the bot needs to read guild messages.
const Intents = discordgo.IntentGuilds | discordgo.IntentGuildMessages | discordgo.IntentMessageContent

// Discord is a gateway session that also sends replies.
type Discord struct {
	session *discordgo.Session
}

func NewDiscord(token string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	session.Identify.Intents = Intents
	return &Discord{session: session}, nil
}

// Run connects to the gateway and feeds every created message to h until
// ctx is done. discordgo calls handlers on their own goroutines, so a
// handler waiting for an answer does not hold up other messages.
func (d *Discord) Run(ctx context.Context, h MessageHandler) error {
	removeReady := d.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Log.WithField("user", r.User.String()).Info("Logged in to Discord")
	})
	defer removeReady()

	removeMessage := d.session.AddHandler(func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Message == nil {
			return
		}
		h.Handle(ctx, toMessage(m.Message))
	})
	defer removeMessage()

	if err := d.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	logger.Log.Info("Discord gateway connection opened")

	<-ctx.Done()

	logger.Log.Warn("Closing Discord gateway connection")
	if err := d.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord gateway: %w", err)
	}
	return nil
}

// Send posts reply to channelID.
func (d *Discord) Send(ctx context.Context, channelID string, reply model.Reply) error {
	_, err := d.session.ChannelMessageSendComplex(channelID, toMessageSend(channelID, reply), discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}
	return nil
}

func toUser(u *discordgo.User) model.User {
	if u == nil {
		return model.User{}
	}
	return model.User{ID: u.ID, Username: u.Username, Bot: u.Bot}
}

func toMessage(m *discordgo.Message) *model.Message {
	msg := &model.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		GuildID:   m.GuildID,
		Author:    toUser(m.Author),
		Content:   m.Content,
	}
	for _, u := range m.Mentions {
		if u != nil {
			msg.Mentions = append(msg.Mentions, toUser(u))
		}
	}
	return msg
}

func toMessageSend(channelID string, reply model.Reply) *discordgo.MessageSend {
	send := &discordgo.MessageSend{Content: reply.Content}

	if e := reply.Embed; e != nil {
		embed := &discordgo.MessageEmbed{
			Title:       e.Title,
			Description: e.Description,
			Color:       int(e.Color),
		}
		for _, f := range e.Fields {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
		}
		send.Embeds = []*discordgo.MessageEmbed{embed}
	}

	if reply.ReplyTo != "" {
		send.Reference = &discordgo.MessageReference{MessageID: reply.ReplyTo, ChannelID: channelID}
	}
	return send
}
