package bot

import (
	"errors"
	"log"

	"github.com/bwmarrin/discordgo"
)

// Bot hosts a hot-seat match in a single Discord channel. Both players
// share the channel the way they would share a keyboard.
type Bot struct {
	Session *discordgo.Session
	Channel *Channel
}

// NewBot prepares the session. adminID and adminRoleID may be empty; the
// seated players can always stop their own match.
func NewBot(token, channelID, adminID, adminRoleID string) (*Bot, error) {
	if token == "" || channelID == "" {
		return nil, errors.New("discord token and channel ID are required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	channel := NewChannel(session, channelID)
	channel.AdminID = adminID
	channel.AdminRoleID = adminRoleID
	session.AddHandler(channel.handleMessage)

	return &Bot{
		Session: session,
		Channel: channel,
	}, nil
}

func (b *Bot) Start() error {
	if err := b.Session.Open(); err != nil {
		return err
	}
	log.Println("Bot is running...")
	log.Printf("Logged in as: %s#%s\n", b.Session.State.User.Username, b.Session.State.User.Discriminator)
	log.Printf("Match channel: %s\n", b.Channel.ID)
	return nil
}

// Close posts whatever is still buffered and disconnects.
func (b *Bot) Close() error {
	flushErr := b.Channel.Flush()
	b.Channel.Close()
	if err := b.Session.Close(); err != nil {
		return err
	}
	return flushErr
}
