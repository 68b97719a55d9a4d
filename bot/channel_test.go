package bot

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) ChannelMessageSend(channelID string, content string, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, content)
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func botSession() *discordgo.Session {
	s := &discordgo.Session{State: discordgo.NewState()}
	s.State.User = &discordgo.User{ID: "bot"}
	return s
}

func message(channelID, authorID, content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ChannelID: channelID,
		Content:   content,
		Author:    &discordgo.User{ID: authorID, Username: authorID},
	}}
}

func TestChannelFlushesBeforeReading(t *testing.T) {
	sender := &fakeSender{}
	ch := NewChannel(sender, "c1")
	s := botSession()

	fmt.Fprintln(ch, "Enter name for Player 1:")
	fmt.Fprint(ch, "> ")
	ch.handleMessage(s, message("other", "u1", "ignored"))
	ch.handleMessage(s, message("c1", "bot", "ignored too"))
	ch.handleMessage(s, message("c1", "u1", "  Ada  "))

	line, err := bufio.NewReader(ch).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Ada\n", line)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "```\nEnter name for Player 1:\n>\n```", sender.sent[0])
}

func TestChannelCloseEndsReads(t *testing.T) {
	ch := NewChannel(&fakeSender{}, "c1")
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close())

	_, err := ch.Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.EOF)
}

func TestChannelReportsSendErrors(t *testing.T) {
	sender := &fakeSender{err: fmt.Errorf("rate limited")}
	ch := NewChannel(sender, "c1")
	fmt.Fprintln(ch, "hello")

	_, err := ch.Read(make([]byte, 8))
	assert.EqualError(t, err, "rate limited")
}

func TestChunksStayUnderLimit(t *testing.T) {
	line := strings.Repeat("x", 30)
	text := strings.TrimSuffix(strings.Repeat(line+"\n", 10), "\n")

	parts := chunks(text, 100)
	require.Len(t, parts, 4)
	for _, p := range parts {
		assert.LessOrEqual(t, len(p), 100)
	}
	assert.Equal(t, text, strings.Join(parts, "\n"))

	long := chunks(strings.Repeat("y", 250), 100)
	assert.Equal(t, []string{strings.Repeat("y", 100), strings.Repeat("y", 100), strings.Repeat("y", 50)}, long)

	assert.Nil(t, chunks("", 100))
}

func TestChunksKeepMultiByteRunesWhole(t *testing.T) {
	text := strings.Repeat("€", 700)

	parts := chunks(text, maxMessageLen)
	require.Len(t, parts, 2)
	for _, p := range parts {
		assert.True(t, utf8.ValidString(p))
		assert.LessOrEqual(t, len(p), maxMessageLen)
	}
	assert.Equal(t, 1899, len(parts[0]))
	assert.Equal(t, text, strings.Join(parts, ""))
}

func TestChannelCommands(t *testing.T) {
	sender := &fakeSender{}
	ch := NewChannel(sender, "c1")
	s := botSession()

	ch.handleMessage(s, message("c1", "u1", "Ada"))
	ch.handleMessage(s, message("c1", "u1", "!!mindwars help"))
	ch.handleMessage(s, message("c1", "u1", "!!mindwars dance"))
	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[0], "MindWars Help")
	assert.Contains(t, sender.sent[1], "Unknown command")

	ch.handleMessage(s, message("c1", "u1", "!!mindwars stop"))
	assert.Equal(t, "Match stopped.", sender.sent[2])

	_, err := ch.Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.EOF)
}

func TestChannelStopIsLimitedToPlayersAndAdmin(t *testing.T) {
	sender := &fakeSender{}
	ch := NewChannel(sender, "c1")
	ch.AdminID = "boss"
	s := botSession()

	ch.handleMessage(s, message("c1", "ada", "Ada"))
	ch.handleMessage(s, message("c1", "bob", "Bob"))
	ch.handleMessage(s, message("c1", "eve", "Eve"))

	ch.handleMessage(s, message("c1", "eve", "!!mindwars stop"))
	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0], "Only the players or an admin")
	select {
	case <-ch.done:
		t.Fatal("spectator stopped the match")
	default:
	}

	ch.handleMessage(s, message("c1", "bob", "!!mindwars stop"))
	assert.Equal(t, "Match stopped.", sender.sent[1])

	admin := NewChannel(sender, "c1")
	admin.AdminID = "boss"
	admin.handleMessage(s, message("c1", "boss", "!!mindwars stop"))
	assert.Equal(t, "Match stopped.", sender.sent[2])
	_, err := admin.Read(make([]byte, 8))
	assert.ErrorIs(t, err, io.EOF)
}
