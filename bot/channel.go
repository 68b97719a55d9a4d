package bot

import (
	"io"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// Reserve space for Discord's 2000-char limit and the code fence.
const maxMessageLen = 1900

type messageSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Channel turns one Discord channel into a line reader/writer. Writes are
// buffered and posted as a single message right before the next read, so a
// prompt and everything printed before it arrive together.
type Channel struct {
	ID          string
	AdminID     string
	AdminRoleID string

	send    messageSender
	mu      sync.Mutex
	pending strings.Builder
	lines   chan string
	unread  []byte
	done    chan struct{}
	once    sync.Once

	// Authors of the first two distinct input lines: the seated players.
	players []string
}

func NewChannel(send messageSender, channelID string) *Channel {
	return &Channel{
		ID:    channelID,
		send:  send,
		lines: make(chan string, 32),
		done:  make(chan struct{}),
	}
}

func (c *Channel) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.Write(p)
}

// Read flushes pending output, then blocks until a player posts a message.
func (c *Channel) Read(p []byte) (int, error) {
	if len(c.unread) == 0 {
		if err := c.Flush(); err != nil {
			return 0, err
		}
		select {
		case <-c.done:
			return 0, io.EOF
		default:
		}
		select {
		case line := <-c.lines:
			c.unread = []byte(line + "\n")
		case <-c.done:
			return 0, io.EOF
		}
	}
	n := copy(p, c.unread)
	c.unread = c.unread[n:]
	return n, nil
}

// Flush posts buffered output, split into messages under the size limit.
func (c *Channel) Flush() error {
	c.mu.Lock()
	text := strings.TrimRight(c.pending.String(), "\n ")
	c.pending.Reset()
	c.mu.Unlock()

	for _, chunk := range chunks(text, maxMessageLen) {
		if _, err := c.send.ChannelMessageSend(c.ID, "```\n"+chunk+"\n```"); err != nil {
			log.Printf("Error posting to channel %s: %v", c.ID, err)
			return err
		}
	}
	return nil
}

// Close makes pending and future reads return io.EOF.
func (c *Channel) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Channel) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.ChannelID != c.ID {
		return
	}
	if s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID {
		return
	}

	content := strings.TrimSpace(m.Content)
	if c.handleCommand(s, m, content) {
		return
	}
	c.seat(m.Author.ID)

	select {
	case c.lines <- content:
	default:
		log.Printf("Dropping message from %s: input queue full", m.Author.Username)
	}
}

func (c *Channel) seat(authorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.players) < 2 && !c.isPlayerLocked(authorID) {
		c.players = append(c.players, authorID)
	}
}

func (c *Channel) isPlayer(authorID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isPlayerLocked(authorID)
}

func (c *Channel) isPlayerLocked(authorID string) bool {
	for _, id := range c.players {
		if id == authorID {
			return true
		}
	}
	return false
}

// chunks splits text on line boundaries into pieces of at most limit bytes.
// Overlong lines are cut on rune boundaries.
func chunks(text string, limit int) []string {
	if text == "" {
		return nil
	}
	var out []string
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			if b.Len() > 0 {
				out = append(out, b.String())
				b.Reset()
			}
			cut := limit
			for cut > 0 && !utf8.RuneStart(line[cut]) {
				cut--
			}
			if cut == 0 {
				cut = limit
			}
			out = append(out, line[:cut])
			line = line[cut:]
		}
		if b.Len() > 0 && b.Len()+1+len(line) > limit {
			out = append(out, b.String())
			b.Reset()
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		out = append(out, b.String())
	}
	return out
}
