package bot

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const commandPrefix = "!!mindwars"

// handleCommand runs a chat command and reports whether content was one.
// Commands are never fed to the match as answers.
func (c *Channel) handleCommand(s *discordgo.Session, m *discordgo.MessageCreate, content string) bool {
	if !strings.HasPrefix(content, commandPrefix) {
		return false
	}

	switch strings.TrimSpace(strings.TrimPrefix(content, commandPrefix)) {
	case "help":
		c.reply(helpMessage())
	case "stop":
		if !c.isPlayer(m.Author.ID) && !c.isAdmin(s, m) {
			c.reply("Only the players or an admin can stop the match.")
			return true
		}
		c.reply("Match stopped.")
		log.Printf("Match stopped by %s\n", m.Author.Username)
		c.Close()
	default:
		c.reply("Unknown command. Use `!!mindwars help`.")
	}
	return true
}

func (c *Channel) isAdmin(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	if c.AdminID != "" && m.Author.ID == c.AdminID {
		return true
	}
	if c.AdminRoleID == "" {
		return false
	}

	member, err := s.GuildMember(m.GuildID, m.Author.ID)
	if err != nil {
		log.Printf("Error fetching member roles: %v", err)
		return false
	}
	for _, roleID := range member.Roles {
		if roleID == c.AdminRoleID {
			return true
		}
	}
	return false
}

func (c *Channel) reply(content string) {
	if _, err := c.send.ChannelMessageSend(c.ID, content); err != nil {
		log.Printf("Error replying in channel %s: %v", c.ID, err)
	}
}

func helpMessage() string {
	lines := []string{
		"**MindWars Help**",
		"Two players share this channel and take turns, just like passing a keyboard.",
		"- Answer with a letter or number for multiple choice, T/F for true/false, a number for estimates, the order as `2 1 3`, or free text.",
		"- Easy/medium/hard correct answers earn 10/20/30 points; three in a row earns a +3 streak bonus.",
		"- When both players are right, the faster one earns +1.",
		"- In the final round you may wager up to your score: win double, or lose the stake.",
		"- The round winner claims 2 map cells, the other player 1. Enter cells as `row col`.",
		"\n**Commands:**",
		"- **!!mindwars help**: Show this help message.",
		"- **!!mindwars stop**: End the current match (players and admins only).",
	}
	return strings.Join(lines, "\n")
}
