package discord

import (
	"crypto/sha1"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// hashCommand fingerprints the fields pingCommand sets. IDs and versions
// assigned by Discord are not part of it.
func hashCommand(cmd *discordgo.ApplicationCommand) string {
	key := fmt.Sprintf("%s\x00%s\x00%d", cmd.Name, cmd.Description, cmd.Type)
	return fmt.Sprintf("%x", sha1.Sum([]byte(key)))
}
