// Package bot exposes the gallery over Discord slash commands.
package bot

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/smerfmc/gallery/internal/category"
	"github.com/smerfmc/gallery/internal/image"
)

// Bot owns the Discord gateway session and routes slash commands to the
// category and image services.
type Bot struct {
	session    *discordgo.Session
	guildID    string
	galleryURL string
	categories *category.Service
	images     *image.Service
	httpClient *http.Client
}

// New creates a Bot. token is the Discord bot token; guildID scopes command
// registration to a single server.
func New(token, guildID, galleryURL string, categories *category.Service, images *image.Service) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	b := &Bot{
		session:    session,
		guildID:    guildID,
		galleryURL: galleryURL,
		categories: categories,
		images:     images,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("bot: logged in as %s", r.User.String())
	})
	session.AddHandler(b.handleInteraction)

	return b, nil
}

// Start opens the gateway connection and overwrites the guild's application
// commands with the current set.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}

	cmds, err := b.session.ApplicationCommandBulkOverwrite(
		b.session.State.User.ID, b.guildID, commandDefinitions())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	log.Printf("bot: registered %d commands on guild %s", len(cmds), b.guildID)
	return nil
}

// Stop closes the gateway session.
func (b *Bot) Stop() error {
	return b.session.Close()
}

// commandDefinitions returns the slash commands the bot registers.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "bahh",
			Description: "Bahh.",
		},
		{
			Name:        "view_categories",
			Description: "View existing categories",
		},
		{
			Name:        "create_category",
			Description: "Create a new image category",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category_name",
					Description: "Name of the new category",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "category_description",
					Description: "Optional description",
				},
			},
		},
		{
			Name:        "change_category_name",
			Description: "Change an existing category name. Case sensitive.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "old_category_name",
					Description:  "Current name",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "new_category_name",
					Description: "New name",
					Required:    true,
				},
			},
		},
		{
			Name:        "change_category_description",
			Description: "Change an existing category description. Category name is case sensitive.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "category",
					Description:  "Category to update",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "new_description",
					Description: "New description",
					Required:    true,
				},
			},
		},
		{
			Name:        "gallery",
			Description: "Get the link to the web gallery",
		},
		{
			Name:        "upload",
			Description: "Upload an image to a category",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "image",
					Description: "Image to upload",
					Required:    true,
				},
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "category",
					Description:  "Category to file the image under",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "caption",
					Description: "Optional caption",
				},
			},
		},
	}
}
