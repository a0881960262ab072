package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/smerfmc/gallery/internal/category"
)

// Discord allows at most 25 autocomplete choices per response.
const maxAutocompleteChoices = 25

// handleInteraction dispatches slash commands and autocomplete requests.
// Every command is a single request/response exchange; there is no
// cross-command session state.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	switch data.Name {
	case "bahh":
		b.reply(s, i, "moooo")
	case "view_categories":
		b.viewCategories(s, i)
	case "create_category":
		b.createCategory(s, i)
	case "change_category_name":
		b.changeCategoryName(s, i)
	case "change_category_description":
		b.changeCategoryDescription(s, i)
	case "gallery":
		b.reply(s, i, b.galleryURL)
	case "upload":
		b.upload(s, i)
	default:
		log.Printf("bot: unknown command %q", data.Name)
	}
}

func (b *Bot) viewCategories(s *discordgo.Session, i *discordgo.InteractionCreate) {
	cats, err := b.categories.List(context.Background())
	if err != nil {
		log.Printf("bot: list categories: %v", err)
		b.reply(s, i, "Unable to list categories. Please try again.")
		return
	}
	b.reply(s, i, formatCategoryList(cats))
}

func (b *Bot) createCategory(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	name := opts["category_name"].StringValue()
	var description *string
	if opt, ok := opts["category_description"]; ok {
		v := opt.StringValue()
		description = &v
	}

	_, err := b.categories.Create(context.Background(), name, description)
	switch {
	case errors.Is(err, category.ErrAlreadyExists):
		b.reply(s, i, "Category already exists!")
	case err != nil:
		log.Printf("bot: create category %q: %v", name, err)
		b.reply(s, i, "Unable to add category. Please try again.")
	default:
		b.reply(s, i, "Category added successfully.")
	}
}

func (b *Bot) changeCategoryName(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	oldName := opts["old_category_name"].StringValue()
	newName := opts["new_category_name"].StringValue()

	if err := b.categories.Rename(context.Background(), oldName, newName); err != nil {
		log.Printf("bot: rename category %q -> %q: %v", oldName, newName, err)
		b.reply(s, i, "Unable to edit category name. Reminder: This command is case sensitive. Check existing names with /view_categories.")
		return
	}
	b.reply(s, i, fmt.Sprintf("%s successfully changed to %s", oldName, newName))
}

func (b *Bot) changeCategoryDescription(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	name := opts["category"].StringValue()
	description := opts["new_description"].StringValue()

	if err := b.categories.UpdateDescription(context.Background(), name, description); err != nil {
		log.Printf("bot: update description of %q: %v", name, err)
		b.reply(s, i, "Unable to edit category description. Reminder: Category name case sensitive. Check existing names with /view_categories.")
		return
	}
	b.reply(s, i, fmt.Sprintf("Successfully updated %s's description.", name))
}

// upload validates the attachment and category, defers the reply (the object
// store write can exceed Discord's 3-second budget), performs the upload, and
// reports the outcome in a follow-up message.
func (b *Bot) upload(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	data := i.ApplicationCommandData()
	opts := optionMap(i)

	attID := opts["image"].Value.(string)
	att := data.Resolved.Attachments[attID]
	categoryName := opts["category"].StringValue()
	var caption *string
	if opt, ok := opts["caption"]; ok {
		v := opt.StringValue()
		caption = &v
	}

	if att == nil || !strings.HasPrefix(att.ContentType, "image") {
		b.reply(s, i, "Please attach an image.")
		return
	}

	names, err := b.categories.ListNames(ctx)
	if err != nil {
		log.Printf("bot: check category %q: %v", categoryName, err)
		b.reply(s, i, "Unable to upload. Please try again.")
		return
	}
	exists := false
	for _, n := range names {
		if n == categoryName { // exact match, same rule the image service enforces
			exists = true
			break
		}
	}
	if !exists {
		b.reply(s, i, "Category not found. Categories are case sensitive; please check spelling or select from the dropdown menu.")
		return
	}

	if err := b.deferReply(s, i); err != nil {
		log.Printf("bot: defer upload response: %v", err)
		return
	}

	if err := b.fetchAndUpload(ctx, att, categoryName, caption); err != nil {
		log.Printf("bot: upload to %q: %v", categoryName, err)
		b.followup(s, i, "Unable to upload the image. Please try again.")
		return
	}
	b.followup(s, i, "Uploaded the object!")
}

// fetchAndUpload downloads the attachment from Discord's CDN and streams it
// through the image service.
func (b *Bot) fetchAndUpload(ctx context.Context, att *discordgo.MessageAttachment, categoryName string, caption *string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, nil)
	if err != nil {
		return fmt.Errorf("build attachment request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch attachment: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch attachment: unexpected status %d", resp.StatusCode)
	}

	_, err = b.images.Upload(ctx, categoryName, att.Filename, att.ContentType, resp.Body, int64(att.Size), caption)
	return err
}

// handleAutocomplete answers the focused option of any command with
// category-name suggestions. All autocompleted options hold category names,
// so a single matcher serves every command.
func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var current string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Focused {
			current = opt.StringValue()
			break
		}
	}

	names, err := b.categories.ListNames(context.Background())
	if err != nil {
		log.Printf("bot: autocomplete categories: %v", err)
		names = nil
	}

	matches := filterChoices(names, current)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(matches))
	for idx, name := range matches {
		choices[idx] = &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name}
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Printf("bot: autocomplete respond: %v", err)
	}
}

// filterChoices returns the names containing current as a case-insensitive
// substring, capped at Discord's choice limit.
func filterChoices(names []string, current string) []string {
	needle := strings.ToLower(current)
	var matches []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, name)
			if len(matches) == maxAutocompleteChoices {
				break
			}
		}
	}
	return matches
}

// formatCategoryList renders name/description pairs as a bullet list.
func formatCategoryList(cats []category.Category) string {
	if len(cats) == 0 {
		return "No categories found."
	}
	lines := make([]string, len(cats))
	for i, c := range cats {
		desc := ""
		if c.Description != nil {
			desc = *c.Description
		}
		lines[i] = fmt.Sprintf("• **%s** - %s", c.Name, desc)
	}
	return strings.Join(lines, "\n")
}

// reply sends an immediate ephemeral response.
func (b *Bot) reply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("bot: respond: %v", err)
	}
}

// deferReply acknowledges the interaction so a slow operation can follow up later.
func (b *Bot) deferReply(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

// followup sends an ephemeral follow-up after a deferred response.
func (b *Bot) followup(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("bot: followup: %v", err)
	}
}

// optionMap indexes a command's options by name.
func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
