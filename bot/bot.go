package bot

import (
	"rolemenu/dal"
	"rolemenu/discordutils"

	"github.com/bwmarrin/discordgo"
	"github.com/gookit/event"
	"github.com/rs/zerolog"
)

var botCommands = []*discordgo.ApplicationCommand{
	{
		Name:        "dashboard",
		Description: "Opens the server configuration dashboard.",
	},
}

// Bot represents an instance of the reaction role bot.
type Bot struct {
	session            *discordgo.Session
	store              dal.MenuStore
	mutator            discordutils.RoleMutator
	responder          discordutils.Responder
	events             *event.Manager
	log                zerolog.Logger
	guildID            string
	registeredCommands []*discordgo.ApplicationCommand

	// menuLocks serialises wizard steps and publishes per menu;
	// memberLocks serialises toggles and syncs per member identity.
	menuLocks   dal.KeyedMutex
	memberLocks dal.KeyedMutex
}

func (bot *Bot) initSession(token string) error {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return err
	}

	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged |
		discordgo.IntentsGuildMembers

	session.AddHandler(func(*discordgo.Session, *discordgo.Ready) {
		bot.log.Info().Msg("Bot is up!")
	})

	session.AddHandler(func(
		s *discordgo.Session,
		i *discordgo.InteractionCreate,
	) {
		bot.Dispatch(i)
	})

	if err := session.Open(); err != nil {
		return err
	}

	bot.session = session
	return nil
}

func (bot *Bot) registerCommands(guildID string) error {
	for _, command := range botCommands {
		newCommand, err := bot.session.ApplicationCommandCreate(
			bot.session.State.User.ID,
			guildID,
			command,
		)
		if err != nil {
			return err
		}
		bot.registeredCommands = append(bot.registeredCommands, newCommand)
		bot.log.Info().Str("command", command.Name).Msg("Created command")
	}
	return nil
}

// New initialises a new reaction role bot, connects its session and
// registers its commands.
func New(
	token string,
	guildID string,
	store dal.MenuStore,
	logger zerolog.Logger,
) (*Bot, error) {
	bot := &Bot{
		store:   store,
		log:     logger,
		guildID: guildID,
		events:  event.NewManager("rolemenu"),
	}
	bot.registerListeners()

	if err := bot.initSession(token); err != nil {
		return nil, err
	}
	bot.mutator = discordutils.SessionRoleMutator{Session: bot.session}
	bot.responder = discordutils.SessionResponder{Session: bot.session}

	if err := bot.registerCommands(guildID); err != nil {
		return nil, err
	}

	return bot, nil
}

// Shutdown shuts down the bot cleanly.
func (bot *Bot) Shutdown() {
	bot.log.Info().Msg("Shutting down.")

	for _, command := range bot.registeredCommands {
		err := bot.session.ApplicationCommandDelete(
			bot.session.State.User.ID,
			bot.guildID,
			command.ID,
		)
		if err != nil {
			bot.log.Error().
				Err(err).
				Str("command", command.Name).
				Msg("Failed to delete command")
		} else {
			bot.log.Info().Str("command", command.Name).Msg("Deleted command")
		}
	}

	bot.session.Close()
}
