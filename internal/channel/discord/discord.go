package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/shivamsuchak/q-revised/internal/channel"
)

// Adapter bridges Discord direct messages and mentions into the
// dispatcher.
type Adapter struct {
	token    string
	session  *discordgo.Session
	incoming chan *channel.Message
}

// New creates a Discord adapter. An empty token leaves it disabled.
func New(token string) *Adapter {
	return &Adapter{
		token:    token,
		incoming: make(chan *channel.Message, 100),
	}
}

func (d *Adapter) Name() string {
	return "discord"
}

func (d *Adapter) IsEnabled() bool {
	return d.token != ""
}

func (d *Adapter) Start(ctx context.Context) error {
	session, err := discordgo.New("Bot " + d.token)
	if err != nil {
		return err
	}
	d.session = session

	session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author.Bot {
			return
		}

		// Guild messages are handled only when the bot is mentioned.
		if m.GuildID != "" && !mentioned(s.State.User.ID, m.Mentions) {
			return
		}

		d.incoming <- &channel.Message{
			ID:      m.ID,
			Channel: d.Name(),
			UserID:  m.Author.ID,
			Content: m.Content,
			Metadata: map[string]string{
				"guild_id":    m.GuildID,
				"channel_id":  m.ChannelID,
				"author_name": m.Author.Username,
			},
			Timestamp: m.Timestamp.Unix(),
		}
	})

	if err := session.Open(); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		session.Close()
	}()
	return nil
}

func (d *Adapter) Stop() error {
	if d.session != nil {
		d.session.Close()
	}
	close(d.incoming)
	return nil
}

func (d *Adapter) SendMessage(userID string, resp *channel.Response) error {
	dm, err := d.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = d.session.ChannelMessageSend(dm.ID, resp.Content)
	return err
}

func (d *Adapter) Incoming() <-chan *channel.Message {
	return d.incoming
}

func mentioned(botID string, mentions []*discordgo.User) bool {
	for _, m := range mentions {
		if m.ID == botID {
			return true
		}
	}
	return false
}
