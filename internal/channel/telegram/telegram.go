package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shivamsuchak/q-revised/internal/channel"
)

// Adapter bridges Telegram chats into the dispatcher.
type Adapter struct {
	bot      *tgbotapi.BotAPI
	token    string
	incoming chan *channel.Message
}

// New creates a Telegram adapter. An empty token leaves it disabled.
func New(token string) *Adapter {
	return &Adapter{
		token:    token,
		incoming: make(chan *channel.Message, 100),
	}
}

func (t *Adapter) Name() string {
	return "telegram"
}

func (t *Adapter) IsEnabled() bool {
	return t.token != ""
}

func (t *Adapter) Start(ctx context.Context) error {
	bot, err := tgbotapi.NewBotAPI(t.token)
	if err != nil {
		return err
	}
	t.bot = bot

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.bot.GetUpdatesChan(u)

	go func() {
		for update := range updates {
			if update.Message == nil {
				continue
			}
			t.incoming <- &channel.Message{
				ID:        strconv.Itoa(update.Message.MessageID),
				Channel:   t.Name(),
				UserID:    strconv.FormatInt(update.Message.Chat.ID, 10),
				Content:   update.Message.Text,
				Metadata:  map[string]string{"from_id": strconv.FormatInt(update.Message.From.ID, 10)},
				Timestamp: int64(update.Message.Date),
			}
		}
	}()
	return nil
}

func (t *Adapter) Stop() error {
	if t.bot != nil {
		t.bot.StopReceivingUpdates()
	}
	close(t.incoming)
	return nil
}

func (t *Adapter) SendMessage(userID string, resp *channel.Response) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return err
	}
	_, err = t.bot.Send(tgbotapi.NewMessage(chatID, resp.Content))
	return err
}

func (t *Adapter) Incoming() <-chan *channel.Message {
	return t.incoming
}
