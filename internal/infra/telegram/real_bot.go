// Package telegram is the bot front-end: it polls Telegram for updates,
// registers callers with the backend and hands out Mini App buttons.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-birthday-app/internal/config"
	"telegram-birthday-app/internal/infra/backend"
	"telegram-birthday-app/internal/infra/logging"
	"telegram-birthday-app/internal/infra/metrics"
)

const (
	textChooseAction  = "Выберите действие для дальнейшего взаимодействия с ботом:"
	textLookupFailed  = "Ошибка: Пользователь не найден или возникла ошибка при запросе данных."
	buttonCreateOwn   = "Создать свой профиль"
	buttonViewForeign = "Посмотреть чужой профиль"
)

// Bot polls Telegram and serves /start and /help with Mini App keyboards.
type Bot struct {
	bot       *tgbotapi.BotAPI
	backend   *backend.Client
	publicURL string
	log       *zerolog.Logger

	// updateWorkers is how many goroutines process updates concurrently.
	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewBot(cfg config.BotConfig, miniApp config.MiniAppConfig, client *backend.Client, logger *zerolog.Logger) (*Bot, error) {
	if client == nil {
		return nil, errors.New("backend client is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}

	return &Bot{
		bot:           api,
		backend:       client,
		publicURL:     strings.TrimRight(miniApp.PublicURL, "/"),
		log:           logger,
		updateWorkers: workers,
	}, nil
}

// StartPolling begins polling Telegram for updates concurrently.
// It runs until ctx is canceled.
func (b *Bot) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	b.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < b.updateWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for {
				select {
				case update, ok := <-updateChan:
					if !ok {
						return
					}
					b.handleUpdate(ctx, update)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}

	// Dispatcher: feed updates into the worker channel.
	go func() {
		defer close(updateChan)
		for {
			select {
			case update := <-updates:
				select {
				case updateChan <- update:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	b.log.Info().Str("bot", b.bot.Self.UserName).Int("workers", b.updateWorkers).Msg("telegram polling started")

	<-ctx.Done()
	b.bot.StopReceivingUpdates()
	wg.Wait()
	return nil
}

// StopPolling stops the polling loop gracefully.
func (b *Bot) StopPolling() {
	if b.cancelPolling != nil {
		b.cancelPolling()
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	metrics.IncTelegramUpdate()

	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, msg.From.ID)

	switch msg.Command() {
	case "start", "help":
		metrics.IncTelegramCommand(msg.Command())
		b.handleStart(ctx, msg)
	}
}

// handleStart registers the caller and replies with Mini App buttons. With an
// argument (another user's id) it offers a deep link to that profile; lookup
// failures of any kind collapse into one generic error reply.
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	log := logging.With(ctx, b.log)
	from := msg.From

	photo := b.resolvePhotoURL(ctx, from.ID)

	payload := backend.UserPayload{
		UserID:    from.ID,
		FirstName: from.FirstName,
		Photo:     photo,
	}
	if from.LastName != "" {
		payload.LastName = &from.LastName
	}
	if from.UserName != "" {
		payload.Username = &from.UserName
	}

	if body, err := b.backend.SubmitUser(ctx, payload); err != nil {
		metrics.IncBackendCallFailure("submit_user")
		log.Warn().Err(err).Msg("submit user to backend")
	} else {
		log.Debug().Str("response", body).Msg("user submitted to backend")
	}

	arg := strings.TrimSpace(msg.CommandArguments())
	if arg == "" {
		reply := tgbotapi.NewMessage(msg.Chat.ID, greeting(from.FirstName, from.LastName))
		reply.ReplyMarkup = startKeyboard(b.publicURL, "")
		b.send(log, reply)
		return
	}

	foreignID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		b.send(log, tgbotapi.NewMessage(msg.Chat.ID, textLookupFailed))
		return
	}

	foreign, err := b.backend.FetchUser(ctx, foreignID)
	if err != nil {
		metrics.IncBackendCallFailure("fetch_user")
		log.Warn().Err(err).Int64("foreign_id", foreignID).Msg("fetch foreign user")
		b.send(log, tgbotapi.NewMessage(msg.Chat.ID, textLookupFailed))
		return
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, textChooseAction)
	reply.ReplyMarkup = startKeyboard(b.publicURL, profileLink(b.publicURL, foreign.UserID))
	b.send(log, reply)
}

func (b *Bot) send(log *zerolog.Logger, msg tgbotapi.MessageConfig) {
	if _, err := b.bot.Send(msg); err != nil {
		log.Error().Err(err).Msg("send telegram message")
	}
}

// resolvePhotoURL fetches the caller's most recent profile photo and builds a
// direct download link. Best effort: any failure means "no photo".
func (b *Bot) resolvePhotoURL(ctx context.Context, tgID int64) *string {
	log := logging.With(ctx, b.log)

	photos, err := b.bot.GetUserProfilePhotos(tgbotapi.UserProfilePhotosConfig{UserID: tgID, Limit: 1})
	if err != nil {
		metrics.IncPhotoLookupFailure()
		log.Warn().Err(err).Msg("get profile photos")
		return nil
	}

	fileID, ok := photoFileID(photos)
	if !ok {
		return nil
	}

	file, err := b.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		metrics.IncPhotoLookupFailure()
		log.Warn().Err(err).Msg("get photo file")
		return nil
	}

	url := file.Link(b.bot.Token)
	return &url
}

// photoFileID picks the file id of the most recent photo's first size
// variant (the smallest thumbnail — enough for the Mini App avatar).
func photoFileID(photos tgbotapi.UserProfilePhotos) (string, bool) {
	if photos.TotalCount == 0 || len(photos.Photos) == 0 || len(photos.Photos[0]) == 0 {
		return "", false
	}
	return photos.Photos[0][0].FileID, true
}

func greeting(firstName, lastName string) string {
	return fmt.Sprintf("Привет %s!", fullName(firstName, lastName))
}

func fullName(firstName, lastName string) string {
	if lastName == "" {
		return firstName
	}
	return firstName + " " + lastName
}

func profileLink(base string, tgID int64) string {
	return fmt.Sprintf("%s/profile/%d", strings.TrimRight(base, "/"), tgID)
}

// startKeyboard builds the Mini App keyboard. When viewURL is set, the
// "view their profile" button goes on the first row, above "create your own".
func startKeyboard(createURL, viewURL string) tgbotapi.InlineKeyboardMarkup {
	createRow := []tgbotapi.InlineKeyboardButton{{
		Text:   buttonCreateOwn,
		WebApp: &tgbotapi.WebAppInfo{URL: createURL},
	}}

	if viewURL == "" {
		return tgbotapi.InlineKeyboardMarkup{
			InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{createRow},
		}
	}

	viewRow := []tgbotapi.InlineKeyboardButton{{
		Text:   buttonViewForeign,
		WebApp: &tgbotapi.WebAppInfo{URL: viewURL},
	}}
	return tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{viewRow, createRow},
	}
}
