package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"time"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vlatan/transcript-bot/internal/integrations/yt"
	"github.com/vlatan/transcript-bot/internal/transcripts"
)

// HandleUpdate answers a single update.
// Only text messages are handled, everything else is ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {

	msg := update.Message

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic while handling update %d: %v\n%s", update.UpdateID, r, debug.Stack())
			if msg != nil && msg.Chat != nil {
				b.reply(ctx, msg, ErrUnexpectedMessage)
			}
		}
	}()

	if msg == nil || msg.Chat == nil {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	if msg.Text != "" {
		b.handleText(ctx, msg)
	}
}

// Unknown commands get no answer
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.reply(ctx, msg, WelcomeMessage)
	case "help":
		b.reply(ctx, msg, HelpMessage)
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {

	if !yt.IsYouTubeURL(msg.Text) {
		b.reply(ctx, msg, NotYouTubeMessage)
		return
	}

	videoID := yt.ExtractVideoID(msg.Text)
	if videoID == "" {
		b.reply(ctx, msg, ErrInvalidURLMessage)
		return
	}

	processing, err := b.reply(ctx, msg, ProcessingMessage)
	if err != nil {
		return
	}

	doc, err := b.transcripts.Extract(ctx, videoID)
	if err != nil {
		b.edit(ctx, processing, failureText(videoID, err))
		return
	}

	document := tgbotapi.NewDocument(msg.Chat.ID, tgbotapi.FileBytes{
		Name:  doc.Filename,
		Bytes: doc.Content,
	})
	document.Caption = SuccessMessage
	document.ReplyToMessageID = msg.MessageID

	if _, err := b.send(ctx, document); err != nil {
		log.Printf("Failed to send the transcript of video '%s': %v", videoID, err)
		b.edit(ctx, processing, generalFailure(err))
		return
	}

	log.Printf("Sent the '%s' transcript of video '%s' to chat %d", doc.Language, videoID, msg.Chat.ID)

	deletion := tgbotapi.NewDeleteMessage(processing.Chat.ID, processing.MessageID)
	if err := b.request(ctx, deletion); err != nil {
		log.Printf("Failed to delete the processing message in chat %d: %v", processing.Chat.ID, err)
	}
}

// Time left to tell the user about a failure once the request context expired
const noticeTimeout = 10 * time.Second

// The context to send on. An expired request context is swapped
// for a short detached one, so failures still reach the user.
func deliveryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx.Err() == nil {
		return ctx, func() {}
	}
	return context.WithTimeout(context.WithoutCancel(ctx), noticeTimeout)
}

// Reply to the message with a text, logging a failure
func (b *Bot) reply(ctx context.Context, msg *tgbotapi.Message, text string) (tgbotapi.Message, error) {

	ctx, cancel := deliveryContext(ctx)
	defer cancel()

	reply := tgbotapi.NewMessage(msg.Chat.ID, truncate(text))
	reply.ReplyToMessageID = msg.MessageID

	sent, err := b.send(ctx, reply)
	if err != nil {
		log.Printf("Failed to reply in chat %d: %v", msg.Chat.ID, err)
		return sent, err
	}

	if sent.Chat == nil {
		sent.Chat = msg.Chat
	}

	return sent, nil
}

// Replace the text of a sent message, logging a failure
func (b *Bot) edit(ctx context.Context, msg tgbotapi.Message, text string) {

	ctx, cancel := deliveryContext(ctx)
	defer cancel()

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, msg.MessageID, truncate(text))
	if err := b.request(ctx, edit); err != nil {
		log.Printf("Failed to edit message %d in chat %d: %v", msg.MessageID, msg.Chat.ID, err)
	}
}

// The text shown when the pipeline failed
func failureText(videoID string, err error) string {

	var noTranscript *transcripts.NoTranscriptError
	if !errors.As(err, &noTranscript) {
		log.Printf("Error processing video '%s': %v", videoID, err)
		return generalFailure(err)
	}

	text := ErrNoTranscriptMessage
	if summary := transcripts.Summary(noTranscript.Available, availableLimit); summary != "" {
		text += "\n\nAvailable transcripts:\n" + summary
	}

	return fmt.Sprintf("%s\n\nError: %s", text, noTranscript.Reason)
}

func generalFailure(err error) string {
	return fmt.Sprintf("%s\n\nError: %v", ErrGeneralMessage, err)
}

// Cut the text to the Telegram message limit,
// which counts UTF-16 code units
func truncate(text string) string {

	if len(utf16.Encode([]rune(text))) <= maxMessageLength {
		return text
	}

	// Leave room for the ellipsis
	limit := maxMessageLength - 1
	length := 0
	for i, r := range text {
		n := utf16.RuneLen(r)
		if length+n > limit {
			return text[:i] + "…"
		}
		length += n
	}

	return text
}
