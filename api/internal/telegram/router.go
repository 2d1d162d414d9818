package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"span-checker/api/internal/checker"
	"span-checker/api/internal/llm/types"
	"span-checker/api/internal/util"
)

// Telegram rejects messages over 4096 characters; keep some slack for headers.
const maxMessageRunes = 4000

const helpText = `Send me your Spanish composition (for example, about your last birthday) as a plain text message.
I will reply with the corrected text and short English explanations of the main corrections.

Commands: /help, /ping`

// BotClient is the part of *tgbotapi.BotAPI the router needs.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Router struct {
	Bot BotClient
	Svc *checker.Service
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, helpText)
	case "ping":
		r.send(cid, "ok: mizzou-span-1200")
	default:
		r.send(cid, "Unknown command. Try /help")
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	r.checkText(ctx, upd.Message.Chat.ID, upd.Message.Text)
}

func (r *Router) checkText(ctx context.Context, cid int64, text string) {
	if strings.TrimSpace(text) == "" {
		r.send(cid, "Text is empty")
		return
	}
	_, _ = r.Bot.Request(tgbotapi.NewChatAction(cid, tgbotapi.ChatTyping))

	res, err := r.Svc.Check(ctx, checker.SourceTelegram, text)
	if errors.Is(err, checker.ErrEmptyText) {
		r.send(cid, "Text is empty")
		return
	}
	if err != nil {
		r.send(cid, "Error: "+err.Error())
		return
	}
	for _, part := range util.SplitRunes(formatReply(res.Parsed), maxMessageRunes) {
		r.send(cid, part)
	}
}

// formatReply renders the result as plain text; explanations are markdown from the
// model and are not guaranteed to parse under Telegram's Markdown rules.
func formatReply(cr types.CheckResponse) string {
	var b strings.Builder
	b.WriteString("✍️ Corrected text:\n\n")
	if s := strings.TrimSpace(cr.CorrectedText); s != "" {
		b.WriteString(s)
	} else {
		b.WriteString("(empty)")
	}
	if s := strings.TrimSpace(cr.ExplanationsMD); s != "" {
		b.WriteString("\n\n📝 Explanations:\n\n")
		b.WriteString(s)
	}
	return b.String()
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("telegram send failed")
	}
}
