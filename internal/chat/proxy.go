package chat

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"pdfviewer/internal/model"
)

// historyLimit bounds how much conversation is forwarded upstream.
const historyLimit = 10

// selectionQuoteLimit caps how much selected text a canned reply echoes back.
const selectionQuoteLimit = 200

const missingKeyReply = "OpenAI API key not found. Set OPENAI_API_KEY in your environment or .env file to enable AI chat."

// Proxy turns a user chat message plus viewer context into an assistant
// reply. Every failure path resolves to a displayable string; Complete never
// returns an error.
type Proxy struct {
	completer Completer
}

// NewProxy builds a chat proxy. completer may be nil when no credentials are
// configured; the proxy then answers with a fixed warning and makes no
// outbound calls.
func NewProxy(completer Completer) *Proxy {
	return &Proxy{completer: completer}
}

// Complete assembles the system instruction and trimmed history, calls the
// completion backend, and degrades to a canned reply on any failure.
func (p *Proxy) Complete(ctx context.Context, message string, history []model.ChatMessage, docCtx model.ChatContext) string {
	if p.completer == nil {
		return missingKeyReply
	}

	msgs := p.assemble(message, history, docCtx)

	reply, err := p.completer.Complete(ctx, msgs)
	if err != nil {
		return p.degraded(err, message, docCtx)
	}
	return strings.TrimSpace(reply)
}

func (p *Proxy) assemble(message string, history []model.ChatMessage, docCtx model.ChatContext) []model.ChatMessage {
	selected := docCtx.SelectedText
	if selected == "" {
		selected = "None"
	}
	system := fmt.Sprintf(`You are a helpful PDF assistant. You're helping the user understand a PDF document.

Current PDF Context:
- Filename: %s
- Current Page: %d of %d
- Selected Text: %s

You can help with explaining content, summarizing sections or pages, answering questions about the document, and discussing selected text. Be concise, helpful, and focus on the PDF content. If the user asks about specific pages or sections, acknowledge the current page context.`,
		docCtx.Filename, docCtx.CurrentPage, docCtx.TotalPages, selected)

	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}

	msgs := make([]model.ChatMessage, 0, len(history)+2)
	msgs = append(msgs, model.ChatMessage{Role: "system", Content: system})
	msgs = append(msgs, history...)
	msgs = append(msgs, model.ChatMessage{Role: "user", Content: message})
	return msgs
}

// degraded classifies the upstream failure and picks a user-facing reply.
func (p *Proxy) degraded(err error, message string, docCtx model.ChatContext) string {
	switch classify(err) {
	case errAuth:
		return "Invalid OpenAI API key. Please check your OPENAI_API_KEY configuration."
	case errRateLimit:
		return "OpenAI API rate limit exceeded. Please try again in a moment."
	case errNetwork:
		return "Network connection issue. Please check your connection and try again."
	}
	return canned(message, docCtx)
}

type errClass int

const (
	errUnknown errClass = iota
	errAuth
	errRateLimit
	errNetwork
)

func classify(err error) errClass {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return errAuth
		case 429:
			return errRateLimit
		}
		return errUnknown
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return errNetwork
	}
	return errUnknown
}

// canned produces a deterministic fallback reply when the failure cannot be
// classified.
func canned(message string, docCtx model.ChatContext) string {
	if docCtx.SelectedText != "" {
		quote := docCtx.SelectedText
		if r := []rune(quote); len(r) > selectionQuoteLimit {
			quote = string(r[:selectionQuoteLimit]) + "..."
		}
		return fmt.Sprintf("I can see you've selected: \"%s\"\n\nWhat would you like me to explain about this selection? (AI chat temporarily unavailable)", quote)
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "summary"):
		return fmt.Sprintf("I'd be happy to provide a summary of page %d of this document. What specific section interests you? (AI chat temporarily unavailable)", docCtx.CurrentPage)
	case strings.Contains(lower, "explain"):
		return "I can help explain concepts from this PDF. Could you point me to the specific section or concept you'd like me to clarify? (AI chat temporarily unavailable)"
	}
	return fmt.Sprintf("I'm here to help you understand this PDF document. Currently viewing page %d of %d. What would you like to know? (AI chat temporarily unavailable)", docCtx.CurrentPage, docCtx.TotalPages)
}
