// Package describe converts recorded action events into natural-language
// description lines.
package describe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/openadapt/oadesc/models"
)

// systemPrompt pins the model to the one-sentence output the writer expects.
const systemPrompt = `You convert one recorded UI action into exactly one short declarative sentence.
Match this style: "Move mouse to 'Calculator icon'", "Left singleclick 'Calculator icon'", "Press 'enter'", "Type 'hello'".
Reply with the sentence only, no numbering, no quotes around the whole sentence, no explanation.`

// Generator produces one natural-language sentence for one action event.
// Each call is independent; implementations must be safe for concurrent use.
type Generator interface {
	Describe(ctx context.Context, event models.ActionEvent) (string, error)
}

// ChatModelGenerator implements Generator over an Eino chat model, with
// bounded exponential backoff for transient call failures.
type ChatModelGenerator struct {
	chatModel  model.BaseChatModel
	maxRetries int
	timeout    time.Duration
}

// NewChatModelGenerator wraps chatModel. maxRetries is the number of
// retries after the first attempt; timeout bounds each attempt.
func NewChatModelGenerator(chatModel model.BaseChatModel, maxRetries int, timeout time.Duration) *ChatModelGenerator {
	return &ChatModelGenerator{
		chatModel:  chatModel,
		maxRetries: maxRetries,
		timeout:    timeout,
	}
}

const (
	retryBaseDelay = 2 * time.Second
	retryMaxDelay  = 8 * time.Second
)

// Describe sends the event's textual encoding to the chat model and
// returns the generated sentence. An empty reply after retries is an error:
// the caller cannot number a blank line.
func (g *ChatModelGenerator) Describe(ctx context.Context, event models.ActionEvent) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(systemPrompt),
		schema.UserMessage(event.PromptText()),
	}

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			if delay > retryMaxDelay {
				delay = retryMaxDelay
			}
			slog.Warn("generation call failed, retrying", "delay", delay, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		sentence, err := g.generate(ctx, messages)
		if err != nil {
			lastErr = err
			continue
		}
		return sentence, nil
	}
	return "", lastErr
}

func (g *ChatModelGenerator) generate(ctx context.Context, messages []*schema.Message) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}

	sentence := Flatten(resp.Content)
	if sentence == "" {
		return "", fmt.Errorf("llm returned an empty description")
	}
	return sentence, nil
}

// Flatten collapses all whitespace runs, including embedded newlines, to
// single spaces. Keeps the one-sentence-per-line output invariant without
// rejecting otherwise usable replies.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
