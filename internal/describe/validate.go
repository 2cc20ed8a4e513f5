package describe

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/openadapt/oadesc/internal/promptfile"
)

// ValidateReplayability asks the model whether the numbered description
// list reads like items a replay system could execute. The verdict is
// advisory; the file has already been written when this runs.
func ValidateReplayability(ctx context.Context, chatModel model.BaseChatModel, lines []string) (bool, error) {
	prompt := fmt.Sprintf(
		"Please analyze the following list of descriptions:\n%s"+
			"Do these descriptions look like human-readable numbered items that could be used "+
			"to replay the actions in an automated system? Reply strictly with 'true' or 'false' only.",
		promptfile.Render(lines))

	resp, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return false, fmt.Errorf("validation call: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(resp.Content)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected validation verdict: %q", resp.Content)
	}
}
