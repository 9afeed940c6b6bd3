package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Sam-oo1/bussinBank/logger"
	"google.golang.org/genai"
)

// maxCalls bounds the function calls answering a single question.
const maxCalls = 8

// ErrTooManyCalls is returned when a model keeps calling functions instead of answering.
var ErrTooManyCalls = errors.New("too many function calls")

// Chat is a conversation with a model, *genai.Chat implements it.
type Chat interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Expert is a chat with a model that can call the functions of its Library.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	Library   Library
	chat      Chat
}

// Start opens the chat with the model.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return fmt.Errorf("could not start a chat with %s: %w", e.ModelName, err)
	}
	e.chat = chat
	return nil
}

// Ask sends parts and returns the text answer, making the function calls
// the model asks for along the way.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (string, error) {
	for range maxCalls {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return "", fmt.Errorf("no response from %s", e.Name)
		}
		content := resp.Candidates[0].Content

		var calls []*genai.Part
		for _, p := range content.Parts {
			if p.FunctionCall == nil {
				continue
			}
			if e.Library == nil {
				return "", fmt.Errorf("%s doesn't know how to make function calls", e.Name)
			}
			log := logger.FromContext(ctx)
			log.Debug().Str("function", p.FunctionCall.Name).Interface("args", p.FunctionCall.Args).Msg("function call")
			calls = append(calls, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
		}
		if len(calls) == 0 {
			return text(content), nil
		}
		// send the responses back until the model answers.
		parts = calls
	}
	return "", fmt.Errorf("%s: %w", e.Name, ErrTooManyCalls)
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
