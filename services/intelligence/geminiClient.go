// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"globaled/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// recommendationSchema constrains structured replies.
var recommendationSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"response": {
			Type:        genai.TypeString,
			Description: "Your conversational response to the user.",
		},
		"recommendedMentorId": {
			Type:        genai.TypeInteger,
			Description: "The ID of the most suitable mentor to recommend, or 0 if no one is a clear match.",
			Nullable:    true,
		},
	},
	Required: []string{"response"},
}

// GeminiClient implements Generator on the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrAINotConfigured
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// chat builds a fresh model per request; GenerativeModel settings are not safe to share.
func (g *GeminiClient) chat(req GenerateRequest) *genai.ChatSession {
	model := g.client.GenerativeModel(g.modelName)
	if req.SystemInstruction != "" {
		model.SystemInstruction = genai.NewUserContent(genai.Text(req.SystemInstruction))
	}
	if req.Structured {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = recommendationSchema
	}
	cs := model.StartChat()
	cs.History = toContents(req.History)
	return cs
}

func (g *GeminiClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	resp, err := g.chat(req).SendMessage(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return responseText(resp), nil
}

func (g *GeminiClient) GenerateStream(ctx context.Context, req GenerateRequest, onChunk func(string) error) error {
	iter := g.chat(req).SendMessageStream(ctx, genai.Text(req.Prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream error: %w", err)
		}
		if text := responseText(resp); text != "" {
			if err := onChunk(text); err != nil {
				return err
			}
		}
	}
}

// toContents converts history to Gemini contents. Gemini expects the history to
// open with a user turn, so leading model turns (greetings) and empty turns are dropped.
func toContents(history []Turn) []*genai.Content {
	var out []*genai.Content
	for _, t := range history {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		if len(out) == 0 && t.Role != models.MessageRoleUser {
			continue
		}
		out = append(out, &genai.Content{
			Role:  string(t.Role),
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return out
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String()
}
