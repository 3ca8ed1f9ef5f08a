// internals/features/chat/service/llm_client.go
package service

import (
	"context"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// Parameter model mengikuti kebutuhan tanya-jawab materi: jawaban faktual
// (temperature rendah) dan ringkas.
const (
	chatTemperature     = 0.2
	chatMaxOutputTokens = 800
)

// PromptSegment satu potong prompt multimodal. Tepat satu field terisi:
// Text untuk segmen teks, ImageURL untuk segmen gambar.
type PromptSegment struct {
	Text     string
	ImageURL string
}

// Completer diabstraksi supaya ChatService bisa dites tanpa memanggil API
// sungguhan.
type Completer interface {
	Complete(ctx context.Context, segments []PromptSegment) (string, error)
}

// OpenAIClient memanggil Responses API dengan satu message user berisi
// seluruh segmen (preamble, konteks, riwayat, gambar, pertanyaan).
type OpenAIClient struct {
	client openai.Client
	model  shared.ChatModel
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  shared.ChatModel(model),
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, segments []PromptSegment) (string, error) {
	content := make(responses.ResponseInputMessageContentListParam, 0, len(segments))
	for _, seg := range segments {
		if seg.ImageURL != "" {
			content = append(content, responses.ResponseInputContentUnionParam{
				OfInputImage: &responses.ResponseInputImageParam{
					ImageURL: openai.String(seg.ImageURL),
					Detail:   responses.ResponseInputImageDetailAuto,
				},
			})
			continue
		}
		content = append(content, responses.ResponseInputContentParamOfInputText(seg.Text))
	}

	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(content, "user"),
			},
		},
		Temperature:     openai.Float(chatTemperature),
		MaxOutputTokens: openai.Int(chatMaxOutputTokens),
	})
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}
