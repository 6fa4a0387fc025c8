package services

import (
	"context"
	"testing"

	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAiClient struct {
	mock.Mock
}

func (m *mockAiClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

const wellFormedResponse = `{
	"title": "Driver",
	"company": "Acme Logistics",
	"description": "Drive deliveries across the city.",
	"requirements": "- Valid license",
	"procedure": "1. Send your CV",
	"location": "Lagos, Ikeja",
	"type": "Gig",
	"category": "Logistics",
	"tags": ["driver", "lagos"],
	"whatsapp": "08012345678"
}`

func Test_Format_EmbedsRawTextAndSchemaInRequest(t *testing.T) {
	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return(wellFormedResponse, nil).Once()

	formatter := NewFormatterService(ai, &mockBoard{})

	rawText := "need a driver in Lagos whatsapp 08012345678"
	result, err := formatter.Format(context.Background(), rawText)
	assert.NoError(t, err)
	assert.Equal(t, "Driver", result.Title)
	assert.Equal(t, []string{"driver", "lagos"}, result.Tags)

	prompt := ai.Calls[0].Arguments.String(1)
	assert.Contains(t, prompt, rawText)
	assert.Contains(t, prompt, "State, Area")
	assert.Contains(t, prompt, "NEVER mention yourself, AI, or LLMs")

	schema := ai.Calls[0].Arguments.Get(2).(*genai.Schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Contains(t, schema.Properties, "tags")
	assert.Contains(t, schema.Required, "title")
}

func Test_Format_EmptyResponse_YieldsEmptyResultNotError(t *testing.T) {
	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return("", nil).Once()

	formatter := NewFormatterService(ai, &mockBoard{})

	result, err := formatter.Format(context.Background(), "need a driver in Lagos whatsapp 08012345678")
	assert.NoError(t, err)
	assert.True(t, result.IsEmpty())
}

func Test_Format_MalformedResponse_YieldsEmptyResultNotError(t *testing.T) {
	for _, response := range []string{"not json at all", `{"tags": "should-be-an-array"}`, `[1,2,3]`} {
		ai := &mockAiClient{}
		ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return(response, nil).Once()

		formatter := NewFormatterService(ai, &mockBoard{})

		result, err := formatter.Format(context.Background(), "raw text")
		assert.NoError(t, err)
		assert.True(t, result.IsEmpty())
	}
}

func Test_Format_ApiFailure_SurfacesAIFormattingFault(t *testing.T) {
	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("Error 500")).Once()

	formatter := NewFormatterService(ai, &mockBoard{})

	_, err := formatter.Format(context.Background(), "raw text")
	assert.True(t, faults.Is(err, faults.AIFormatting))
}

func Test_FormatAndPublish_PublishesAsAdminPosting(t *testing.T) {
	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return(wellFormedResponse, nil).Once()

	board := &mockBoard{}
	board.On("Create", mock.Anything, mock.Anything).Return("job-9", nil).Once()

	formatter := NewFormatterService(ai, board)

	job, err := formatter.FormatAndPublish(context.Background(), "need a driver")
	assert.NoError(t, err)

	assert.Equal(t, "job-9", job.ID)
	assert.True(t, job.IsAdminPosted)
	assert.False(t, job.PostedAt.IsZero())
	assert.Equal(t, []string{"driver", "lagos"}, job.TagsAsArray())
}

func Test_FormatAndPublish_AttachesGeneratedLogo(t *testing.T) {
	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return(wellFormedResponse, nil).Once()

	image := &mockImageClient{}
	image.On("GenerateImage", mock.Anything, mock.Anything).
		Return([]byte{0x89, 0x50}, "image/png", nil).Once()

	board := &mockBoard{}
	board.On("Create", mock.Anything, mock.Anything).Return("job-10", nil).Once()

	formatter := NewFormatterService(ai, board).WithLogoGenerator(NewLogoGenerator(image))

	job, err := formatter.FormatAndPublish(context.Background(), "need a driver")
	assert.NoError(t, err)
	assert.Contains(t, job.Logo, "data:image/png;base64,")

	created := board.Calls[0].Arguments.Get(1).(models.Job)
	assert.Equal(t, job.Logo, created.Logo)
}

func Test_FormatAndPublish_EmptyModelOutput_RejectedByValidationWithoutSave(t *testing.T) {
	ai := &mockAiClient{}
	ai.On("GenerateJSON", mock.Anything, mock.Anything, mock.Anything).Return("", nil).Once()

	board := &mockBoard{}
	formatter := NewFormatterService(ai, board)

	_, err := formatter.FormatAndPublish(context.Background(),
		"need a driver in Lagos whatsapp 08012345678")
	assert.True(t, faults.Is(err, faults.Validation))
	board.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
