package services

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockImageClient struct {
	mock.Mock
}

func (m *mockImageClient) GenerateImage(ctx context.Context, prompt string) ([]byte, string, error) {
	args := m.Called(ctx, prompt)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

func Test_GenerateLogo_ReturnsDataURI(t *testing.T) {
	ai := &mockImageClient{}
	ai.On("GenerateImage", mock.Anything, mock.Anything).
		Return([]byte{0x89, 0x50}, "image/png", nil).Once()

	logo := NewLogoGenerator(ai).GenerateLogo(context.Background(), "Acme")
	assert.Contains(t, logo, "data:image/png;base64,")

	prompt := ai.Calls[0].Arguments.String(1)
	assert.Contains(t, prompt, `"Acme"`)
}

func Test_GenerateLogo_FailureIsNotAnError(t *testing.T) {
	ai := &mockImageClient{}
	ai.On("GenerateImage", mock.Anything, mock.Anything).
		Return(nil, "", errors.New("network down")).Once()

	logo := NewLogoGenerator(ai).GenerateLogo(context.Background(), "Acme")
	assert.Empty(t, logo)
}

func Test_GenerateLogo_MissingPayloadIsNotAnError(t *testing.T) {
	ai := &mockImageClient{}
	ai.On("GenerateImage", mock.Anything, mock.Anything).
		Return([]byte{}, "image/png", nil).Once()

	logo := NewLogoGenerator(ai).GenerateLogo(context.Background(), "Acme")
	assert.Empty(t, logo)
}
