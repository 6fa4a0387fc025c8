package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/OBATA-VTU/oGig/internal/logger"
	log "github.com/sirupsen/logrus"
)

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, string, error)
}

// LogoGenerator synthesizes a company logo as a data URI. Logo creation
// is a non-critical enhancement: any failure yields an empty string, not
// an error.
type LogoGenerator struct {
	ai imageGenerator
}

func NewLogoGenerator(ai imageGenerator) *LogoGenerator {
	return &LogoGenerator{ai: ai}
}

func (g *LogoGenerator) GenerateLogo(ctx context.Context, companyName string) string {

	// the client exposes no aspect-ratio setting, so the 1:1 framing is
	// pinned in the prompt
	prompt := fmt.Sprintf(`A professional, minimalist, and modern vector logo for a company named %q. `+
		`The logo should be clean, centered, and suitable for a professional business profile. `+
		`High contrast, white background, square 1:1 composition.`, companyName)

	data, mimeType, err := g.ai.GenerateImage(ctx, prompt)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("logo generation failed for %q: %v", companyName, err)
		return ""
	}
	if len(data) == 0 {
		return ""
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
}
