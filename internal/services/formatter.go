package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/OBATA-VTU/oGig/internal/logger"
	"github.com/OBATA-VTU/oGig/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"github.com/samber/lo"
	"github.com/xeipuuv/gojsonschema"
)

type jsonGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type logoMaker interface {
	GenerateLogo(ctx context.Context, companyName string) string
}

// Formatter turns raw pasted text into a structured posting via the
// generative API and publishes the result as an admin posting.
type Formatter struct {
	ai       jsonGenerator
	board    boardWriter
	logos    logoMaker
	validate *validator.Validate
	now      func() time.Time
}

func NewFormatterService(ai jsonGenerator, board boardWriter) *Formatter {
	return &Formatter{
		ai:       ai,
		board:    board,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithLogoGenerator attaches a best-effort logo to each admin posting.
func (f *Formatter) WithLogoGenerator(logos logoMaker) *Formatter {
	f.logos = logos
	return f
}

// Format sends the raw text with a strict output schema and parses the
// structured result. An empty or malformed model response yields a zero
// value rather than an error; only an outright API failure is one.
func (f *Formatter) Format(ctx context.Context, rawText string) (models.AIProcessedJob, error) {

	start := time.Now()
	raw, err := f.ai.GenerateJSON(ctx, formattingPrompt(rawText), processedJobSchema())
	metrics.AIFormattingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeAiApi).
			Errorf("formatting call failed: %v", err)
		return models.AIProcessedJob{}, faults.Wrap(faults.AIFormatting, err, "processing failed")
	}

	var result models.AIProcessedJob
	if !conformsToProcessedJobShape(raw) {
		log.Warnf("model returned a non-conforming document, treating as empty")
		return result, nil
	}

	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		log.Warnf("model returned unparseable json, treating as empty: %v", err)
		return models.AIProcessedJob{}, nil
	}

	return result, nil
}

// FormatAndPublish runs Format and pushes the result through the same
// submission validation a user posting gets. Missing required fields in
// the model output are rejected here, not inside Format.
func (f *Formatter) FormatAndPublish(ctx context.Context, rawText string) (*models.Job, error) {

	result, err := f.Format(ctx, rawText)
	if err != nil {
		return nil, err
	}

	job, err := validateSubmission(f.validate, models.JobSubmission{
		Title:        result.Title,
		Company:      result.Company,
		Location:     result.Location,
		Description:  result.Description,
		Type:         result.Type,
		Category:     result.Category,
		Salary:       result.Salary,
		Requirements: result.Requirements,
		Procedure:    result.Procedure,
		Tags:         strings.Join(result.Tags, ","),
		Whatsapp:     result.Whatsapp,
		Phone:        result.Phone,
		Email:        result.Email,
		Link:         result.Link,
	})
	if err != nil {
		return nil, err
	}

	job.PostedAt = f.now().UTC()
	job.IsAdminPosted = true
	if f.logos != nil {
		job.Logo = f.logos.GenerateLogo(ctx, job.Company)
	}

	id, err := f.board.Create(ctx, *job)
	if err != nil {
		return nil, err
	}
	job.ID = id

	log.Infof("admin posting %v published from raw text", id)
	return job, nil
}

// formattingPrompt embeds the raw text in the fixed instruction set the
// board uses for admin postings.
func formattingPrompt(rawText string) string {
	return fmt.Sprintf(`You are a professional business analyst for oGig, Nigeria's premier job nexus.
Your task is to structure the provided raw input into a professional job posting.

CRITICAL INSTRUCTIONS:
1. Output MUST be purely professional and business-oriented.
2. NEVER mention yourself, AI, or LLMs in the output.
3. Location MUST be in Nigeria. Format as "State, Area" (e.g., Lagos, Lekki).
4. Contacts: Extract every WhatsApp number, Phone, and Email found.
5. Requirements: Create a clear bulleted list of skills or qualifications.
6. Procedure: Create a step-by-step application guide.
7. Language: Professional, encouraging, and clear.

Input text: "%s"`, rawText)
}

func processedJobSchema() *genai.Schema {
	typeValues := lo.Map(models.JobTypes(), func(t models.JobType, _ int) string {
		return string(t)
	})

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":        {Type: genai.TypeString},
			"company":      {Type: genai.TypeString},
			"description":  {Type: genai.TypeString},
			"requirements": {Type: genai.TypeString},
			"procedure":    {Type: genai.TypeString},
			"location":     {Type: genai.TypeString},
			"type":         {Type: genai.TypeString, Enum: typeValues},
			"category":     {Type: genai.TypeString},
			"salary":       {Type: genai.TypeString},
			"tags":         {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"whatsapp":     {Type: genai.TypeString},
			"phone":        {Type: genai.TypeString},
			"email":        {Type: genai.TypeString},
			"link":         {Type: genai.TypeString},
		},
		Required: []string{"title", "company", "description", "requirements",
			"procedure", "location", "type", "category", "tags"},
	}
}

// processedJobJSONSchema double-checks the model output shape on our
// side; the API-level schema is advisory only.
const processedJobJSONSchema = `{
	"type": "object",
	"properties": {
		"title": {"type": "string"},
		"company": {"type": "string"},
		"description": {"type": "string"},
		"requirements": {"type": "string"},
		"procedure": {"type": "string"},
		"location": {"type": "string"},
		"type": {"type": "string"},
		"category": {"type": "string"},
		"salary": {"type": "string"},
		"tags": {"type": "array", "items": {"type": "string"}},
		"whatsapp": {"type": "string"},
		"phone": {"type": "string"},
		"email": {"type": "string"},
		"link": {"type": "string"}
	}
}`

func conformsToProcessedJobShape(raw string) bool {
	if strings.TrimSpace(raw) == "" {
		return false
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(processedJobJSONSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return false
	}
	return result.Valid()
}
