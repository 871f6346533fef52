package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xLLM73/job-scraper/internal/clients/firecrawl"
	"github.com/0xLLM73/job-scraper/internal/entities"
)

func Test_MapOverview_ShouldFillPostingAndKeepRawPayload(t *testing.T) {
	mapper := NewEntityMapper()

	overview := &firecrawl.ScrapeData{
		Extract: map[string]any{
			"job_title":        "Senior Go Engineer",
			"company_name":     "Acme",
			"location":         "Berlin",
			"salary_range":     "€80,000 - €100,000",
			"responsibilities": []any{"build services", "review code"},
		},
		Markdown: "# Senior Go Engineer",
	}

	posting := mapper.MapOverview("https://jobs.lever.co/acme/1", overview)

	assert.Equal(t, "Senior Go Engineer", posting.JobTitle)
	assert.Equal(t, "Acme", posting.CompanyName)
	require.NotNil(t, posting.Location)
	assert.Equal(t, "Berlin", *posting.Location)
	require.NotNil(t, posting.SalaryMin)
	assert.Equal(t, 80000, *posting.SalaryMin)
	assert.Equal(t, 100000, *posting.SalaryMax)
	assert.Equal(t, "EUR", posting.SalaryCurrency)
	assert.Equal(t, entities.PlatformLever, posting.ATSPlatform)
	assert.Equal(t, []string{"build services", "review code"}, posting.Responsibilities)
	assert.Equal(t, "# Senior Go Engineer", posting.Metadata["scraped_markdown"])
	assert.Equal(t, overview.Extract, posting.Metadata["original_extract"])
}

func Test_MapOverview_NilPayload_ShouldDegradeToDefaults(t *testing.T) {
	mapper := NewEntityMapper()

	posting := mapper.MapOverview("https://careers.acme.com/jobs/1", nil)

	assert.Equal(t, "https://careers.acme.com/jobs/1", posting.URL)
	assert.Empty(t, posting.JobTitle)
	assert.Nil(t, posting.SalaryMin)
	assert.Equal(t, "USD", posting.SalaryCurrency)
	assert.Equal(t, entities.PlatformUnknown, posting.ATSPlatform)
	assert.Equal(t, []string{}, posting.Responsibilities)
	assert.Equal(t, []string{}, posting.Qualifications)
	assert.Equal(t, []string{}, posting.Benefits)
}

func Test_MapOverview_IsIdempotent(t *testing.T) {
	mapper := NewEntityMapper()
	overview := &firecrawl.ScrapeData{
		Extract:  map[string]any{"job_title": "Engineer", "company_name": "Acme"},
		Markdown: "body",
	}

	first := mapper.MapOverview("https://jobs.lever.co/acme/1", overview)
	second := mapper.MapOverview("https://jobs.lever.co/acme/1", overview)

	assert.Equal(t, first, second)
}

func Test_MapApplicationForm_ShouldDeriveFormURLAndDefaults(t *testing.T) {
	mapper := NewEntityMapper()

	form := mapper.MapApplicationForm("https://jobs.lever.co/acme/1/", nil)

	assert.Equal(t, "https://jobs.lever.co/acme/1/application", form.FormURL)
	assert.Equal(t, "POST", form.FormMethod)
	assert.False(t, form.RequiresAuth)
	assert.False(t, form.HasCaptcha)
}

func Test_MapApplicationForm_URLAlreadyPointsAtApplication(t *testing.T) {
	mapper := NewEntityMapper()

	form := mapper.MapApplicationForm("https://jobs.lever.co/acme/1/application", map[string]any{
		"form_method":   "GET",
		"requires_auth": true,
	})

	assert.Equal(t, "https://jobs.lever.co/acme/1/application", form.FormURL)
	assert.Equal(t, "GET", form.FormMethod)
	assert.True(t, form.RequiresAuth)
}

func Test_MapFormFields_NamelessFieldsGetDistinctPositionalNames(t *testing.T) {
	mapper := NewEntityMapper()

	fields := mapper.MapFormFields([]any{
		map[string]any{},
		map[string]any{},
	})

	require.Len(t, fields, 2)
	assert.Equal(t, "field_0", fields[0].FieldName)
	assert.Equal(t, "field_1", fields[1].FieldName)
	assert.Equal(t, 0, fields[0].FieldOrder)
	assert.Equal(t, 1, fields[1].FieldOrder)
	assert.Equal(t, "text", fields[0].FieldType)
	assert.Equal(t, "public", fields[0].Visibility)
	assert.NotNil(t, fields[0].ValidationRules)
	assert.NotNil(t, fields[0].ConditionalLogic)
}

func Test_MapFormFields_ShouldPreserveInputOrder(t *testing.T) {
	mapper := NewEntityMapper()

	fields := mapper.MapFormFields([]any{
		map[string]any{"field_name": "email", "field_type": "email", "is_required": true},
		map[string]any{"field_name": "resume", "field_type": "file"},
		map[string]any{"field_name": "cover_letter"},
	})

	require.Len(t, fields, 3)
	assert.Equal(t, "email", fields[0].FieldName)
	assert.Equal(t, "resume", fields[1].FieldName)
	assert.Equal(t, "cover_letter", fields[2].FieldName)
	assert.True(t, fields[0].IsRequired)
	assert.Equal(t, "text", fields[2].FieldType)
	for i, field := range fields {
		assert.Equal(t, i, field.FieldOrder)
	}
}

func Test_MapCompetencyQuestions_DefaultsAndOrdering(t *testing.T) {
	mapper := NewEntityMapper()

	questions := mapper.MapCompetencyQuestions([]any{
		map[string]any{"question_text": "Tell us about a conflict", "word_limit": float64(250)},
		map[string]any{"question_text": "Why Acme?", "question_type": "motivational"},
	})

	require.Len(t, questions, 2)
	assert.Equal(t, "behavioral", questions[0].QuestionType)
	require.NotNil(t, questions[0].WordLimit)
	assert.Equal(t, 250, *questions[0].WordLimit)
	assert.Equal(t, "motivational", questions[1].QuestionType)
	assert.Equal(t, 0, questions[0].QuestionOrder)
	assert.Equal(t, 1, questions[1].QuestionOrder)
}

func Test_MapScrapedJob_NilForm_ShouldYieldPostingOnlyRecord(t *testing.T) {
	mapper := NewEntityMapper()
	overview := &firecrawl.ScrapeData{
		Extract: map[string]any{"job_title": "Engineer", "company_name": "Acme"},
	}

	record := mapper.MapScrapedJob("https://jobs.ashbyhq.com/acme/1", overview, nil)

	assert.Equal(t, "Engineer", record.JobPosting.JobTitle)
	assert.Equal(t, "https://jobs.ashbyhq.com/acme/1/application", record.ApplicationForm.FormURL)
	assert.Empty(t, record.FormFields)
	assert.Empty(t, record.CompetencyQuestions)
	assert.Nil(t, record.StoredJobID)
}
