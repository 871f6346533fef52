package services

import (
	"fmt"

	"github.com/0xLLM73/job-scraper/internal/clients/firecrawl"
	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/samber/lo"
)

// EntityMapper turns the loosely-typed extraction payloads coming back from
// the scraping service into defaulted, ordered entity records. Every mapping
// is total: missing or malformed fields degrade to defaults, they never abort
// the record.
type EntityMapper struct{}

func NewEntityMapper() *EntityMapper {
	return &EntityMapper{}
}

// MapScrapedJob assembles the full normalized record for one URL. The form
// payload may be nil when the application form scrape failed; the record is
// then posting-only with a defaulted form.
func (m *EntityMapper) MapScrapedJob(url string, overview *firecrawl.ScrapeData, form *firecrawl.ScrapeData) entities.ScrapedJob {

	record := entities.ScrapedJob{
		JobPosting: m.MapOverview(url, overview),
	}

	var formExtract map[string]any
	if form != nil {
		formExtract = form.Extract
	}
	record.ApplicationForm = m.MapApplicationForm(url, formExtract)
	record.FormFields = m.MapFormFields(asAnySlice(formExtract, "form_fields"))
	record.CompetencyQuestions = m.MapCompetencyQuestions(asAnySlice(formExtract, "competency_questions"))
	return record
}

// MapOverview builds a JobPosting from the overview extraction. The raw
// extraction and the full page markdown are kept verbatim in metadata for
// audit.
func (m *EntityMapper) MapOverview(url string, overview *firecrawl.ScrapeData) entities.JobPosting {

	var extract map[string]any
	var markdown string
	if overview != nil {
		extract = overview.Extract
		markdown = overview.Markdown
	}

	salary := ParseSalary(asString(extract, "salary_range"))

	return entities.JobPosting{
		URL:                url,
		JobTitle:           asString(extract, "job_title"),
		CompanyName:        asString(extract, "company_name"),
		CompanyDescription: asStringPtr(extract, "company_description"),
		Location:           asStringPtr(extract, "location"),
		EmploymentType:     asStringPtr(extract, "employment_type"),
		Department:         asStringPtr(extract, "department"),
		SalaryMin:          salary.Min,
		SalaryMax:          salary.Max,
		SalaryCurrency:     salary.Currency,
		SalaryText:         salary.RawText,
		JobDescription:     asStringPtr(extract, "job_description"),
		Responsibilities:   asStringSlice(extract, "responsibilities"),
		Qualifications:     asStringSlice(extract, "qualifications"),
		Benefits:           asStringSlice(extract, "benefits"),
		ATSPlatform:        DetectATSPlatform(url),
		ApplicationURL:     asStringPtr(extract, "application_url"),
		CompanyLogoURL:     asStringPtr(extract, "company_logo_url"),
		Metadata: map[string]any{
			"scraped_markdown": markdown,
			"original_extract": extract,
		},
	}
}

// MapApplicationForm builds the ApplicationForm owned by the posting at url.
func (m *EntityMapper) MapApplicationForm(url string, extract map[string]any) entities.ApplicationForm {

	formMethod := asString(extract, "form_method")
	if formMethod == "" {
		formMethod = "POST"
	}

	return entities.ApplicationForm{
		FormURL:           entities.ApplicationFormURL(url),
		FormMethod:        formMethod,
		FormAction:        asStringPtr(extract, "form_action"),
		RequiresAuth:      asBool(extract, "requires_auth"),
		HasCaptcha:        asBool(extract, "has_captcha"),
		AutofillAvailable: asBool(extract, "autofill_available"),
	}
}

// MapFormFields maps the raw field list preserving order. A field without a
// name gets a positional placeholder so names stay unique within the form.
func (m *EntityMapper) MapFormFields(rawFields []any) []entities.FormField {

	return lo.Map(rawFields, func(raw any, i int) entities.FormField {
		field, _ := raw.(map[string]any)

		fieldName := asString(field, "field_name")
		if fieldName == "" {
			fieldName = fmt.Sprintf("field_%d", i)
		}

		fieldType := asString(field, "field_type")
		if fieldType == "" {
			fieldType = "text"
		}

		return entities.FormField{
			FieldName:        fieldName,
			FieldLabel:       asStringPtr(field, "field_label"),
			FieldType:        fieldType,
			FieldPlaceholder: asStringPtr(field, "field_placeholder"),
			IsRequired:       asBool(field, "is_required"),
			FieldOrder:       i,
			ValidationRules:  map[string]any{},
			Options:          asStringSlice(field, "options"),
			HelpText:         asStringPtr(field, "help_text"),
			Visibility:       "public",
			ConditionalLogic: map[string]any{},
		}
	})
}

// MapCompetencyQuestions maps the raw question list preserving order.
func (m *EntityMapper) MapCompetencyQuestions(rawQuestions []any) []entities.CompetencyQuestion {

	return lo.Map(rawQuestions, func(raw any, i int) entities.CompetencyQuestion {
		question, _ := raw.(map[string]any)

		questionType := asString(question, "question_type")
		if questionType == "" {
			questionType = "behavioral"
		}

		return entities.CompetencyQuestion{
			QuestionText:   asString(question, "question_text"),
			QuestionType:   questionType,
			IsRequired:     asBool(question, "is_required"),
			WordLimit:      asIntPtr(question, "word_limit"),
			CharacterLimit: asIntPtr(question, "character_limit"),
			QuestionOrder:  i,
		}
	})
}

func asString(payload map[string]any, key string) string {
	value, _ := payload[key].(string)
	return value
}

func asStringPtr(payload map[string]any, key string) *string {
	if value, ok := payload[key].(string); ok && value != "" {
		return &value
	}
	return nil
}

func asBool(payload map[string]any, key string) bool {
	value, _ := payload[key].(bool)
	return value
}

// asIntPtr reads a JSON number, which decodes as float64.
func asIntPtr(payload map[string]any, key string) *int {
	if value, ok := payload[key].(float64); ok {
		converted := int(value)
		return &converted
	}
	return nil
}

func asAnySlice(payload map[string]any, key string) []any {
	value, _ := payload[key].([]any)
	return value
}

func asStringSlice(payload map[string]any, key string) []string {
	result := []string{}
	for _, item := range asAnySlice(payload, key) {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}
