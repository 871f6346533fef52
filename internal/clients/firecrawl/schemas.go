package firecrawl

type scrapeRequest struct {
	URL     string         `json:"url"`
	Formats []string       `json:"formats"`
	Actions []scrapeAction `json:"actions,omitempty"`
	Extract *extractSpec   `json:"extract,omitempty"`
}

type scrapeAction struct {
	Type         string `json:"type"`
	Milliseconds int    `json:"milliseconds,omitempty"`
}

type extractSpec struct {
	Schema map[string]any `json:"schema"`
}

type scrapeResponse struct {
	Success bool       `json:"success"`
	Data    ScrapeData `json:"data"`
}

// ScrapeData is the loosely-typed result of one scrape: the schema-driven
// extraction plus the rendered page as markdown.
type ScrapeData struct {
	Extract  map[string]any `json:"extract"`
	Markdown string         `json:"markdown"`
}

// Empty reports whether the scrape produced nothing usable.
func (d *ScrapeData) Empty() bool {
	return d == nil || (len(d.Extract) == 0 && d.Markdown == "")
}

func stringProperty() map[string]any {
	return map[string]any{"type": "string"}
}

func booleanProperty() map[string]any {
	return map[string]any{"type": "boolean"}
}

func numberProperty() map[string]any {
	return map[string]any{"type": "number"}
}

func stringArrayProperty() map[string]any {
	return map[string]any{"type": "array", "items": stringProperty()}
}

func objectArrayProperty(properties map[string]any) map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":       "object",
			"properties": properties,
		},
	}
}

// jobOverviewSchema describes the extraction requested for a job posting page.
// Only job_title and company_name are required for the result to be usable.
func jobOverviewSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"job_title":           stringProperty(),
			"company_name":        stringProperty(),
			"company_description": stringProperty(),
			"location":            stringProperty(),
			"employment_type":     stringProperty(),
			"department":          stringProperty(),
			"salary_range":        stringProperty(),
			"job_description":     stringProperty(),
			"responsibilities":    stringArrayProperty(),
			"qualifications":      stringArrayProperty(),
			"benefits":            stringArrayProperty(),
			"application_url":     stringProperty(),
			"company_logo_url":    stringProperty(),
			"posted_date":         stringProperty(),
		},
		"required": []string{"job_title", "company_name"},
	}
}

// applicationFormSchema describes the extraction requested for an application
// form page: the field list, form attributes and competency questions.
func applicationFormSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"form_fields": objectArrayProperty(map[string]any{
				"field_name":        stringProperty(),
				"field_label":       stringProperty(),
				"field_type":        stringProperty(),
				"field_placeholder": stringProperty(),
				"is_required":       booleanProperty(),
				"options":           stringArrayProperty(),
				"help_text":         stringProperty(),
			}),
			"form_action":        stringProperty(),
			"form_method":        stringProperty(),
			"requires_auth":      booleanProperty(),
			"has_captcha":        booleanProperty(),
			"autofill_available": booleanProperty(),
			"competency_questions": objectArrayProperty(map[string]any{
				"question_text":   stringProperty(),
				"question_type":   stringProperty(),
				"is_required":     booleanProperty(),
				"word_limit":      numberProperty(),
				"character_limit": numberProperty(),
			}),
		},
	}
}
