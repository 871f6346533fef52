package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const overviewResponse = `{
  "success": true,
  "data": {
    "extract": {
      "job_title": "Senior Go Engineer",
      "company_name": "Acme",
      "location": "Berlin, Germany",
      "employment_type": "full-time",
      "salary_range": "$120K - $150K",
      "job_description": "Build and operate backend services.",
      "responsibilities": ["Design services", "Review code"],
      "qualifications": ["5+ years of Go"],
      "benefits": ["Remote friendly"]
    },
    "markdown": "# Senior Go Engineer"
  }
}`

const formResponse = `{
  "success": true,
  "data": {
    "extract": {
      "form_method": "POST",
      "requires_auth": false,
      "has_captcha": false,
      "form_fields": [
        {"field_name": "name", "field_type": "text", "is_required": true},
        {"field_name": "email", "field_type": "email", "is_required": true},
        {"field_name": "resume", "field_type": "file", "is_required": true}
      ],
      "competency_questions": [
        {"question_text": "Why do you want to work at Acme?", "question_type": "motivational", "is_required": true}
      ]
    },
    "markdown": "# Apply to Acme"
  }
}`

const failedResponse = `{"success": false, "data": {}}`

// stubFirecrawlAPI answers scrape calls from canned payloads: application
// form URLs get the form payload, URLs listed in failingURLs get an
// unsuccessful response, everything else gets the overview payload.
type stubFirecrawlAPI struct {
	failingURLs map[string]bool
}

func (s *stubFirecrawlAPI) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)

	var payload struct {
		URL string `json:"url"`
	}
	_ = json.Unmarshal(body, &payload)

	response := overviewResponse
	if s.failingURLs[payload.URL] {
		response = failedResponse
	} else if strings.HasSuffix(payload.URL, "/application") {
		response = formResponse
	}

	return &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(response)),
	}, nil
}
