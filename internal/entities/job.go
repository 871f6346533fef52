package entities

import (
	"strings"
	"time"
)

type ATSPlatform string

const (
	PlatformAshby           ATSPlatform = "ashby"
	PlatformGreenhouse      ATSPlatform = "greenhouse"
	PlatformLever           ATSPlatform = "lever"
	PlatformWorkable        ATSPlatform = "workable"
	PlatformSmartRecruiters ATSPlatform = "smartrecruiters"
	PlatformBambooHR        ATSPlatform = "bamboohr"
	PlatformICIMS           ATSPlatform = "icims"
	PlatformJobvite         ATSPlatform = "jobvite"
	PlatformUnknown         ATSPlatform = "unknown"
)

type JobPosting struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	URL                string         `gorm:"index" json:"url"`
	JobTitle           string         `json:"job_title"`
	CompanyName        string         `json:"company_name"`
	CompanyDescription *string        `json:"company_description"`
	Location           *string        `json:"location"`
	EmploymentType     *string        `json:"employment_type"`
	Department         *string        `json:"department"`
	SalaryMin          *int           `json:"salary_min"`
	SalaryMax          *int           `json:"salary_max"`
	SalaryCurrency     string         `json:"salary_currency"`
	SalaryText         *string        `json:"salary_text"`
	JobDescription     *string        `json:"job_description"`
	Responsibilities   []string       `gorm:"serializer:json" json:"responsibilities"`
	Qualifications     []string       `gorm:"serializer:json" json:"qualifications"`
	Benefits           []string       `gorm:"serializer:json" json:"benefits"`
	ATSPlatform        ATSPlatform    `json:"ats_platform"`
	ApplicationURL     *string        `json:"application_url"`
	CompanyLogoURL     *string        `json:"company_logo_url"`
	Metadata           map[string]any `gorm:"serializer:json" json:"metadata"`
	ScrapedAt          time.Time      `json:"scraped_at"`
	IsActive           bool           `json:"is_active"`
}

type ApplicationForm struct {
	ID                uint    `gorm:"primarykey" json:"id"`
	JobPostingID      uint    `gorm:"index" json:"job_posting_id"`
	FormURL           string  `json:"form_url"`
	FormMethod        string  `json:"form_method"`
	FormAction        *string `json:"form_action"`
	RequiresAuth      bool    `json:"requires_auth"`
	HasCaptcha        bool    `json:"has_captcha"`
	AutofillAvailable bool    `json:"autofill_available"`
}

type FormField struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	ApplicationFormID uint           `gorm:"index" json:"application_form_id"`
	FieldName         string         `json:"field_name"`
	FieldLabel        *string        `json:"field_label"`
	FieldType         string         `json:"field_type"`
	FieldPlaceholder  *string        `json:"field_placeholder"`
	IsRequired        bool           `json:"is_required"`
	FieldOrder        int            `json:"field_order"`
	ValidationRules   map[string]any `gorm:"serializer:json" json:"validation_rules"`
	Options           []string       `gorm:"serializer:json" json:"options"`
	DefaultValue      *string        `json:"default_value"`
	HelpText          *string        `json:"help_text"`
	SectionName       *string        `json:"section_name"`
	Visibility        string         `json:"visibility"`
	ConditionalLogic  map[string]any `gorm:"serializer:json" json:"conditional_logic"`
}

type CompetencyQuestion struct {
	ID                uint    `gorm:"primarykey" json:"id"`
	ApplicationFormID uint    `gorm:"index" json:"application_form_id"`
	QuestionText      string  `json:"question_text"`
	QuestionType      string  `json:"question_type"`
	IsRequired        bool    `json:"is_required"`
	WordLimit         *int    `json:"word_limit"`
	CharacterLimit    *int    `json:"character_limit"`
	QuestionOrder     int     `json:"question_order"`
	SectionName       *string `json:"section_name"`
	HelpText          *string `json:"help_text"`
}

type JobInteraction struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	JobPostingID    uint           `gorm:"index" json:"job_posting_id"`
	UserID          string         `json:"user_id"`
	InteractionType string         `json:"interaction_type"`
	Payload         map[string]any `gorm:"serializer:json" json:"payload"`
	CreatedAt       time.Time      `json:"created_at"`
}

// ScrapedJob is the normalized record produced for one URL: the posting plus
// its application form structure. StoredJobID is set only when the record was
// handed to the persistence layer successfully.
type ScrapedJob struct {
	JobPosting          JobPosting           `json:"job_posting"`
	ApplicationForm     ApplicationForm      `json:"application_form"`
	FormFields          []FormField          `json:"form_fields"`
	CompetencyQuestions []CompetencyQuestion `json:"competency_questions"`
	StoredJobID         *uint                `json:"stored_job_id,omitempty"`
}

// ApplicationFormURL derives the application form URL from a job posting URL:
// the URL itself if it already contains an "/application" segment, otherwise
// the trimmed URL with "/application" appended.
func ApplicationFormURL(jobURL string) string {
	if strings.Contains(jobURL, "/application") {
		return jobURL
	}
	return strings.TrimRight(jobURL, "/") + "/application"
}
