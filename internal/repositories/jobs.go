package repositories

import (
	"context"
	"time"

	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// StoreScrapedJob writes a normalized record in one transaction: the posting,
// its form, then the ordered fields and questions. Returns the stored posting
// id.
func (repo *Jobs) StoreScrapedJob(ctx context.Context, record *entities.ScrapedJob) (uint, error) {

	posting := record.JobPosting
	posting.ScrapedAt = time.Now()
	posting.IsActive = true

	form := record.ApplicationForm

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&posting).Error; err != nil {
			return errors.Wrap(err, "failed to store job posting")
		}

		form.JobPostingID = posting.ID
		if err := tx.Create(&form).Error; err != nil {
			return errors.Wrap(err, "failed to store application form")
		}

		if len(record.FormFields) > 0 {
			fields := make([]entities.FormField, len(record.FormFields))
			copy(fields, record.FormFields)
			for i := range fields {
				fields[i].ApplicationFormID = form.ID
			}
			if err := tx.Create(&fields).Error; err != nil {
				return errors.Wrap(err, "failed to store form fields")
			}
		}

		if len(record.CompetencyQuestions) > 0 {
			questions := make([]entities.CompetencyQuestion, len(record.CompetencyQuestions))
			copy(questions, record.CompetencyQuestions)
			for i := range questions {
				questions[i].ApplicationFormID = form.ID
			}
			if err := tx.Create(&questions).Error; err != nil {
				return errors.Wrap(err, "failed to store competency questions")
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return posting.ID, nil
}

func (repo *Jobs) ExistsByURL(ctx context.Context, url string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entities.JobPosting{}).
		Where("url = ?", url).
		Count(&count).Error
	return count > 0, err
}

// GetByID loads the full record: posting, form, and the form's fields and
// questions in their original order.
func (repo *Jobs) GetByID(ctx context.Context, id uint) (*entities.ScrapedJob, error) {

	var posting entities.JobPosting
	if err := repo.db.WithContext(ctx).First(&posting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record := entities.ScrapedJob{JobPosting: posting, StoredJobID: &posting.ID}

	var form entities.ApplicationForm
	err := repo.db.WithContext(ctx).First(&form, "job_posting_id = ?", posting.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &record, nil
		}
		return nil, err
	}
	record.ApplicationForm = form

	if err = repo.db.WithContext(ctx).
		Order("field_order").
		Find(&record.FormFields, "application_form_id = ?", form.ID).Error; err != nil {
		return nil, err
	}

	if err = repo.db.WithContext(ctx).
		Order("question_order").
		Find(&record.CompetencyQuestions, "application_form_id = ?", form.ID).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (repo *Jobs) ListActive(ctx context.Context, limit int, offset int) ([]entities.JobPosting, error) {

	var postings []entities.JobPosting
	if err := repo.db.WithContext(ctx).
		Where("is_active = ?", true).
		Limit(limit).
		Offset(offset).
		Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

// Search runs a free-text match over title, company and location.
func (repo *Jobs) Search(ctx context.Context, query string, limit int) ([]entities.JobPosting, error) {

	pattern := "%" + query + "%"

	var postings []entities.JobPosting
	if err := repo.db.WithContext(ctx).
		Where("job_title LIKE ? OR company_name LIKE ? OR location LIKE ?", pattern, pattern, pattern).
		Limit(limit).
		Find(&postings).Error; err != nil {
		return nil, err
	}
	return postings, nil
}

func (repo *Jobs) AddInteraction(ctx context.Context, jobID uint, userID string,
	interactionType string, payload map[string]any) error {

	return repo.db.WithContext(ctx).Create(&entities.JobInteraction{
		JobPostingID:    jobID,
		UserID:          userID,
		InteractionType: interactionType,
		Payload:         payload,
		CreatedAt:       time.Now(),
	}).Error
}
