package services

import (
	"strings"

	"github.com/0xLLM73/job-scraper/internal/entities"
)

var atsHostFragments = []struct {
	fragment string
	platform entities.ATSPlatform
}{
	{"ashbyhq.com", entities.PlatformAshby},
	{"greenhouse.io", entities.PlatformGreenhouse},
	{"lever.co", entities.PlatformLever},
	{"workable.com", entities.PlatformWorkable},
	{"smartrecruiters.com", entities.PlatformSmartRecruiters},
	{"bamboohr.com", entities.PlatformBambooHR},
	{"icims.com", entities.PlatformICIMS},
	{"jobvite.com", entities.PlatformJobvite},
}

// DetectATSPlatform classifies a job posting URL by the applicant tracking
// system hosting it. Matching is a case-insensitive substring check in fixed
// priority order; the first hit wins.
func DetectATSPlatform(url string) entities.ATSPlatform {
	lowered := strings.ToLower(url)
	for _, candidate := range atsHostFragments {
		if strings.Contains(lowered, candidate.fragment) {
			return candidate.platform
		}
	}
	return entities.PlatformUnknown
}
