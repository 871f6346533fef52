package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xLLM73/job-scraper/internal/entities"
)

func Test_DetectATSPlatform_KnownHosts(t *testing.T) {
	cases := []struct {
		url      string
		expected entities.ATSPlatform
	}{
		{"https://jobs.ashbyhq.com/acme/123", entities.PlatformAshby},
		{"https://boards.greenhouse.io/acme/jobs/456", entities.PlatformGreenhouse},
		{"https://jobs.lever.co/acme/789", entities.PlatformLever},
		{"https://apply.workable.com/acme/j/ABCDEF/", entities.PlatformWorkable},
		{"https://jobs.smartrecruiters.com/Acme/111", entities.PlatformSmartRecruiters},
		{"https://acme.bamboohr.com/careers/42", entities.PlatformBambooHR},
		{"https://careers-acme.icims.com/jobs/1000/login", entities.PlatformICIMS},
		{"https://jobs.jobvite.com/acme/job/oUitofwB", entities.PlatformJobvite},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, DetectATSPlatform(c.url), c.url)
	}
}

func Test_DetectATSPlatform_UnknownHost_ShouldReturnUnknown(t *testing.T) {
	assert.Equal(t, entities.PlatformUnknown, DetectATSPlatform("https://careers.acme.com/jobs/1"))
	assert.Equal(t, entities.PlatformUnknown, DetectATSPlatform(""))
}

func Test_DetectATSPlatform_IsCaseInsensitive(t *testing.T) {
	assert.Equal(t, entities.PlatformAshby, DetectATSPlatform("https://Jobs.AshbyHQ.com/acme/123"))
}

func Test_DetectATSPlatform_FragmentOrderDecidesTies(t *testing.T) {
	// when several fragments match, the earlier one in the priority list wins
	url := "https://greenhouse.io/redirect?to=jobs.lever.co/acme"
	assert.Equal(t, entities.PlatformGreenhouse, DetectATSPlatform(url))
}
