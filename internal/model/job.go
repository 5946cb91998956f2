package model

import "time"

type JobType string

const (
	JobTypePractice JobType = "practice"
	JobTypeReal     JobType = "real"
)

type JobStatus string

const (
	JobDraft  JobStatus = "draft"
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
)

// PracticeCompany is the display identity for seeded practice jobs, which
// have no real company account behind them.
type PracticeCompany struct {
	Name    string `json:"name" bson:"name"`
	Logo    string `json:"logo,omitempty" bson:"logo,omitempty"`
	Website string `json:"website,omitempty" bson:"website,omitempty"`
}

type ParsedDetails struct {
	Summary         string   `json:"summary,omitempty" bson:"summary,omitempty"`
	Requirements    []string `json:"requirements,omitempty" bson:"requirements,omitempty"`
	Skills          []string `json:"skills,omitempty" bson:"skills,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty" bson:"experienceLevel,omitempty"`
}

type JobStats struct {
	TotalApplications   int `json:"totalApplications" bson:"totalApplications"`
	CompletedInterviews int `json:"completedInterviews" bson:"completedInterviews"`
}

// Job is the posting an application interview is run against. Only the
// read side lives in this service; postings are owned elsewhere.
type Job struct {
	ID              string           `json:"id" bson:"_id,omitempty"`
	JobType         JobType          `json:"jobType" bson:"jobType"`
	CompanyID       string           `json:"companyId,omitempty" bson:"companyId,omitempty"`
	PracticeCompany *PracticeCompany `json:"practiceCompany,omitempty" bson:"practiceCompany,omitempty"`
	Title           string           `json:"title" bson:"title"`
	RawDescription  string           `json:"rawDescription" bson:"rawDescription"`
	ParsedDetails   ParsedDetails    `json:"parsedDetails,omitempty" bson:"parsedDetails,omitempty"`
	Location        string           `json:"location,omitempty" bson:"location,omitempty"`
	LocationType    string           `json:"locationType,omitempty" bson:"locationType,omitempty"`
	EmploymentType  string           `json:"employmentType,omitempty" bson:"employmentType,omitempty"`
	Status          JobStatus        `json:"status" bson:"status"`
	Stats           JobStats         `json:"stats" bson:"stats"`
	PublishedAt     *time.Time       `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt" bson:"createdAt"`
}

// CompanyName resolves the display name for either job type.
func (j *Job) CompanyName() string {
	if j.JobType == JobTypePractice && j.PracticeCompany != nil {
		return j.PracticeCompany.Name
	}
	return ""
}

// JobCard is the trimmed listing shape for GET /v1/jobs.
type JobCard struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	CompanyLogo     string   `json:"companyLogo,omitempty"`
	JobType         JobType  `json:"jobType"`
	IsPractice      bool     `json:"isPractice"`
	Location        string   `json:"location,omitempty"`
	LocationType    string   `json:"locationType,omitempty"`
	EmploymentType  string   `json:"type,omitempty"`
	ExperienceLevel string   `json:"experienceLevel,omitempty"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	Posted          string   `json:"posted"`
}
