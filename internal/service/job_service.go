package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/P4ndro/Intervia/internal/cache"
	"github.com/P4ndro/Intervia/internal/model"
	"github.com/P4ndro/Intervia/internal/repository"
)

const jobListLimit = 50

// JobService serves the read side of job postings: the listing candidates
// browse and the detail page an application interview starts from.
type JobService struct {
	repo     repository.JobRepo
	jobCache cache.JobCache
}

func NewJobService(repo repository.JobRepo, jobCache cache.JobCache) *JobService {
	return &JobService{repo: repo, jobCache: jobCache}
}

// List returns active jobs as listing cards, newest first, optionally
// filtered by type. Results are cached briefly per filter.
func (s *JobService) List(ctx context.Context, jobType model.JobType) ([]model.JobCard, error) {
	if cards, err := s.jobCache.GetList(ctx, jobType); err == nil && cards != nil {
		return cards, nil
	}

	jobs, err := s.repo.ListActive(ctx, jobType, jobListLimit)
	if err != nil {
		return nil, err
	}

	cards := make([]model.JobCard, 0, len(jobs))
	for _, job := range jobs {
		cards = append(cards, s.card(job))
	}

	if err := s.jobCache.SetList(ctx, jobType, cards); err != nil {
		log.Printf("[Job] list cache set failed: %v", err)
	}
	return cards, nil
}

// Get returns one job by id.
func (s *JobService) Get(ctx context.Context, id string) (*model.Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *JobService) card(job *model.Job) model.JobCard {
	description := job.ParsedDetails.Summary
	if description == "" {
		description = truncate(job.RawDescription, 200)
	}

	logo := ""
	if job.PracticeCompany != nil {
		logo = job.PracticeCompany.Logo
	}

	postedAt := job.CreatedAt
	if job.PublishedAt != nil {
		postedAt = *job.PublishedAt
	}

	return model.JobCard{
		ID:              job.ID,
		Title:           job.Title,
		Company:         orDefault(job.CompanyName(), "Unknown Company"),
		CompanyLogo:     logo,
		JobType:         job.JobType,
		IsPractice:      job.JobType == model.JobTypePractice,
		Location:        job.Location,
		LocationType:    job.LocationType,
		EmploymentType:  job.EmploymentType,
		ExperienceLevel: job.ParsedDetails.ExperienceLevel,
		Description:     description,
		Skills:          job.ParsedDetails.Skills,
		Posted:          formatPostedAgo(postedAt),
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// formatPostedAgo renders a job's age the way the listing displays it.
func formatPostedAgo(postedAt time.Time) string {
	if postedAt.IsZero() {
		return ""
	}
	days := int(time.Since(postedAt).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	default:
		return fmt.Sprintf("%d weeks ago", days/7)
	}
}
