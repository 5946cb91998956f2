package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/P4ndro/Intervia/internal/config"
	"github.com/P4ndro/Intervia/internal/model"
	"github.com/P4ndro/Intervia/internal/repository"
)

// Seeds the two built-in practice jobs. Existing practice jobs are
// replaced.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	jobRepo := repository.NewJobRepo(client.Database(cfg.MongoDB))

	deleted, err := jobRepo.DeleteByType(ctx, model.JobTypePractice)
	if err != nil {
		log.Fatalf("Failed to delete existing practice jobs: %v", err)
	}
	log.Printf("Deleted %d existing practice jobs", deleted)

	now := time.Now()
	for _, job := range practiceJobs() {
		job.ID = uuid.NewString()
		job.PublishedAt = &now
		job.CreatedAt = now
		if err := jobRepo.Create(ctx, job); err != nil {
			log.Fatalf("Failed to seed job %q: %v", job.Title, err)
		}
		log.Printf("  - %s: %s", job.PracticeCompany.Name, job.Title)
	}

	log.Println("Seed completed")
}

func practiceJobs() []*model.Job {
	return []*model.Job{
		{
			JobType: model.JobTypePractice,
			PracticeCompany: &model.PracticeCompany{
				Name:    "Google",
				Logo:    "https://logo.clearbit.com/google.com",
				Website: "https://careers.google.com",
			},
			Title:          "Software Engineer, Backend",
			Location:       "Mountain View, CA",
			LocationType:   "hybrid",
			EmploymentType: "full-time",
			RawDescription: `We're looking for a Software Engineer to join our backend infrastructure team. You'll work on systems that serve billions of users worldwide.

Requirements:
- 3+ years of software development experience
- Strong knowledge of data structures and algorithms
- Experience with distributed systems
- Proficiency in Python, Java, or Go`,
			ParsedDetails: model.ParsedDetails{
				Summary:         "Backend engineering role focused on scalable infrastructure.",
				Skills:          []string{"Python", "Java", "Go", "Distributed Systems"},
				ExperienceLevel: "mid",
			},
			Status: model.JobActive,
		},
		{
			JobType: model.JobTypePractice,
			PracticeCompany: &model.PracticeCompany{
				Name:    "Meta",
				Logo:    "https://logo.clearbit.com/meta.com",
				Website: "https://metacareers.com",
			},
			Title:          "Frontend Engineer",
			Location:       "Menlo Park, CA",
			LocationType:   "hybrid",
			EmploymentType: "full-time",
			RawDescription: `Join our product team to build user interfaces that reach billions of people.

Requirements:
- 4+ years of frontend development experience
- Expert knowledge of JavaScript/TypeScript
- Deep experience with React`,
			ParsedDetails: model.ParsedDetails{
				Summary:         "Frontend engineering role building UI for billions of users.",
				Skills:          []string{"React", "TypeScript", "JavaScript", "CSS"},
				ExperienceLevel: "mid",
			},
			Status: model.JobActive,
		},
	}
}
