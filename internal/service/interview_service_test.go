package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/P4ndro/Intervia/internal/config"
	"github.com/P4ndro/Intervia/internal/model"
	"github.com/P4ndro/Intervia/internal/repository"
)

// fakeInterviewRepo is an in-memory InterviewRepo with the same guarded
// update semantics as the mongo implementation.
type fakeInterviewRepo struct {
	store    map[string]*model.Interview
	getQueue []*model.Interview // overrides GetByID results, oldest first
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{store: map[string]*model.Interview{}}
}

func cloneInterview(iv *model.Interview) *model.Interview {
	cp := *iv
	cp.Questions = append([]model.Question(nil), iv.Questions...)
	cp.Answers = append([]model.Answer(nil), iv.Answers...)
	cp.Violations = append([]model.Violation(nil), iv.Violations...)
	return &cp
}

func (r *fakeInterviewRepo) Create(ctx context.Context, iv *model.Interview) error {
	r.store[iv.ID] = cloneInterview(iv)
	return nil
}

func (r *fakeInterviewRepo) GetByID(ctx context.Context, id string) (*model.Interview, error) {
	if len(r.getQueue) > 0 {
		next := r.getQueue[0]
		r.getQueue = r.getQueue[1:]
		return cloneInterview(next), nil
	}
	iv, ok := r.store[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneInterview(iv), nil
}

func (r *fakeInterviewRepo) UpdateGuarded(ctx context.Context, iv *model.Interview, prevStatus model.InterviewStatus, prevIndex int) error {
	stored, ok := r.store[iv.ID]
	if !ok || stored.Status != prevStatus || stored.CurrentQuestionIndex != prevIndex {
		return repository.ErrStale
	}
	r.store[iv.ID] = cloneInterview(iv)
	return nil
}

func (r *fakeInterviewRepo) AppendViolation(ctx context.Context, id string, v model.Violation) error {
	stored, ok := r.store[id]
	if !ok || stored.Terminal() {
		return repository.ErrStale
	}
	stored.Violations = append(stored.Violations, v)
	return nil
}

func (r *fakeInterviewRepo) GetCompletedByUser(ctx context.Context, userID string) ([]*model.Interview, error) {
	var out []*model.Interview
	for _, iv := range r.store {
		if iv.UserID == userID && iv.Status == model.InterviewCompleted {
			out = append(out, cloneInterview(iv))
		}
	}
	return out, nil
}

type fakeJobRepo struct {
	jobs         map[string]*model.Job
	applications int
	completions  int
}

func (r *fakeJobRepo) Create(ctx context.Context, job *model.Job) error {
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	job, ok := r.jobs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return job, nil
}

func (r *fakeJobRepo) ListActive(ctx context.Context, jobType model.JobType, limit int64) ([]*model.Job, error) {
	var out []*model.Job
	for _, job := range r.jobs {
		if job.Status == model.JobActive && (jobType == "" || job.JobType == jobType) {
			out = append(out, job)
		}
	}
	return out, nil
}

func (r *fakeJobRepo) DeleteByType(ctx context.Context, jobType model.JobType) (int64, error) {
	return 0, nil
}

func (r *fakeJobRepo) IncrementApplications(ctx context.Context, id string) error {
	r.applications++
	return nil
}

func (r *fakeJobRepo) IncrementCompleted(ctx context.Context, id string) error {
	r.completions++
	return nil
}

type fakeInterviewCache struct {
	m map[string]*model.Interview
}

func (c *fakeInterviewCache) Set(ctx context.Context, iv *model.Interview) error {
	c.m[iv.ID] = cloneInterview(iv)
	return nil
}

func (c *fakeInterviewCache) Get(ctx context.Context, id string) (*model.Interview, error) {
	return c.m[id], nil
}

func (c *fakeInterviewCache) Delete(ctx context.Context, id string) error {
	delete(c.m, id)
	return nil
}

// stubEvaluator returns the same scores for every answer.
type stubEvaluator struct {
	score float64
}

func (e *stubEvaluator) Evaluate(ctx context.Context, q *model.Question, a *model.Answer) *model.AIEvaluation {
	return &model.AIEvaluation{
		RelevanceScore:    e.score,
		ClarityScore:      e.score,
		DepthScore:        e.score,
		TechnicalAccuracy: e.score,
		Confidence:        0.9,
	}
}

func newTestService() (*InterviewService, *fakeInterviewRepo, *fakeJobRepo) {
	repo := newFakeInterviewRepo()
	jobs := &fakeJobRepo{jobs: map[string]*model.Job{}}
	gen, _ := NewGeneratorService(&config.AIConfig{StaticQuestions: true})
	svc := NewInterviewService(
		repo,
		jobs,
		&fakeInterviewCache{m: map[string]*model.Interview{}},
		gen,
		&stubEvaluator{score: 80},
		NewReportService(),
	)
	return svc, repo, jobs
}

func startPractice(svc *InterviewService) *model.Interview {
	iv, err := svc.Start(context.Background(), "user_1", model.StartInterviewRequest{})
	So(err, ShouldBeNil)
	return iv
}

func TestInterviewService_Start(t *testing.T) {
	ctx := context.Background()

	Convey("Given the interview service", t, func() {
		svc, repo, jobs := newTestService()

		Convey("When starting a practice interview", func() {
			iv := startPractice(svc)

			Convey("Then it is persisted with a full question set at index 0", func() {
				So(iv.ID, ShouldNotBeEmpty)
				So(iv.Status, ShouldEqual, model.InterviewInProgress)
				So(iv.Questions, ShouldHaveLength, model.NumQuestions)
				So(iv.CurrentQuestionIndex, ShouldEqual, 0)
				So(iv.InterviewType, ShouldEqual, model.InterviewTypePractice)

				stored, err := repo.GetByID(ctx, iv.ID)
				So(err, ShouldBeNil)
				So(stored.Questions, ShouldHaveLength, model.NumQuestions)
			})
		})

		Convey("When starting an application interview for a known job", func() {
			jobs.jobs["job_1"] = &model.Job{
				ID: "job_1", Title: "Backend Engineer", CompanyID: "acme",
				JobType: model.JobTypeReal, Status: model.JobActive,
				ParsedDetails: model.ParsedDetails{ExperienceLevel: "senior"},
			}
			iv, err := svc.Start(ctx, "user_1", model.StartInterviewRequest{
				InterviewType: model.InterviewTypeApplication,
				JobID:         "job_1",
			})

			Convey("Then it references the job and bumps its application count", func() {
				So(err, ShouldBeNil)
				So(iv.InterviewType, ShouldEqual, model.InterviewTypeApplication)
				So(iv.JobID, ShouldEqual, "job_1")
				So(iv.CompanyID, ShouldEqual, "acme")
				So(jobs.applications, ShouldEqual, 1)
			})
		})

		Convey("When starting an application interview for an unknown job", func() {
			_, err := svc.Start(ctx, "user_1", model.StartInterviewRequest{
				InterviewType: model.InterviewTypeApplication,
				JobID:         "missing",
			})

			Convey("Then no interview is created", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
				So(repo.store, ShouldBeEmpty)
			})
		})
	})
}

func TestInterviewService_SubmitAnswer(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-progress practice interview", t, func() {
		svc, repo, _ := newTestService()
		iv := startPractice(svc)

		Convey("When answering the current question", func() {
			resp, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{
				QuestionID: "q1", Transcript: "I talked it through with them.",
			})

			Convey("Then the index advances without completing", func() {
				So(err, ShouldBeNil)
				So(resp.Completed, ShouldBeFalse)
				So(resp.CurrentQuestionIndex, ShouldEqual, 1)
			})
		})

		Convey("When resubmitting the same question", func() {
			_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{QuestionID: "q1", Transcript: "first"})
			So(err, ShouldBeNil)
			_, err = svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{QuestionID: "q1", Transcript: "second"})
			So(err, ShouldBeNil)

			Convey("Then one answer exists and the second transcript wins", func() {
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Answers, ShouldHaveLength, 1)
				So(stored.Answers[0].Transcript, ShouldEqual, "second")
			})

			Convey("And the off-index resubmission did not advance the session", func() {
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.CurrentQuestionIndex, ShouldEqual, 1)
			})
		})

		Convey("When skipping a question", func() {
			_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{
				QuestionID: "q1", Transcript: "this text must be dropped", Skipped: true,
			})
			So(err, ShouldBeNil)

			Convey("Then the stored transcript is forced empty", func() {
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Answers[0].Skipped, ShouldBeTrue)
				So(stored.Answers[0].Transcript, ShouldBeEmpty)
			})
		})

		Convey("When answering a question that is not in the set", func() {
			_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{QuestionID: "q99", Transcript: "hi"})

			Convey("Then the submission is rejected", func() {
				So(err, ShouldEqual, ErrUnknownQuestion)
			})
		})

		Convey("When answering all five questions in order", func() {
			var last *model.SubmitAnswerResponse
			for i := 1; i <= model.NumQuestions; i++ {
				resp, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{
					QuestionID: fmt.Sprintf("q%d", i),
					Transcript: "a reasonably detailed answer to the question",
				})
				So(err, ShouldBeNil)
				if i < model.NumQuestions {
					So(resp.Completed, ShouldBeFalse)
					So(resp.CurrentQuestionIndex, ShouldEqual, i)
				}
				last = resp
			}

			Convey("Then the last submission completes the interview", func() {
				So(last.Completed, ShouldBeTrue)
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Status, ShouldEqual, model.InterviewCompleted)
				So(stored.CompletedAt, ShouldNotBeNil)
				So(stored.Report, ShouldNotBeNil)
			})

			Convey("And further mutations are rejected without changing state", func() {
				_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{QuestionID: "q1", Transcript: "late"})
				So(err, ShouldEqual, ErrInterviewState)
				So(svc.Complete(ctx, iv.ID), ShouldEqual, ErrInterviewState)

				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Answers, ShouldHaveLength, model.NumQuestions)
				So(stored.AnswerFor("q1").Transcript, ShouldNotEqual, "late")
			})
		})

		Convey("When a duplicate of the final submission races the original", func() {
			for i := 1; i <= model.NumQuestions; i++ {
				_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{
					QuestionID: fmt.Sprintf("q%d", i), Transcript: "answer",
				})
				So(err, ShouldBeNil)
			}
			completed, _ := repo.GetByID(ctx, iv.ID)

			// The retry read the document before the original's write
			// landed, so it sees in_progress at the last index.
			stale := cloneInterview(completed)
			stale.Status = model.InterviewInProgress
			stale.Answers = stale.Answers[:model.NumQuestions-1]
			stale.CurrentQuestionIndex = model.NumQuestions - 1
			repo.getQueue = []*model.Interview{stale}

			resp, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{QuestionID: "q5", Transcript: "answer"})

			Convey("Then the duplicate gets the winner's result without re-completing", func() {
				So(err, ShouldBeNil)
				So(resp.Completed, ShouldBeTrue)
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Answers, ShouldHaveLength, model.NumQuestions)
				So(stored.CompletedAt, ShouldEqual, completed.CompletedAt)
			})
		})

		Convey("When submitting to an unknown interview", func() {
			_, err := svc.SubmitAnswer(ctx, "missing", model.SubmitAnswerRequest{QuestionID: "q1"})

			Convey("Then it is reported as not found", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})
	})
}

func TestInterviewService_CompleteAndAbandon(t *testing.T) {
	ctx := context.Background()

	Convey("Given an in-progress interview", t, func() {
		svc, repo, _ := newTestService()
		iv := startPractice(svc)

		Convey("When completing explicitly with questions unanswered", func() {
			err := svc.Complete(ctx, iv.ID)

			Convey("Then it completes with a report regardless of progress", func() {
				So(err, ShouldBeNil)
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Status, ShouldEqual, model.InterviewCompleted)
				So(stored.Report, ShouldNotBeNil)
				So(stored.Report.Metrics.QuestionsAnswered, ShouldEqual, 0)
			})

			Convey("And completing again is rejected without re-stamping", func() {
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(svc.Complete(ctx, iv.ID), ShouldEqual, ErrInterviewState)
				after, _ := repo.GetByID(ctx, iv.ID)
				So(after.CompletedAt, ShouldEqual, stored.CompletedAt)
			})
		})

		Convey("When abandoning", func() {
			err := svc.Abandon(ctx, iv.ID)

			Convey("Then the interview terminates without a report", func() {
				So(err, ShouldBeNil)
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Status, ShouldEqual, model.InterviewAbandoned)
				So(stored.Report, ShouldBeNil)
				So(stored.CompletedAt, ShouldBeNil)
			})

			Convey("And no report can be fetched", func() {
				_, err := svc.GetReport(ctx, iv.ID)
				So(err, ShouldEqual, ErrReportNotReady)
			})
		})
	})
}

func TestInterviewService_Violations(t *testing.T) {
	ctx := context.Background()
	collided := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	Convey("Given an in-progress interview", t, func() {
		svc, repo, _ := newTestService()
		iv := startPractice(svc)

		Convey("When recording ten violations with colliding timestamps", func() {
			for i := 0; i < 10; i++ {
				err := svc.RecordViolation(ctx, iv.ID, model.RecordViolationRequest{
					Kind: model.ViolationTabSwitch, Timestamp: collided,
				})
				So(err, ShouldBeNil)
			}

			Convey("Then all ten entries are kept", func() {
				stored, _ := repo.GetByID(ctx, iv.ID)
				So(stored.Violations, ShouldHaveLength, 10)
			})
		})

		Convey("When recording against a completed interview", func() {
			So(svc.Complete(ctx, iv.ID), ShouldBeNil)
			err := svc.RecordViolation(ctx, iv.ID, model.RecordViolationRequest{Kind: model.ViolationWindowBlur})

			Convey("Then it is rejected", func() {
				So(err, ShouldEqual, ErrInterviewState)
			})
		})

		Convey("When recording against an unknown interview", func() {
			err := svc.RecordViolation(ctx, "missing", model.RecordViolationRequest{Kind: model.ViolationWindowBlur})

			Convey("Then it is reported as not found", func() {
				So(err, ShouldEqual, repository.ErrNotFound)
			})
		})
	})
}

func TestInterviewService_ReportAndStats(t *testing.T) {
	ctx := context.Background()

	Convey("Given a full end-to-end session", t, func() {
		svc, _, _ := newTestService()
		iv := startPractice(svc)

		for i := 1; i <= model.NumQuestions; i++ {
			_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{
				QuestionID: fmt.Sprintf("q%d", i),
				Transcript: "a reasonably detailed answer covering the question",
			})
			So(err, ShouldBeNil)
		}

		Convey("When fetching the report", func() {
			report, err := svc.GetReport(ctx, iv.ID)

			Convey("Then the metrics count every answer", func() {
				So(err, ShouldBeNil)
				So(report.Metrics.QuestionsAnswered, ShouldEqual, model.NumQuestions)
				So(report.Metrics.QuestionsSkipped, ShouldEqual, 0)
				So(report.Metrics.TotalQuestions, ShouldEqual, model.NumQuestions)
				So(report.OverallScore, ShouldNotBeNil)
				So(*report.OverallScore, ShouldEqual, 80)
				So(report.ReadinessBand, ShouldEqual, model.BandReady)
			})
		})

		Convey("When fetching user stats", func() {
			stats, err := svc.GetUserStats(ctx, "user_1")

			Convey("Then the completed interview is aggregated", func() {
				So(err, ShouldBeNil)
				So(stats.CompletedInterviews, ShouldEqual, 1)
				So(stats.AverageScore, ShouldNotBeNil)
				So(*stats.AverageScore, ShouldEqual, 80)
				So(stats.TotalPracticeTime, ShouldEqual, "0m")
			})
		})
	})

	Convey("Given a session where the first question is skipped", t, func() {
		svc, _, _ := newTestService()
		iv := startPractice(svc)

		_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{QuestionID: "q1", Skipped: true})
		So(err, ShouldBeNil)
		for i := 2; i <= model.NumQuestions; i++ {
			_, err := svc.SubmitAnswer(ctx, iv.ID, model.SubmitAnswerRequest{
				QuestionID: fmt.Sprintf("q%d", i),
				Transcript: "a reasonably detailed answer covering the question",
			})
			So(err, ShouldBeNil)
		}

		Convey("When fetching the report", func() {
			report, err := svc.GetReport(ctx, iv.ID)

			Convey("Then the skip counts as skipped, not answered", func() {
				So(err, ShouldBeNil)
				So(report.Metrics.QuestionsAnswered, ShouldEqual, model.NumQuestions-1)
				So(report.Metrics.QuestionsSkipped, ShouldEqual, 1)
			})
		})
	})
}
