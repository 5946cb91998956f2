package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/P4ndro/Intervia/internal/cache"
	"github.com/P4ndro/Intervia/internal/model"
	"github.com/P4ndro/Intervia/internal/repository"
)

// InterviewService owns the interview session lifecycle: creation,
// per-question answer submission, completion, abandonment and violation
// logging. Status transitions are monotonic; every mutation is a guarded
// write against the previously observed status and question index.
type InterviewService struct {
	repo      repository.InterviewRepo
	jobRepo   repository.JobRepo
	ivCache   cache.InterviewCache
	generator *GeneratorService
	evaluator Evaluator
	reportSvc *ReportService
}

func NewInterviewService(
	repo repository.InterviewRepo,
	jobRepo repository.JobRepo,
	ivCache cache.InterviewCache,
	generator *GeneratorService,
	evaluator Evaluator,
	reportSvc *ReportService,
) *InterviewService {
	return &InterviewService{
		repo:      repo,
		jobRepo:   jobRepo,
		ivCache:   ivCache,
		generator: generator,
		evaluator: evaluator,
		reportSvc: reportSvc,
	}
}

// Start creates an interview. Question generation is resolved before the
// document is persisted; no partially-initialized interview is ever
// observable.
func (s *InterviewService) Start(ctx context.Context, userID string, req model.StartInterviewRequest) (*model.Interview, error) {
	spec := model.GenerationSpec{Level: "Mid", Practice: true}
	interviewType := model.InterviewTypePractice
	companyID := ""

	if req.InterviewType == model.InterviewTypeApplication && req.JobID != "" {
		job, err := s.jobRepo.GetByID(ctx, req.JobID)
		if err != nil {
			return nil, err
		}
		interviewType = model.InterviewTypeApplication
		companyID = job.CompanyID
		spec = model.GenerationSpec{
			JobTitle:    job.Title,
			Level:       job.ParsedDetails.ExperienceLevel,
			Description: job.RawDescription,
		}
	}

	questions := s.generator.Generate(ctx, spec, model.DefaultGenerationConfig())

	iv := &model.Interview{
		ID:                   uuid.NewString(),
		UserID:               userID,
		InterviewType:        interviewType,
		JobID:                req.JobID,
		CompanyID:            companyID,
		Status:               model.InterviewInProgress,
		Questions:            questions,
		Answers:              []model.Answer{},
		CurrentQuestionIndex: 0,
		CreatedAt:            time.Now(),
	}
	if err := s.repo.Create(ctx, iv); err != nil {
		return nil, err
	}

	if iv.JobID != "" {
		if err := s.jobRepo.IncrementApplications(ctx, iv.JobID); err != nil {
			log.Printf("[Interview] failed to bump application count for job %s: %v", iv.JobID, err)
		}
	}
	return iv, nil
}

// Get returns the read view for resuming or reviewing an interview.
func (s *InterviewService) Get(ctx context.Context, id string) (*model.InterviewView, error) {
	iv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &model.InterviewView{
		ID:                   iv.ID,
		Status:               iv.Status,
		InterviewType:        iv.InterviewType,
		Questions:            iv.Questions,
		Answers:              iv.Answers,
		CurrentQuestionIndex: iv.CurrentQuestionIndex,
	}
	if iv.JobID != "" {
		if job, err := s.jobRepo.GetByID(ctx, iv.JobID); err == nil {
			view.JobTitle = job.Title
			view.CompanyName = job.CompanyName()
		}
	}
	return view, nil
}

// SubmitAnswer upserts the answer for a question. Submitting at the
// current index advances the session, or completes it when the index was
// already the last one; off-index submissions only revise the stored
// answer.
func (s *InterviewService) SubmitAnswer(ctx context.Context, id string, req model.SubmitAnswerRequest) (*model.SubmitAnswerResponse, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Terminal() {
		return nil, ErrInterviewState
	}
	if !iv.HasQuestion(req.QuestionID) {
		return nil, ErrUnknownQuestion
	}

	transcript := req.Transcript
	if req.Skipped {
		transcript = ""
	}

	prevStatus := iv.Status
	prevIndex := iv.CurrentQuestionIndex

	iv.UpsertAnswer(model.Answer{
		QuestionID:  req.QuestionID,
		Transcript:  transcript,
		Skipped:     req.Skipped,
		SubmittedAt: time.Now(),
	})

	completed := false
	atCurrent := prevIndex < len(iv.Questions) && iv.Questions[prevIndex].ID == req.QuestionID
	if atCurrent {
		if prevIndex == len(iv.Questions)-1 {
			s.finalize(ctx, iv)
			completed = true
		} else {
			iv.CurrentQuestionIndex = prevIndex + 1
		}
	}

	if err := s.repo.UpdateGuarded(ctx, iv, prevStatus, prevIndex); err != nil {
		if errors.Is(err, repository.ErrStale) {
			// Duplicate or racing request: whoever won already applied
			// this transition. Answer from the stored state instead of
			// applying it twice.
			return s.staleSubmitResponse(ctx, id, req.QuestionID)
		}
		return nil, err
	}
	s.invalidate(ctx, id)

	if completed && iv.JobID != "" {
		if err := s.jobRepo.IncrementCompleted(ctx, iv.JobID); err != nil {
			log.Printf("[Interview] failed to bump completed count for job %s: %v", iv.JobID, err)
		}
	}
	return &model.SubmitAnswerResponse{
		Completed:            completed,
		CurrentQuestionIndex: iv.CurrentQuestionIndex,
	}, nil
}

func (s *InterviewService) staleSubmitResponse(ctx context.Context, id, questionID string) (*model.SubmitAnswerResponse, error) {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.AnswerFor(questionID) == nil {
		// Lost the race to some other transition entirely.
		return nil, ErrInterviewState
	}
	return &model.SubmitAnswerResponse{
		Completed:            iv.Status == model.InterviewCompleted,
		CurrentQuestionIndex: iv.CurrentQuestionIndex,
	}, nil
}

// Complete ends the interview unconditionally, however many questions
// remain unanswered. Rejected on terminal interviews; completedAt is never
// re-stamped.
func (s *InterviewService) Complete(ctx context.Context, id string) error {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if iv.Terminal() {
		return ErrInterviewState
	}

	prevStatus := iv.Status
	prevIndex := iv.CurrentQuestionIndex
	s.finalize(ctx, iv)

	if err := s.repo.UpdateGuarded(ctx, iv, prevStatus, prevIndex); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return ErrInterviewState
		}
		return err
	}
	s.invalidate(ctx, id)

	if iv.JobID != "" {
		if err := s.jobRepo.IncrementCompleted(ctx, iv.JobID); err != nil {
			log.Printf("[Interview] failed to bump completed count for job %s: %v", iv.JobID, err)
		}
	}
	return nil
}

// Abandon terminates the interview without a report.
func (s *InterviewService) Abandon(ctx context.Context, id string) error {
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if iv.Terminal() {
		return ErrInterviewState
	}

	prevStatus := iv.Status
	prevIndex := iv.CurrentQuestionIndex
	iv.Status = model.InterviewAbandoned

	if err := s.repo.UpdateGuarded(ctx, iv, prevStatus, prevIndex); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return ErrInterviewState
		}
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// RecordViolation appends a proctoring signal. Violations never affect
// status or progress and are never removed.
func (s *InterviewService) RecordViolation(ctx context.Context, id string, req model.RecordViolationRequest) error {
	ts := req.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	err := s.repo.AppendViolation(ctx, id, model.Violation{Kind: req.Kind, Timestamp: ts})
	if errors.Is(err, repository.ErrStale) {
		// Either unknown or already terminal; look once to tell them apart.
		if _, getErr := s.repo.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrInterviewState
	}
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// GetReport returns the assembled report of a completed interview.
func (s *InterviewService) GetReport(ctx context.Context, id string) (*model.Report, error) {
	iv, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Status != model.InterviewCompleted || iv.Report == nil {
		return nil, ErrReportNotReady
	}
	return iv.Report, nil
}

// GetUserStats aggregates a candidate's completed interviews.
func (s *InterviewService) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	interviews, err := s.repo.GetCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &model.UserStats{CompletedInterviews: len(interviews)}
	totalScore := 0.0
	scoreCount := 0
	totalMinutes := 0
	for _, iv := range interviews {
		if iv.Report != nil && iv.Report.OverallScore != nil {
			totalScore += *iv.Report.OverallScore
			scoreCount++
		}
		if iv.CompletedAt != nil {
			totalMinutes += int(iv.CompletedAt.Sub(iv.CreatedAt).Round(time.Minute) / time.Minute)
		}
	}
	if scoreCount > 0 {
		avg := totalScore / float64(scoreCount)
		stats.AverageScore = &avg
	}
	stats.TotalPracticeTime = formatMinutes(totalMinutes)
	return stats, nil
}

// finalize moves the aggregate to completed: stamps completedAt, runs the
// evaluator over answered transcripts, and assembles the report. Called
// exactly once per interview thanks to the guarded write that follows.
func (s *InterviewService) finalize(ctx context.Context, iv *model.Interview) {
	now := time.Now()
	iv.Status = model.InterviewCompleted
	iv.CompletedAt = &now

	for i := range iv.Answers {
		ans := &iv.Answers[i]
		if !ans.Answered() || ans.AIEvaluation != nil {
			continue
		}
		if q := iv.QuestionByID(ans.QuestionID); q != nil {
			ans.AIEvaluation = s.evaluator.Evaluate(ctx, q, ans)
		}
	}

	iv.Report = s.reportSvc.Assemble(iv)
}

// load is the cached read path for display operations.
func (s *InterviewService) load(ctx context.Context, id string) (*model.Interview, error) {
	if iv, err := s.ivCache.Get(ctx, id); err == nil && iv != nil {
		return iv, nil
	}
	iv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ivCache.Set(ctx, iv); err != nil {
		log.Printf("[Interview] cache set failed for %s: %v", id, err)
	}
	return iv, nil
}

func (s *InterviewService) invalidate(ctx context.Context, id string) {
	if err := s.ivCache.Delete(ctx, id); err != nil {
		log.Printf("[Interview] cache invalidation failed for %s: %v", id, err)
	}
}

func formatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	return fmt.Sprintf("%dm", minutes)
}
