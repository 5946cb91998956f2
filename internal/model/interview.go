package model

import "time"

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewCompleted  InterviewStatus = "completed"
	InterviewAbandoned  InterviewStatus = "abandoned"
)

type InterviewType string

const (
	InterviewTypePractice    InterviewType = "practice"
	InterviewTypeApplication InterviewType = "application"
)

// ViolationKind is a proctoring signal. Violations are recorded, never
// acted upon.
type ViolationKind string

const (
	ViolationFullscreenExit ViolationKind = "fullscreen_exit"
	ViolationTabSwitch      ViolationKind = "tab_switch"
	ViolationWindowBlur     ViolationKind = "window_blur"
)

type Violation struct {
	Kind      ViolationKind `json:"type" bson:"type"`
	Timestamp time.Time     `json:"timestamp" bson:"timestamp"`
}

// AIEvaluation holds the opaque per-answer scores supplied by the external
// evaluator. Sub-scores are 0-100.
type AIEvaluation struct {
	RelevanceScore    float64  `json:"relevanceScore" bson:"relevanceScore"`
	ClarityScore      float64  `json:"clarityScore" bson:"clarityScore"`
	DepthScore        float64  `json:"depthScore" bson:"depthScore"`
	TechnicalAccuracy float64  `json:"technicalAccuracy" bson:"technicalAccuracy"`
	Feedback          string   `json:"feedback,omitempty" bson:"feedback,omitempty"`
	DetectedIssues    []string `json:"detectedIssues,omitempty" bson:"detectedIssues,omitempty"`
	Strengths         []string `json:"strengths,omitempty" bson:"strengths,omitempty"`
	Keywords          []string `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Confidence        float64  `json:"confidence" bson:"confidence"`
}

// Score folds the sub-scores into a single 0-100 answer score.
func (e *AIEvaluation) Score() float64 {
	return (e.RelevanceScore + e.ClarityScore + e.DepthScore + e.TechnicalAccuracy) / 4
}

type Answer struct {
	QuestionID   string        `json:"questionId" bson:"questionId"`
	Transcript   string        `json:"transcript" bson:"transcript"`
	Skipped      bool          `json:"skipped" bson:"skipped"`
	SubmittedAt  time.Time     `json:"submittedAt" bson:"submittedAt"`
	AIEvaluation *AIEvaluation `json:"aiEvaluation,omitempty" bson:"aiEvaluation,omitempty"`
}

// Answered reports whether this answer counts as answered rather than
// skipped: a non-empty transcript that was not skipped.
func (a *Answer) Answered() bool {
	return !a.Skipped && a.Transcript != ""
}

// Interview is the session aggregate. It exclusively owns its embedded
// questions, answers, violations and report; a Job is referenced by id
// only.
type Interview struct {
	ID                   string          `json:"id" bson:"_id,omitempty"`
	UserID               string          `json:"userId" bson:"userId"`
	InterviewType        InterviewType   `json:"interviewType" bson:"interviewType"`
	JobID                string          `json:"jobId,omitempty" bson:"jobId,omitempty"`
	CompanyID            string          `json:"companyId,omitempty" bson:"companyId,omitempty"`
	Status               InterviewStatus `json:"status" bson:"status"`
	Questions            []Question      `json:"questions" bson:"questions"`
	Answers              []Answer        `json:"answers" bson:"answers"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex" bson:"currentQuestionIndex"`
	Report               *Report         `json:"report,omitempty" bson:"report,omitempty"`
	Violations           []Violation     `json:"violations,omitempty" bson:"violations,omitempty"`
	CreatedAt            time.Time       `json:"createdAt" bson:"createdAt"`
	CompletedAt          *time.Time      `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Terminal reports whether the interview left in_progress. Terminal
// interviews reject every mutating operation.
func (iv *Interview) Terminal() bool {
	return iv.Status != InterviewInProgress
}

// HasQuestion reports whether id names one of the embedded questions.
func (iv *Interview) HasQuestion(id string) bool {
	for _, q := range iv.Questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

// QuestionByID returns the embedded question with the given id.
func (iv *Interview) QuestionByID(id string) *Question {
	for i := range iv.Questions {
		if iv.Questions[i].ID == id {
			return &iv.Questions[i]
		}
	}
	return nil
}

// AnswerFor returns the stored answer for a question, or nil.
func (iv *Interview) AnswerFor(questionID string) *Answer {
	for i := range iv.Answers {
		if iv.Answers[i].QuestionID == questionID {
			return &iv.Answers[i]
		}
	}
	return nil
}

// UpsertAnswer replaces the answer for ans.QuestionID or appends it.
// One answer per question id; resubmission overwrites.
func (iv *Interview) UpsertAnswer(ans Answer) {
	for i := range iv.Answers {
		if iv.Answers[i].QuestionID == ans.QuestionID {
			iv.Answers[i] = ans
			return
		}
	}
	iv.Answers = append(iv.Answers, ans)
}

// SubmitAnswerRequest is the body of POST /v1/interviews/{id}/answers.
type SubmitAnswerRequest struct {
	QuestionID string `json:"questionId"`
	Transcript string `json:"transcript"`
	Skipped    bool   `json:"skipped"`
}

// SubmitAnswerResponse tells the client whether this submission completed
// the interview.
type SubmitAnswerResponse struct {
	Completed            bool `json:"completed"`
	CurrentQuestionIndex int  `json:"currentQuestionIndex"`
}

// StartInterviewRequest is the body of POST /v1/interviews.
type StartInterviewRequest struct {
	InterviewType InterviewType `json:"interviewType"`
	JobID         string        `json:"jobId,omitempty"`
}

type StartInterviewResponse struct {
	InterviewID string `json:"interviewId"`
}

// RecordViolationRequest is the body of POST /v1/interviews/{id}/violations.
type RecordViolationRequest struct {
	Kind      ViolationKind `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
}

// InterviewView is the read shape returned by GET /v1/interviews/{id}.
type InterviewView struct {
	ID                   string          `json:"id"`
	Status               InterviewStatus `json:"status"`
	InterviewType        InterviewType   `json:"interviewType"`
	Questions            []Question      `json:"questions"`
	Answers              []Answer        `json:"answers"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex"`
	JobTitle             string          `json:"jobTitle,omitempty"`
	CompanyName          string          `json:"companyName,omitempty"`
}

// UserStats summarizes a candidate's completed interviews.
type UserStats struct {
	CompletedInterviews int      `json:"completedInterviews"`
	AverageScore        *float64 `json:"averageScore"`
	TotalPracticeTime   string   `json:"totalPracticeTime"`
}
