package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/P4ndro/Intervia/internal/config"
	"github.com/P4ndro/Intervia/internal/model"
)

// Evaluator scores one answer against its question. The scoring model
// itself is external; implementations must always return a usable record.
type Evaluator interface {
	Evaluate(ctx context.Context, question *model.Question, answer *model.Answer) *model.AIEvaluation
}

// EvaluatorService scores answers through an OpenAI-compatible chat
// completions endpoint, degrading to a transcript-length heuristic
// whenever the endpoint is unconfigured or misbehaves.
type EvaluatorService struct {
	cfg    *config.AIConfig
	client *resty.Client
}

func NewEvaluatorService(cfg *config.AIConfig) *EvaluatorService {
	return &EvaluatorService{
		cfg: cfg,
		client: resty.New().
			SetTimeout(time.Duration(cfg.TimeoutMS) * time.Millisecond),
	}
}

func (s *EvaluatorService) Evaluate(ctx context.Context, question *model.Question, answer *model.Answer) *model.AIEvaluation {
	if !s.cfg.EvalEnabled() {
		return s.mockEvaluate(answer)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.cfg.EvalAPIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.cfg.EvalModel,
			"messages": []map[string]string{
				{"role": "system", "content": "You are an interviewer scoring candidate answers."},
				{"role": "user", "content": buildEvaluationPrompt(question, answer)},
			},
		}).
		Post(s.cfg.EvalBaseURL)
	if err != nil {
		log.Printf("[Evaluator] call failed, using heuristic scores: %v", err)
		return s.mockEvaluate(answer)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" || !gjson.Valid(text) {
		log.Println("[Evaluator] unparsable evaluator response, using heuristic scores")
		return s.mockEvaluate(answer)
	}

	eval := &model.AIEvaluation{
		RelevanceScore:    gjson.Get(text, "relevanceScore").Float(),
		ClarityScore:      gjson.Get(text, "clarityScore").Float(),
		DepthScore:        gjson.Get(text, "depthScore").Float(),
		TechnicalAccuracy: gjson.Get(text, "technicalAccuracy").Float(),
		Feedback:          gjson.Get(text, "feedback").String(),
		Confidence:        gjson.Get(text, "confidence").Float(),
	}
	for _, issue := range gjson.Get(text, "detectedIssues").Array() {
		eval.DetectedIssues = append(eval.DetectedIssues, issue.String())
	}
	for _, strength := range gjson.Get(text, "strengths").Array() {
		eval.Strengths = append(eval.Strengths, strength.String())
	}
	for _, kw := range gjson.Get(text, "keywords").Array() {
		eval.Keywords = append(eval.Keywords, kw.String())
	}
	return eval
}

func buildEvaluationPrompt(question *model.Question, answer *model.Answer) string {
	return fmt.Sprintf(`Evaluate this interview answer. Return STRICTLY a JSON object:
{
  "relevanceScore": <0-100>,
  "clarityScore": <0-100>,
  "depthScore": <0-100>,
  "technicalAccuracy": <0-100>,
  "feedback": "<one short paragraph>",
  "detectedIssues": ["<issue>"],
  "strengths": ["<strength>"],
  "keywords": ["<keyword>"],
  "confidence": <0.0-1.0>
}

Question (%s, %s): %s

Candidate's answer:
%s`, question.Type, question.Category, question.Text, answer.Transcript)
}

// mockEvaluate grades on transcript length alone. Good enough to keep the
// report pipeline alive when no evaluator is reachable.
func (s *EvaluatorService) mockEvaluate(answer *model.Answer) *model.AIEvaluation {
	wordCount := len(strings.Fields(answer.Transcript))
	score := float64(wordCount) * 2
	if score > 100 {
		score = 100
	}

	eval := &model.AIEvaluation{
		RelevanceScore:    score,
		ClarityScore:      score,
		DepthScore:        score,
		TechnicalAccuracy: score,
		Feedback:          "Heuristic evaluation based on answer length.",
		Confidence:        0.2,
	}
	if wordCount < 30 {
		eval.DetectedIssues = []string{"Answer is short on detail"}
	} else {
		eval.Strengths = []string{"Gave a substantial answer"}
	}
	return eval
}
