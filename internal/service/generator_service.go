package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/P4ndro/Intervia/internal/config"
	"github.com/P4ndro/Intervia/internal/model"
)

// GeneratorService produces interview question sets via the Gemini API.
// The resolution mode is fixed at construction: static mode returns the
// built-in set, provider mode calls Gemini and falls back to the built-in
// set on any transport, extraction or parse fault. Callers always receive
// a usable set.
type GeneratorService struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewGeneratorService creates a generator. It fails with ErrNotConfigured
// when neither a provider key nor static mode is available; this is the
// only hard failure in the generation path.
func NewGeneratorService(cfg *config.AIConfig) (*GeneratorService, error) {
	if !cfg.GenerationEnabled() && !cfg.StaticQuestions {
		return nil, ErrNotConfigured
	}
	if cfg.StaticQuestions {
		log.Println("[Generator] static mode: using built-in question set")
	} else {
		log.Printf("[Generator] provider mode: model=%s timeout=%dms", cfg.Model, cfg.TimeoutMS)
	}
	return &GeneratorService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}, nil
}

// Generate returns a question set for the given position. The returned
// set always has the fixed length and id scheme; structural deviations
// from provider output are normalized or, where unrecoverable, replaced
// position-by-position from the static set.
func (s *GeneratorService) Generate(ctx context.Context, spec model.GenerationSpec, gc model.GenerationConfig) []model.Question {
	if gc.NumQuestions == 0 {
		gc = model.DefaultGenerationConfig()
	}
	if s.cfg.StaticQuestions {
		return staticQuestionSet(gc.Difficulty)
	}

	prompt := buildPrompt(spec, gc)
	raw, err := s.callGemini(ctx, prompt)
	if err != nil {
		log.Printf("[Generator] provider call failed, falling back to static set: %v", err)
		return staticQuestionSet(gc.Difficulty)
	}

	jsonText, ok := extractJSONArray(raw)
	if !ok || !gjson.Valid(jsonText) {
		log.Printf("[Generator] no parsable JSON array in provider response, falling back (preview: %.80s)", raw)
		return staticQuestionSet(gc.Difficulty)
	}

	parsed := gjson.Parse(jsonText)
	if !parsed.IsArray() {
		log.Println("[Generator] provider JSON is not an array, falling back to static set")
		return staticQuestionSet(gc.Difficulty)
	}

	questions := normalizeQuestions(parsed.Array(), gc.Difficulty)
	warnOnComposition(questions)
	return questions
}

// callGemini makes one bounded request to the generateContent endpoint and
// returns the raw candidate text.
func (s *GeneratorService) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.cfg.ModelEndpoint(), s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	text := gjson.GetBytes(body, "candidates.0.content.parts.0.text").String()
	if text == "" {
		return "", fmt.Errorf("empty response from provider")
	}
	return text, nil
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// extractJSONArray pulls a JSON array out of free-form provider text:
// fenced ```json block first, then any fenced block, then a bare
// top-level array located by bracket matching.
func extractJSONArray(raw string) (string, bool) {
	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := fencedAnyRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return matchBareArray(raw)
}

// matchBareArray scans for the first top-level [...] span, tracking string
// literals and escapes so brackets inside question text do not truncate
// the match.
func matchBareArray(raw string) (string, bool) {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// inferQuestionType maps a category onto a question type. Categories with
// no recognizable signal are not guessed.
func inferQuestionType(category string) (model.QuestionType, bool) {
	lower := strings.ToLower(category)
	switch {
	case lower == "coding":
		return model.QuestionTypeCoding, true
	case strings.Contains(lower, "technical"), strings.Contains(lower, "algorithm"):
		return model.QuestionTypeTechnical, true
	case lower == "communication", lower == "leadership", lower == "teamwork":
		return model.QuestionTypeBehavioral, true
	}
	return "", false
}

// normalizeQuestions applies per-element defaults to the parsed array. An
// element whose type is unrecognized and whose category carries no signal
// is replaced wholesale by the static element at its position rather than
// guessed.
func normalizeQuestions(elems []gjson.Result, difficulty model.Difficulty) []model.Question {
	static := staticQuestionSet(difficulty)
	questions := make([]model.Question, 0, len(elems))

	for i, el := range elems {
		typ := model.QuestionType(el.Get("type").String())
		switch typ {
		case model.QuestionTypeBehavioral, model.QuestionTypeTechnical, model.QuestionTypeCoding:
		default:
			inferred, ok := inferQuestionType(el.Get("category").String())
			if !ok {
				if i < len(static) {
					log.Printf("[Generator] rejecting element %d (type %q, category %q), substituting static question", i+1, typ, el.Get("category").String())
					questions = append(questions, static[i])
					continue
				}
				inferred = model.QuestionTypeBehavioral
			}
			typ = inferred
		}

		q := model.Question{
			ID:         el.Get("id").String(),
			Text:       el.Get("text").String(),
			Type:       typ,
			Category:   el.Get("category").String(),
			Difficulty: model.Difficulty(el.Get("difficulty").String()),
			Weight:     el.Get("weight").Float(),
		}
		if q.ID == "" {
			q.ID = fmt.Sprintf("q%d", i+1)
		}
		if q.Category == "" {
			q.Category = "general"
		}
		if q.Difficulty == "" {
			q.Difficulty = difficulty
		}
		if q.Weight <= 0 {
			q.Weight = model.WeightForType(typ)
		}
		questions = append(questions, q)
	}
	return questions
}

// warnOnComposition logs structural deviations. The set is still returned
// as-is; conformance of provider output is checked, not enforced.
func warnOnComposition(questions []model.Question) {
	if len(questions) != model.NumQuestions {
		log.Printf("[Generator] expected %d questions, got %d", model.NumQuestions, len(questions))
	}

	counts := map[model.QuestionType]int{}
	types := make([]string, 0, len(questions))
	for _, q := range questions {
		counts[q.Type]++
		types = append(types, string(q.Type))
	}
	if counts[model.QuestionTypeBehavioral] < 1 || counts[model.QuestionTypeTechnical] < 2 || counts[model.QuestionTypeCoding] < 2 {
		log.Printf("[Generator] composition off target (want 1 behavioral / 2 technical / 2 coding), got: %s", strings.Join(types, ", "))
	}
}

func buildPrompt(spec model.GenerationSpec, gc model.GenerationConfig) string {
	position := fmt.Sprintf("a %s level software engineer position (practice interview)", orDefault(spec.Level, "Mid"))
	description := ""
	if !spec.Practice {
		position = fmt.Sprintf("a %s %s position", spec.Level, spec.JobTitle)
		description = "\nJob Description:\n" + spec.Description + "\n"
	}

	return fmt.Sprintf(`You are an expert technical recruiter and interviewer.

Generate EXACTLY %d interview questions for %s.
%s
CRITICAL REQUIREMENTS (must follow exactly):
1) Output MUST be ONLY a valid JSON array. No markdown. No extra text.
2) Generate exactly:
   - 1 behavioral question (type = "behavioral")
   - 2 technical questions (type = "technical")
   - 2 coding questions (type = "coding")
3) IDs must be: q1, q2, q3, q4, q5, in order behavioral, technical, technical, coding, coding.
4) Weight rules: behavioral weight = 1, technical weight = 2, coding weight = 3.
5) Difficulty must match: %s
6) ALL questions must be ANSWERABLE IN 5 MINUTES OR LESS. Keep them concise and focused.

DEFINITIONS:
- behavioral: Simple, clear question about collaboration/communication/leadership. Answerable in 2-3 minutes.
- technical: Simple technical question answerable in 3-5 minutes. Practical knowledge, 1-2 sentences, no long scenarios.
- coding: SIMPLE coding problem solvable in 5 minutes, beginner to intermediate level, with one input/output example. NO complex algorithms, NO system design.

CATEGORY FIELD RULES:
- behavioral categories: "communication" or "leadership" or "teamwork"
- technical categories: "algorithms" or "databases" or "networks" or "security" or "api-design" or "programming-concepts"
- coding categories: "coding"

Return ONLY a JSON array of %d objects with fields: id, text, type, category, difficulty, weight.`,
		gc.NumQuestions, position, description, gc.Difficulty, gc.NumQuestions)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
