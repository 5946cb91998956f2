package service

import "errors"

var (
	// ErrNotConfigured means the generation provider is unusable and no
	// static mode was requested. Surfaced at startup; nothing runs
	// without a question source.
	ErrNotConfigured = errors.New("question generation not configured: set GEMINI_API_KEY or USE_STATIC_QUESTIONS=true")

	// ErrInterviewState rejects mutating operations against a terminal
	// interview. Silently accepting them would corrupt the answer and
	// progress invariants.
	ErrInterviewState = errors.New("interview is not in progress")

	// ErrUnknownQuestion rejects an answer for a question id outside the
	// interview's question set.
	ErrUnknownQuestion = errors.New("question id not in interview")

	// ErrReportNotReady is returned when a report is requested for an
	// interview that has not completed.
	ErrReportNotReady = errors.New("report not available")
)
