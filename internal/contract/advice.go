package contract

import (
	"time"

	"github.com/alexanderramin/lichhen/internal/domain"
)

// AdviceRequest is one advisory call. Only Text is required; the hints are
// tried before the text and ignored when malformed.
type AdviceRequest struct {
	Text string
	// Now fixes the reference time for the whole request; nil means the
	// advisor's clock.
	Now *time.Time

	PreferredDate    string // "15/8", "15/8/2025" or "2025-08-15"
	PreferredWeekday string // "thứ 6", "t6", "chủ nhật"
	TimeOfDay        string // "sáng|chiều|tối" or "morning|afternoon|evening"
	DurationMin      *int
	Priority         string // "high|normal|low" or "cao|bình thường|thấp"

	// RequireSlot turns an unsecured slot into an error result instead of a
	// warning.
	RequireSlot bool
}

func NewAdviceRequest(text string) AdviceRequest {
	return AdviceRequest{Text: text}
}

type AdviceStatus string

const (
	StatusSuccess      AdviceStatus = "success"
	StatusNeedMoreInfo AdviceStatus = "need_more_info"
	StatusError        AdviceStatus = "error"
)

type Warning struct {
	Code    string
	Message string
}

type ConflictingEntry struct {
	ID    string
	Title string
	Start time.Time
	End   time.Time
}

// Recommendation is filled the same way whether or not a conflict occurred;
// HasConflict tells the two apart.
type Recommendation struct {
	OriginalTime    time.Time
	RecommendedTime time.Time
	DurationMin     int
	Priority        domain.Priority
	Category        string
	CategoryLabel   string
	ResolvedBy      string
	Warnings        []Warning
	Alternatives    []time.Time
	Conflicts       []ConflictingEntry
	HasConflict     bool
	Secured         bool
}

// EndTime is RecommendedTime plus the duration.
func (r *Recommendation) EndTime() time.Time {
	return r.RecommendedTime.Add(time.Duration(r.DurationMin) * time.Minute)
}

// QuestionSource tells where a clarifying question came from.
type QuestionSource string

const (
	QuestionFromLLM      QuestionSource = "llm"
	QuestionFromTemplate QuestionSource = "template"
)

type NeedMoreInfo struct {
	MissingFields  []domain.MissingField
	Question       string
	QuestionSource QuestionSource

	// Defaults inferred so far, shown alongside the question.
	DurationMin   int
	Priority      domain.Priority
	Category      string
	CategoryLabel string
}

// Has reports whether f is among the missing fields.
func (n *NeedMoreInfo) Has(f domain.MissingField) bool {
	for _, m := range n.MissingFields {
		if m == f {
			return true
		}
	}
	return false
}

type AdviceErrorCode string

const (
	ErrInvalidRequest AdviceErrorCode = "INVALID_REQUEST"
	ErrNoSlot         AdviceErrorCode = "NO_SLOT"
	ErrInternal       AdviceErrorCode = "INTERNAL_ERROR"
)

type AdviceError struct {
	Code    AdviceErrorCode
	Message string
}

func (e *AdviceError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// AdviceResult carries exactly one of Recommendation, NeedMoreInfo or
// Failure, matching Status.
type AdviceResult struct {
	Status         AdviceStatus
	GeneratedAt    time.Time
	Text           string
	Recommendation *Recommendation
	NeedMoreInfo   *NeedMoreInfo
	Failure        *AdviceError
}

func NewSuccessResult(text string, at time.Time, rec *Recommendation) *AdviceResult {
	return &AdviceResult{Status: StatusSuccess, GeneratedAt: at, Text: text, Recommendation: rec}
}

func NewNeedMoreInfoResult(text string, at time.Time, info *NeedMoreInfo) *AdviceResult {
	return &AdviceResult{Status: StatusNeedMoreInfo, GeneratedAt: at, Text: text, NeedMoreInfo: info}
}

func NewErrorResult(text string, at time.Time, code AdviceErrorCode, msg string) *AdviceResult {
	return &AdviceResult{
		Status:      StatusError,
		GeneratedAt: at,
		Text:        text,
		Failure:     &AdviceError{Code: code, Message: msg},
	}
}
