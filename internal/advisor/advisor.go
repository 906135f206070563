// Package advisor turns one free-text scheduling request into a structured
// recommendation: resolve a time, apply business rules, detect conflicts and
// suggest alternatives, or ask for the details that are missing.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/alexanderramin/lichhen/internal/classify"
	"github.com/alexanderramin/lichhen/internal/config"
	"github.com/alexanderramin/lichhen/internal/contract"
	"github.com/alexanderramin/lichhen/internal/domain"
	"github.com/alexanderramin/lichhen/internal/intelligence"
	"github.com/alexanderramin/lichhen/internal/scheduler"
	"github.com/alexanderramin/lichhen/internal/timeparse"
)

// QuestionGenerator phrases the clarifying question for missing details.
// It is optional; failures fall back to a fixed template.
type QuestionGenerator interface {
	Generate(ctx context.Context, missing []domain.MissingField, text string) (string, error)
}

// Advisor holds only read-only collaborators and is safe for concurrent use.
type Advisor struct {
	parser     *timeparse.Parser
	classifier *classify.Classifier
	rules      *scheduler.Rules
	calendar   scheduler.Calendar
	questions  QuestionGenerator
	clock      func() time.Time
	logger     *slog.Logger
}

type Option func(*Advisor)

func WithQuestionGenerator(g QuestionGenerator) Option {
	return func(a *Advisor) { a.questions = g }
}

// WithClock replaces time.Now for requests that do not carry their own Now.
func WithClock(clock func() time.Time) Option {
	return func(a *Advisor) { a.clock = clock }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Advisor) { a.logger = l }
}

func New(parser *timeparse.Parser, classifier *classify.Classifier, rules *scheduler.Rules, calendar scheduler.Calendar, opts ...Option) *Advisor {
	a := &Advisor{
		parser:     parser,
		classifier: classifier,
		rules:      rules,
		calendar:   calendar,
		clock:      time.Now,
		logger:     slog.Default(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// NewFromConfig wires the parser, classifier and rules from cfg.
func NewFromConfig(cfg *config.Config, calendar scheduler.Calendar, opts ...Option) *Advisor {
	return New(
		timeparse.New(cfg.Location()),
		classify.New(cfg.Categories, cfg.Urgency.High, cfg.Urgency.Low),
		scheduler.NewRules(cfg.Business),
		calendar,
		opts...,
	)
}

// Advise never returns nil and never panics: every failure becomes an error
// result.
func (a *Advisor) Advise(ctx context.Context, req contract.AdviceRequest) (res *contract.AdviceResult) {
	now := a.now(req)
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("advise panicked", "panic", r, "stack", string(debug.Stack()))
			res = contract.NewErrorResult(req.Text, now, contract.ErrInternal, fmt.Sprint(r))
		}
	}()

	if strings.TrimSpace(req.Text) == "" && !hasHints(req) {
		return contract.NewErrorResult(req.Text, now, contract.ErrInvalidRequest, "yêu cầu trống")
	}

	info := a.classifier.Classify(req.Text)
	a.applyHints(req, &info)

	start, resolvedBy, ok := a.resolveTime(req, now, info)
	if !ok {
		return a.needMoreInfo(ctx, req, now, info)
	}
	a.logger.Debug("time resolved", "by", resolvedBy, "start", start.Format(time.RFC3339))

	duration := time.Duration(info.DurationMinutes) * time.Minute
	adj, err := a.rules.Adjust(ctx, a.calendar, start, duration, info.Priority)
	if err != nil {
		a.logger.Error("adjusting time failed", "error", err)
		return contract.NewErrorResult(req.Text, now, contract.ErrInternal, err.Error())
	}
	if req.RequireSlot && !adj.Secured {
		return contract.NewErrorResult(req.Text, now, contract.ErrNoSlot, lastWarning(adj))
	}

	alternatives, err := a.rules.GenerateAlternatives(ctx, a.calendar, adj.Start, info.BestWindow, duration, now)
	if err != nil {
		a.logger.Error("generating alternatives failed", "error", err)
		return contract.NewErrorResult(req.Text, now, contract.ErrInternal, err.Error())
	}

	rec := &contract.Recommendation{
		OriginalTime:    start,
		RecommendedTime: adj.Start,
		DurationMin:     info.DurationMinutes,
		Priority:        info.Priority,
		Category:        info.Category,
		CategoryLabel:   info.CategoryLabel,
		ResolvedBy:      resolvedBy,
		Alternatives:    alternatives,
		HasConflict:     len(adj.Conflicts) > 0,
		Secured:         adj.Secured,
	}
	for _, w := range adj.Warnings {
		rec.Warnings = append(rec.Warnings, contract.Warning{Code: string(w.Code), Message: w.Message})
	}
	for _, e := range adj.Conflicts {
		rec.Conflicts = append(rec.Conflicts, contract.ConflictingEntry{
			ID:    e.ID,
			Title: e.Title,
			Start: e.StartTime,
			End:   e.EndTime,
		})
	}
	return contract.NewSuccessResult(req.Text, now, rec)
}

func (a *Advisor) now(req contract.AdviceRequest) time.Time {
	now := a.clock()
	if req.Now != nil {
		now = *req.Now
	}
	return now.In(a.parser.Location())
}

func (a *Advisor) applyHints(req contract.AdviceRequest, info *classify.TaskInfo) {
	if req.DurationMin != nil && *req.DurationMin > 0 {
		info.DurationMinutes = *req.DurationMin
		info.DurationFromText = true
	}
	if p, ok := domain.ParsePriority(req.Priority); ok {
		info.Priority = p
		info.PriorityFromText = true
	}
}

func (a *Advisor) needMoreInfo(ctx context.Context, req contract.AdviceRequest, now time.Time, info classify.TaskInfo) *contract.AdviceResult {
	missing := []domain.MissingField{domain.MissingTime}
	if !info.DurationFromText && !info.CategoryMatched {
		missing = append(missing, domain.MissingDuration)
	}
	if !info.PriorityFromText && !info.CategoryMatched {
		missing = append(missing, domain.MissingPriority)
	}
	if _, ok := domain.ParseTimeOfDay(req.TimeOfDay); !ok {
		if _, _, stated := timeparse.ClockIn(req.Text); !stated {
			missing = append(missing, domain.MissingTimeOfDay)
		}
	}

	question, source := a.question(ctx, missing, req.Text)
	return contract.NewNeedMoreInfoResult(req.Text, now, &contract.NeedMoreInfo{
		MissingFields:  missing,
		Question:       question,
		QuestionSource: source,
		DurationMin:    info.DurationMinutes,
		Priority:       info.Priority,
		Category:       info.Category,
		CategoryLabel:  info.CategoryLabel,
	})
}

// question asks the generator first. A panic inside the generator is treated
// like an error.
func (a *Advisor) question(ctx context.Context, missing []domain.MissingField, text string) (q string, source contract.QuestionSource) {
	if a.questions == nil {
		return intelligence.TemplateQuestion(missing), contract.QuestionFromTemplate
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("question generator panicked, using template", "panic", r)
			q, source = intelligence.TemplateQuestion(missing), contract.QuestionFromTemplate
		}
	}()

	generated, err := a.questions.Generate(ctx, missing, text)
	if err != nil || strings.TrimSpace(generated) == "" {
		a.logger.Warn("question generator failed, using template", "error", err)
		return intelligence.TemplateQuestion(missing), contract.QuestionFromTemplate
	}
	return generated, contract.QuestionFromLLM
}

func hasHints(req contract.AdviceRequest) bool {
	return req.PreferredDate != "" || req.PreferredWeekday != "" || req.TimeOfDay != ""
}

func lastWarning(adj *scheduler.Adjustment) string {
	if len(adj.Warnings) == 0 {
		return "không tìm được khung giờ trống"
	}
	return adj.Warnings[len(adj.Warnings)-1].Message
}
