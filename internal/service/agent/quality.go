package agent

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/engage-agent/internal/domain"
	"github.com/heartmarshall/engage-agent/internal/service/prompt"
)

// staticApproval is returned when no quality template is configured. It is a
// fixed verdict, not an evaluation.
func staticApproval() domain.QualityReport {
	return domain.QualityReport{
		OverallScore: 0.9,
		CriteriaScores: map[string]float64{
			"grammar":         1.0,
			"tone":            0.9,
			"personalization": 0.8,
			"relevance":       0.9,
			"spam_score":      0.1,
			"ethics":          1.0,
		},
		Approved: true,
	}
}

// CheckQuality grades message against the quality_checker template. Without
// that template the LLM is not called and a static approval is returned. An
// answer that is not a verdict yields a rejection carrying the answer text.
func (s *Service) CheckQuality(ctx context.Context, message string, userContext map[string]any) domain.QualityReport {
	tmpl := s.templates.GetTemplate(ctx, domain.PromptQualityChecker)
	if tmpl == "" {
		return staticApproval()
	}
	if userContext == nil {
		userContext = map[string]any{}
	}

	text := prompt.Render(tmpl, map[string]string{
		"message":      message,
		"user_context": toJSON(userContext),
	})

	res := s.llm.Complete(ctx, systemEditor, text)
	logResult(ctx, s.log, "check_quality", res)

	if !res.Structured() {
		return domain.QualityReport{Comments: res.Text}
	}

	var report domain.QualityReport
	if err := res.Decode(&report); err != nil {
		s.log.WarnContext(ctx, "undecodable quality verdict", slog.String("error", err.Error()))
		return domain.QualityReport{Comments: toJSON(res.Fields)}
	}
	if report.CriteriaScores == nil {
		report.CriteriaScores = map[string]float64{}
	}
	return report
}
