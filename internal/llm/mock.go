package llm

import "strings"

var (
	decisionCues   = []string{"should_engage", "решение", "реши", "должно"}
	qualityCues    = []string{"проверь", "quality"}
	generationCues = []string{"текст", "напиши"}
)

const (
	MockSubject  = "Забыли что-то в корзине?"
	mockBody     = "Здравствуйте! Мы заметили, что вы добавили товары в корзину, но не завершили покупку. Готовы оформить заказ?"
	mockReason   = "Пользователь добавил товар в корзину, но не завершил покупку. Это хороший момент для напоминания."
	mockPromo    = "Здравствуйте! У нас есть специальное предложение для вас. Проверьте свою корзину!"
	mockEchoText = "Мок-ответ"
	mockEchoLen  = 100
)

// Mock returns the canned answer for prompt. It is a pure function of the
// prompt text; reason is only recorded on the result.
//
// Quality cues are checked before generation cues: quality prompts quote the
// message under review and usually contain "текст" as well.
func Mock(prompt string, reason FallbackReason) Result {
	lower := strings.ToLower(prompt)

	var fields map[string]any
	switch {
	case containsAny(lower, decisionCues):
		fields = map[string]any{
			"should_engage": true,
			"reasoning":     mockReason,
			"action": map[string]any{
				"type":            "email",
				"subject":         MockSubject,
				"body":            mockBody,
				"recommendations": []any{},
			},
		}
	case containsAny(lower, qualityCues):
		fields = map[string]any{
			"overall_score": 0.85,
			"criteria_scores": map[string]any{
				"grammar":         0.9,
				"tone":            0.8,
				"personalization": 0.7,
				"relevance":       0.9,
				"spam_score":      0.2,
				"ethics":          1.0,
			},
			"approved":              true,
			"comments":              "",
			"suggested_improvement": "",
		}
	case containsAny(lower, generationCues):
		fields = map[string]any{"text": mockPromo}
	default:
		fields = map[string]any{"text": mockEchoText, "raw": truncateRunes(prompt, mockEchoLen)}
	}

	return Result{
		Kind:           KindStructured,
		Source:         SourceMock,
		FallbackReason: reason,
		Fields:         fields,
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
