package prompt

import "github.com/heartmarshall/engage-agent/internal/domain"

// Built-in templates used when no active template is stored.
var defaults = map[string]string{
	domain.PromptDecisionAgent: `Ты — AI-агент по персонализации коммуникаций.

Контекст:
- Пользователь: {user_profile}
- Событие: {event}
- История за 24ч: {recent_activity}

Реши, нужно ли отправить сообщение. Ответь JSON:
{{
  "should_engage": true/false,
  "reasoning": "почему",
  "action": {{
    "type": "email" или "push" или null,
    "subject": "тема",
    "body": "текст"
  }}
}}`,

	domain.PromptTextGenerator: `Напиши персонализированное сообщение для {channel}.

Клиент: {name}
Интересы: {interests}
Сегмент: {segment}

Email: до 150 слов. Push: до 80 символов.`,
}

// DefaultTemplate returns the built-in template for name, or "".
func DefaultTemplate(name string) string {
	return defaults[name]
}
