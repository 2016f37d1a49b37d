// Package tagfilter разбирает строки вида "#python #webdev" и отбирает
// объявления, у которых есть все запрошенные теги.
package tagfilter

import (
	"strings"
	"unicode"
)

// Tagged - всё, у чего есть набор тегов
type Tagged interface {
	TagNames() []string
}

// Parse убирает пробельные символы, приводит к нижнему регистру, режет по '#'
// и удаляет пустые токены и дубликаты. Порядок первого появления сохраняется.
func Parse(raw string) []string {
	compact := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, token := range strings.Split(strings.ToLower(compact), "#") {
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tags = append(tags, token)
	}
	return tags
}

// Matches сообщает, что required является подмножеством tags
func Matches(required []string, tags []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		have[t] = struct{}{}
	}
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

// Filter оставляет кандидатов, содержащих все required теги, в исходном порядке.
// Пустой required возвращает кандидатов без просмотра.
func Filter[T Tagged](required []string, candidates []T) []T {
	if len(required) == 0 {
		return candidates
	}
	result := make([]T, 0, len(candidates))
	for _, c := range candidates {
		if Matches(required, c.TagNames()) {
			result = append(result, c)
		}
	}
	return result
}

// Format собирает теги обратно в строку "#a #b" для ответа клиенту
func Format(tags []string) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = "#" + t
	}
	return strings.Join(parts, " ")
}
