package ai

import (
	"regexp"
	"strings"
)

var enumerationPrefix = regexp.MustCompile(`^\d+\.\s*`)

// ParseRecommendations разбирает текстовый ответ AI в список рекомендаций.
// Каждая строка очищается от ведущей нумерации вида "1. ", пробельные и
// пустые строки отбрасываются. Количество элементов не нормализуется -
// возвращается ровно то, что дал провайдер.
func ParseRecommendations(responseText string) []string {
	lines := strings.Split(strings.ReplaceAll(responseText, "\r\n", "\n"), "\n")
	recommendations := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(enumerationPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		recommendations = append(recommendations, line)
	}
	return recommendations
}
