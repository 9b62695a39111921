package scanner

import (
	"fmt"
	"strings"
)

// cleanJSONResponse очищает ответ модели от markdown и лишних символов
func cleanJSONResponse(content string) string {
	content = strings.TrimPrefix(content, "```json\n")
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```\n")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "\n```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Ищем первый { и последний }
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")

	if start >= 0 && end > start {
		return content[start : end+1]
	}

	return content
}

// normalizeJSONString экранирует неэкранированные спецсимволы внутри
// строковых значений JSON (модели иногда вставляют сырые переводы строк)
func normalizeJSONString(content string) string {
	var result strings.Builder
	result.Grow(len(content) + len(content)/10)

	inString := false
	escaped := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if escaped {
			result.WriteByte(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			result.WriteByte(ch)
			escaped = true
			continue
		}

		if ch == '"' {
			inString = !inString
			result.WriteByte(ch)
			continue
		}

		if inString {
			switch ch {
			case '\n':
				result.WriteString("\\n")
			case '\r':
				result.WriteString("\\r")
			case '\t':
				result.WriteString("\\t")
			case '\b':
				result.WriteString("\\b")
			case '\f':
				result.WriteString("\\f")
			default:
				if ch < 0x20 {
					result.WriteString(fmt.Sprintf("\\u%04x", ch))
				} else {
					result.WriteByte(ch)
				}
			}
		} else {
			result.WriteByte(ch)
		}
	}

	return result.String()
}
