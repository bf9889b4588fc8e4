package filesearch

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedJSONBlock = regexp.MustCompile("(?s)```json\\r?\\n(.*?)\\r?\\n```")

// ParseExampleQuestions pulls the question list out of free-form model output.
//
// Accepted shapes are [{"product": "...", "questions": ["..."]}] and the legacy
// flat ["..."]. The returned slice is never nil; the error only explains why it
// is empty and is meant for logging.
func ParseExampleQuestions(text string) ([]string, error) {
	questions := []string{}

	var items []interface{}
	if err := json.Unmarshal([]byte(extractJSONArray(text)), &items); err != nil {
		return questions, fmt.Errorf("parse example questions: %w", err)
	}
	if len(items) == 0 {
		return questions, nil
	}

	switch first := items[0].(type) {
	case map[string]interface{}:
		if _, ok := first["questions"].([]interface{}); !ok {
			return questions, ErrUnrecognizedFormat
		}
		for _, item := range items {
			group, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			list, _ := group["questions"].([]interface{})
			questions = appendStrings(questions, list)
		}
		return questions, nil
	case string:
		return appendStrings(questions, items), nil
	}

	return questions, ErrUnrecognizedFormat
}

// extractJSONArray prefers a fenced ```json block, then the widest [...] span.
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)

	if m := fencedJSONBlock.FindStringSubmatch(text); m != nil && m[1] != "" {
		return m[1]
	}

	first := strings.Index(text, "[")
	last := strings.LastIndex(text, "]")
	if first != -1 && last > first {
		return text[first : last+1]
	}
	return text
}

func appendStrings(dst []string, values []interface{}) []string {
	for _, v := range values {
		if s, ok := v.(string); ok {
			dst = append(dst, s)
		}
	}
	return dst
}
