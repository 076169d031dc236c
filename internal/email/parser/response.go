// Package parser turns raw text-generation output into validated
// summarization results. It never fails: anything it cannot interpret
// degrades to the empty/default value for that field.
package parser

import (
	"encoding/json"
	"strings"

	emaildomain "mailtriage-backend/internal/email/domain"
)

// FirstPassResult is the sanitized output of a first summarization
type FirstPassResult struct {
	Summary  string
	Category emaildomain.Category
	Keywords emaildomain.StringArray
}

// RepeatResult is the sanitized output of a re-summarization
type RepeatResult struct {
	Summary string
}

// ParseFirstPass extracts summary, category and keywords from raw output
func ParseFirstPass(raw string) FirstPassResult {
	obj := decodeObject(raw)
	return FirstPassResult{
		Summary:  summaryField(obj),
		Category: categoryField(obj),
		Keywords: keywordsField(obj),
	}
}

// ParseRepeat extracts the summary from raw output
func ParseRepeat(raw string) RepeatResult {
	return RepeatResult{Summary: summaryField(decodeObject(raw))}
}

// decodeObject parses raw as a JSON object. Output wrapped in Markdown code
// fences or surrounded by prose is narrowed to the outermost braces first.
// Returns an empty map when nothing usable is found.
func decodeObject(raw string) map[string]interface{} {
	text := strings.TrimSpace(raw)
	if obj, ok := unmarshalObject(text); ok {
		return obj
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		if obj, ok := unmarshalObject(text[start : end+1]); ok {
			return obj
		}
	}
	return map[string]interface{}{}
}

func unmarshalObject(text string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func summaryField(obj map[string]interface{}) string {
	s, ok := obj["summary"].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func categoryField(obj map[string]interface{}) emaildomain.Category {
	s, _ := obj["category"].(string)
	return emaildomain.ParseCategory(s)
}

func keywordsField(obj map[string]interface{}) emaildomain.StringArray {
	items, ok := obj["keywords"].([]interface{})
	if !ok {
		return emaildomain.StringArray{}
	}
	keywords := make(emaildomain.StringArray, 0, emaildomain.MaxKeywords)
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		keywords = append(keywords, s)
		if len(keywords) == emaildomain.MaxKeywords {
			break
		}
	}
	return keywords
}
