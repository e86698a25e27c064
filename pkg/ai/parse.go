package ai

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// parseDetection decodes a provider answer that may be wrapped in prose
// or code fences. Strict decode first; then the first balanced JSON
// block; then field-by-field extraction with gjson. A nil result means
// the answer carried no well-formed verdict.
func parseDetection(raw string) *Detection {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	candidate := extractJSONBlock(raw)

	var det Detection
	if err := json.Unmarshal([]byte(candidate), &det); err == nil {
		if validDetection(candidate) {
			return &det
		}
		return nil
	}

	// Lenient pass: the provider sometimes interleaves prose inside the
	// object or emits trailing junk. Pull fields individually.
	parsed := gjson.Parse(candidate)
	isTask := parsed.Get("is_task")
	if !isTask.Exists() || !isTask.IsBool() {
		return nil
	}

	return &Detection{
		IsTask:      isTask.Bool(),
		Confidence:  parsed.Get("confidence").Float(),
		Title:       parsed.Get("title").String(),
		Description: parsed.Get("description").String(),
		TaskType:    parsed.Get("task_type").String(),
		Priority:    parsed.Get("priority").String(),
		Reasoning:   parsed.Get("reasoning").String(),
	}
}

// extractJSONBlock strips code fences and surrounding prose, keeping
// the first balanced object.
func extractJSONBlock(raw string) string {
	if idx := strings.Index(raw, "```json"); idx != -1 {
		rest := raw[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end != -1 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		return raw[start : end+1]
	}
	return raw
}

func validDetection(candidate string) bool {
	isTask := gjson.Get(candidate, "is_task")
	return isTask.Exists() && isTask.IsBool()
}
