package triage

import "strings"

// NormalizeSymptoms trims each symptom, drops empties and returns the
// cleaned list alongside the lowercase text the rule engine matches on.
func NormalizeSymptoms(symptoms []string) ([]string, string) {
	cleaned := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		symptom = strings.TrimSpace(symptom)
		if symptom == "" {
			continue
		}
		cleaned = append(cleaned, symptom)
	}
	return cleaned, strings.ToLower(strings.Join(cleaned, " "))
}

// IsUrgent reports whether the normalized symptom text matches any urgent
// condition. The fever plus rash combination is checked before the keyword
// groups, matching substrings the same way each group does.
func IsUrgent(symptomText string) bool {
	if containsAny(symptomText, feverTerms) && containsAny(symptomText, rashTerms) {
		return true
	}
	for _, group := range urgentPatterns {
		if containsAny(symptomText, group) {
			return true
		}
	}
	return false
}

// RecommendKeys returns catalog medicine keys for the symptom text, in rule
// order with duplicates removed. When nothing matches it falls back to a
// single safe default.
func RecommendKeys(symptomText string) []string {
	var keys []string
	seen := map[string]bool{}
	for _, rule := range recommendationRules {
		if !containsAny(symptomText, rule.keywords) {
			continue
		}
		for _, key := range rule.medicines {
			if seen[key] {
				continue
			}
			seen[key] = true
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		keys = append(keys, fallbackMedicine)
	}
	return keys
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
