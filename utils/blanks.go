package utils

// RemoveBlankFields returns a copy of the payload without entries whose
// value is an empty string, keeping only fields the client meaningfully
// supplied. Non-string values pass through untouched.
func RemoveBlankFields(payload map[string]interface{}) map[string]interface{} {
	cleaned := make(map[string]interface{}, len(payload))
	for key, value := range payload {
		if s, ok := value.(string); ok && s == "" {
			continue
		}
		cleaned[key] = value
	}
	return cleaned
}
