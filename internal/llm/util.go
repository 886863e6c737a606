package llm

import (
	"encoding/json"
	"fmt"
)

// DecodeJSON unmarshals a gateway reply into target. Callers are expected to
// treat a returned error as a recoverable gateway failure and substitute
// their documented default.
func DecodeJSON(reply string, target any) error {
	if reply == "" {
		return fmt.Errorf("empty gateway response")
	}
	if err := json.Unmarshal([]byte(cleanJSONBlock(reply)), target); err != nil {
		return fmt.Errorf("gateway response is not valid JSON: %w", err)
	}
	return nil
}

// Preview returns at most n leading bytes of s, for log messages.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
