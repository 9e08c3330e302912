package messages

import "testing"

func TestReportMessageKeysAreDefined(t *testing.T) {
	keys := []string{
		SeverityLabelInfo,
		SeverityLabelWarning,
		SeverityLabelError,
		ReportHeaderFormat,
		ReportCountsFormat,
		ReportPassedLine,
		ReportFailedLine,
		ResolutionHeaderFormat,
		ResolutionMappingFormat,
		ResolutionMissingFormat,
		ResolutionCompoundFormat,
		MessageNamesFileRequired,
		MessageUnsupportedStage,
		MessageValidationRejected,
	}

	seen := map[string]struct{}{}
	for _, key := range keys {
		if key == "" {
			t.Fatalf("key should not be empty")
		}
		if _, exists := seen[key]; exists {
			t.Fatalf("key should be unique: %s", key)
		}
		seen[key] = struct{}{}
	}
}
