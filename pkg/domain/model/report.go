package model

// IssueSeverity は検証指摘の深刻度を表す。
type IssueSeverity string

const (
	// SeverityInfo は確認のみで対処不要の指摘を表す。
	SeverityInfo IssueSeverity = "info"
	// SeverityWarning は助言であり合否を左右しない指摘を表す。
	SeverityWarning IssueSeverity = "warning"
	// SeverityError は合否を不合格へ倒す指摘を表す。
	SeverityError IssueSeverity = "error"
)

// ValidationIssue は検証指摘1件を表す。
type ValidationIssue struct {
	Severity IssueSeverity
	Message  string
	Detail   any
}

// ValidationSummary は検証指摘の集約結果を表す。
// 深刻度別件数と合否は保持せず、常に指摘列から導出する。
type ValidationSummary struct {
	issues []ValidationIssue
}

// NewValidationSummary は指摘列から集約結果を構築する。
func NewValidationSummary(issues ...ValidationIssue) *ValidationSummary {
	summary := &ValidationSummary{}
	summary.issues = append(summary.issues, issues...)
	return summary
}

// Append は指摘を末尾へ追加する。
func (s *ValidationSummary) Append(issues ...ValidationIssue) {
	if s == nil {
		return
	}
	s.issues = append(s.issues, issues...)
}

// Issues は指摘列を追加順で複製して返す。
func (s *ValidationSummary) Issues() []ValidationIssue {
	if s == nil {
		return nil
	}
	issues := make([]ValidationIssue, len(s.issues))
	copy(issues, s.issues)
	return issues
}

// Len は指摘件数を返す。
func (s *ValidationSummary) Len() int {
	if s == nil {
		return 0
	}
	return len(s.issues)
}

// ErrorCount はError指摘件数を返す。
func (s *ValidationSummary) ErrorCount() int {
	return s.countBySeverity(SeverityError)
}

// WarningCount はWarning指摘件数を返す。
func (s *ValidationSummary) WarningCount() int {
	return s.countBySeverity(SeverityWarning)
}

// InfoCount はInfo指摘件数を返す。
func (s *ValidationSummary) InfoCount() int {
	return s.countBySeverity(SeverityInfo)
}

// Passed はError指摘ゼロのとき真を返す。Warningは合否に影響しない。
func (s *ValidationSummary) Passed() bool {
	return s.ErrorCount() == 0
}

// countBySeverity は指定深刻度の件数を返す。
func (s *ValidationSummary) countBySeverity(severity IssueSeverity) int {
	if s == nil {
		return 0
	}
	count := 0
	for _, issue := range s.issues {
		if issue.Severity == severity {
			count++
		}
	}
	return count
}
