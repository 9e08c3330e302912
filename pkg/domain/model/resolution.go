package model

// ResolutionResult は1資産分の正準名解決結果を表す。
// Resolved と Unresolved は排他で、合わせてブレンド正準名52件を常に網羅する。
type ResolutionResult struct {
	// Resolved は正準名→採用元名の対応を保持する。
	Resolved map[string]string
	// Unresolved は解決不能だったブレンド正準名を台帳宣言順で保持する。
	Unresolved []string
	// CompoundChoices は正準名ごとの候補元名一覧(表順)を監査用に保持する。
	CompoundChoices map[string][]string
}

// FullyResolved は全ブレンド正準名が解決済みかを返す。
func (r ResolutionResult) FullyResolved() bool {
	return len(r.Unresolved) == 0
}

// ResolvedCount は解決済み正準名数を返す。
func (r ResolutionResult) ResolvedCount() int {
	return len(r.Resolved)
}
