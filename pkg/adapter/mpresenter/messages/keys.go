// Package messages は検証報告の表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	SeverityLabelInfo    = "情報"
	SeverityLabelWarning = "警告"
	SeverityLabelError   = "エラー"

	ReportHeaderFormat = "検証報告: stage=%s asset=%s"
	ReportCountsFormat = "集計: errors=%d warnings=%d infos=%d"
	ReportPassedLine   = "判定: 合格"
	ReportFailedLine   = "判定: 不合格"

	ResolutionHeaderFormat   = "正準名解決報告: resolved=%d unresolved=%d"
	ResolutionMappingFormat  = "%s <- %s"
	ResolutionMissingFormat  = "%s (候補なし)"
	ResolutionCompoundFormat = "複合候補: canonical=%s candidates=%s"

	MessageNamesFileRequired  = "モーフ名一覧ファイルを指定してください"
	MessageUnsupportedStage   = "未対応の段階指定です: %s"
	MessageValidationRejected = "検証に不合格でした: %s"
)
