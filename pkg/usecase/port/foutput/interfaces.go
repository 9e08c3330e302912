package foutput

import "github.com/mufactory/mu_facegate/pkg/domain/model"

// IExactInspector はWeb配信コンテナの厳密解析契約を表す。
type IExactInspector interface {
	// CanInspect は拡張子に応じて解析可否を判定する。
	CanInspect(path string) bool
	// Inspect は資産ファイルを厳密解析して内容要約を返す。
	Inspect(path string) (model.StructuralManifest, error)
}

// IEstimateInspector はメッシュ交換コンテナの近似解析契約を表す。
type IEstimateInspector interface {
	// CanInspect は拡張子に応じて解析可否を判定する。
	CanInspect(path string) bool
	// Estimate は資産ファイルをキーワード走査して近似要約を返す。
	Estimate(path string, expectedMorphCount int) (model.EstimatedManifest, error)
}
