// Package fbx はメッシュ交換コンテナ(FBX)の近似的な構造検証を提供する。
// シーングラフの完全な復号は行わず、キーワード出現の有無と頻度から
// go/no-go判定に足る近似要約のみを作る。
package fbx

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
)

const (
	// binarySignature はバイナリ変種の先頭シグネチャを表す。
	binarySignature = "Kaydara FBX Binary  "
	// textMarker はテキスト変種の識別マーカを表す。
	textMarker = "FBX"
	// sniffWindowSize はテキストマーカを探す先頭バイト数を表す。
	sniffWindowSize = 50
)

// ErrNotMeshInterchange はメッシュ交換形式不一致エラーを表す。
// 形式不一致はゼロ内容の要約と混同してはならないため、要約を返さず失敗させる。
var ErrNotMeshInterchange = errors.New("メッシュ交換形式ではありません")

// materialKeywords は材質/テクスチャ系の指標キーワードを保持する。
var materialKeywords = []string{"Material", "Texture", "Phong", "Lambert"}

// morphChannelKeyword はモーフチャネル数の推定に使う第一キーワードを表す。
const morphChannelKeyword = "BlendShapeChannel"

// morphFallbackKeyword はチャネル表記がない旧出力向けの代替キーワードを表す。
const morphFallbackKeyword = "Shape::"

// skeletonKeywords はスケルトン系の指標キーワードを保持する。
var skeletonKeywords = []string{"Skeleton", "LimbNode", "Bone", "Joint", "Cluster"}

// SniffFormat は先頭バイト列がメッシュ交換形式らしいかを判定する。
// バイナリ変種は先頭シグネチャ、テキスト変種は先頭約50バイト内のマーカで識別する。
func SniffFormat(sourceBytes []byte) bool {
	if len(sourceBytes) == 0 {
		return false
	}
	if bytes.HasPrefix(sourceBytes, []byte(binarySignature)) {
		return true
	}
	window := sourceBytes
	if len(window) > sniffWindowSize {
		window = window[:sniffWindowSize]
	}
	return bytes.Contains(window, []byte(textMarker))
}

// EstimateManifest はキーワード走査による近似要約を構築する。
// 意図的な近似であり、厳密解析由来の要約とは型で区別される。
func EstimateManifest(sourceBytes []byte, expectedMorphCount int) (model.EstimatedManifest, error) {
	if !SniffFormat(sourceBytes) {
		return model.EstimatedManifest{}, fmt.Errorf("%w: bytes=%d", ErrNotMeshInterchange, len(sourceBytes))
	}

	morphTargetCount := bytes.Count(sourceBytes, []byte(morphChannelKeyword))
	if morphTargetCount == 0 {
		morphTargetCount = bytes.Count(sourceBytes, []byte(morphFallbackKeyword))
	}
	hasMaterials := containsAnyKeyword(sourceBytes, materialKeywords)
	hasSkeleton := containsAnyKeyword(sourceBytes, skeletonKeywords)

	logFbxDebug(
		"交換資産走査詳細: bytes=%d morphKeywordHits=%d expected=%d materials=%t skeleton=%t",
		len(sourceBytes),
		morphTargetCount,
		expectedMorphCount,
		hasMaterials,
		hasSkeleton,
	)

	return model.EstimatedManifest{
		StructuralManifest: model.StructuralManifest{
			Format:           model.AssetFormatMeshInterchange,
			ByteSize:         len(sourceBytes),
			MorphTargetCount: morphTargetCount,
			HasSkeleton:      hasSkeleton,
			HasMaterials:     hasMaterials,
		},
	}, nil
}

// containsAnyKeyword はいずれかのキーワードが出現するかを返す。
func containsAnyKeyword(sourceBytes []byte, keywords []string) bool {
	for _, keyword := range keywords {
		if bytes.Contains(sourceBytes, []byte(keyword)) {
			return true
		}
	}
	return false
}

// Repository はメッシュ交換コンテナの読み込み契約を表す。
type Repository struct{}

// NewRepository はRepositoryを生成する。
func NewRepository() *Repository {
	return &Repository{}
}

// CanInspect は拡張子に応じて解析可否を判定する。
func (r *Repository) CanInspect(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".fbx")
}

// Estimate は資産ファイル全体を読み込み、近似要約を返す。
func (r *Repository) Estimate(path string, expectedMorphCount int) (model.EstimatedManifest, error) {
	logFbxInfo("交換資産走査開始: file=%s", filepath.Base(path))
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return model.EstimatedManifest{}, fmt.Errorf("交換資産ファイルの読み取りに失敗しました: %w", err)
	}
	estimated, err := EstimateManifest(sourceBytes, expectedMorphCount)
	if err != nil {
		return model.EstimatedManifest{}, err
	}
	logFbxInfo(
		"交換資産走査完了: file=%s bytes=%d morphsEstimated=%d skeleton=%t materials=%t",
		filepath.Base(path),
		estimated.ByteSize,
		estimated.MorphTargetCount,
		estimated.HasSkeleton,
		estimated.HasMaterials,
	)
	return estimated, nil
}

// logFbxInfo は交換資産走査のINFOログを出力する。
func logFbxInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}

// logFbxDebug は交換資産走査のDEBUGログを出力する。
func logFbxDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}
