// Package glb はWeb配信コンテナ(GLB)の厳密な構造検証を提供する。
// ヘッダとJSONチャンクのみをバイト厳密に解析し、ジオメトリ本体は復号しない。
package glb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mufactory/mu_facegate/pkg/domain/model"
	"github.com/mufactory/mu_facegate/pkg/shared/base/logging"
)

const (
	glbHeaderLength     = 12
	glbChunkHeadSize    = 8
	glbMagic            = 0x46546C67
	glbJSONChunkType    = 0x4E4F534A
	glbSupportedVersion = 2
	glbMinValidLength   = glbHeaderLength + glbChunkHeadSize

	requiredAssetVersion = "2.0"
)

// compressionExtensionNames は圧縮適用とみなす拡張名を保持する。
var compressionExtensionNames = []string{
	"KHR_draco_mesh_compression",
	"EXT_meshopt_compression",
}

var (
	// ErrBadMagic はGLBマジック不一致エラーを表す。
	ErrBadMagic = errors.New("GLBマジックが不正です")
	// ErrUnsupportedVersion はGLBバージョン未対応エラーを表す。
	ErrUnsupportedVersion = errors.New("GLBバージョンが未対応です")
	// ErrMalformedChunk はGLBチャンク構造不正エラーを表す。
	ErrMalformedChunk = errors.New("GLBチャンクが不正です")
	// ErrInvalidJSON はJSONチャンク内容不正エラーを表す。
	ErrInvalidJSON = errors.New("GLB JSONチャンクの内容が不正です")
)

// Header はGLB先頭12バイトの解析結果を表す。
type Header struct {
	Magic               uint32
	Version             uint32
	DeclaredTotalLength int
}

// SceneDocument は構造検証に必要なglTFトップレベル要素を表す。
type SceneDocument struct {
	Asset          SceneAsset      `json:"asset"`
	Scenes         []SceneEntry    `json:"scenes"`
	Nodes          []SceneNode     `json:"nodes"`
	Meshes         []SceneMesh     `json:"meshes"`
	Skins          []SceneSkin     `json:"skins"`
	Materials      []SceneMaterial `json:"materials"`
	ExtensionsUsed []string        `json:"extensionsUsed"`
}

// SceneAsset はglTF asset要素を表す。
type SceneAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

// SceneEntry はglTF scene要素を表す。
type SceneEntry struct {
	Nodes []int `json:"nodes"`
}

// SceneNode はglTF node要素を表す。
type SceneNode struct {
	Name string `json:"name"`
	Mesh *int   `json:"mesh"`
	Skin *int   `json:"skin"`
}

// SceneMesh はglTF mesh要素を表す。
type SceneMesh struct {
	Name       string           `json:"name"`
	Primitives []ScenePrimitive `json:"primitives"`
}

// ScenePrimitive はglTF mesh primitive要素を表す。
type ScenePrimitive struct {
	Attributes map[string]int   `json:"attributes"`
	Material   *int             `json:"material"`
	Targets    []map[string]int `json:"targets"`
}

// SceneSkin はglTF skin要素を表す。
type SceneSkin struct {
	Joints []int `json:"joints"`
}

// SceneMaterial はglTF material要素を表す。
type SceneMaterial struct {
	Name string `json:"name"`
}

// requiredTopLevelKeys はJSONチャンクに必須のトップレベル配列キーを保持する。
var requiredTopLevelKeys = []string{"meshes", "scenes", "nodes"}

// ParseHeader はGLB先頭12バイトを解析する。
func ParseHeader(sourceBytes []byte) (Header, error) {
	if len(sourceBytes) < glbMinValidLength {
		return Header{}, fmt.Errorf("%w: ヘッダ長不足 bytes=%d", ErrMalformedChunk, len(sourceBytes))
	}
	header := Header{
		Magic:               binary.LittleEndian.Uint32(sourceBytes[0:4]),
		Version:             binary.LittleEndian.Uint32(sourceBytes[4:8]),
		DeclaredTotalLength: int(binary.LittleEndian.Uint32(sourceBytes[8:12])),
	}
	if header.Magic != glbMagic {
		return Header{}, fmt.Errorf("%w: got=0x%08X", ErrBadMagic, header.Magic)
	}
	if header.Version != glbSupportedVersion {
		return Header{}, fmt.Errorf("%w: got=%d want=%d", ErrUnsupportedVersion, header.Version, glbSupportedVersion)
	}
	if header.DeclaredTotalLength < glbMinValidLength || header.DeclaredTotalLength > len(sourceBytes) {
		return Header{}, fmt.Errorf("%w: 宣言全体長が不正です declared=%d actual=%d", ErrMalformedChunk, header.DeclaredTotalLength, len(sourceBytes))
	}
	return header, nil
}

// ParseJSONChunk は先頭チャンクをJSONチャンクとして解析しシーン記述を返す。
// 末尾のNUL/空白詰め物を除去してから復号し、必須トップレベル要素の欠落は
// 警告ではなく解析失敗として扱う。
func ParseJSONChunk(sourceBytes []byte) (*SceneDocument, error) {
	header, err := ParseHeader(sourceBytes)
	if err != nil {
		return nil, err
	}

	chunkLength := int(binary.LittleEndian.Uint32(sourceBytes[glbHeaderLength : glbHeaderLength+4]))
	chunkType := binary.LittleEndian.Uint32(sourceBytes[glbHeaderLength+4 : glbHeaderLength+glbChunkHeadSize])
	if chunkType != glbJSONChunkType {
		return nil, fmt.Errorf("%w: 先頭チャンクがJSON型ではありません type=0x%08X", ErrMalformedChunk, chunkType)
	}
	chunkStart := glbHeaderLength + glbChunkHeadSize
	chunkEnd := chunkStart + chunkLength
	if chunkLength < 0 || chunkEnd > header.DeclaredTotalLength {
		return nil, fmt.Errorf("%w: JSONチャンク長が不正です length=%d", ErrMalformedChunk, chunkLength)
	}

	payload := strings.TrimRight(string(sourceBytes[chunkStart:chunkEnd]), "\x00 ")
	doc := SceneDocument{}
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if doc.Asset.Version != requiredAssetVersion {
		return nil, fmt.Errorf("%w: asset.version got=%q want=%q", ErrInvalidJSON, doc.Asset.Version, requiredAssetVersion)
	}
	if err := verifyRequiredTopLevelKeys([]byte(payload)); err != nil {
		return nil, err
	}
	return &doc, nil
}

// verifyRequiredTopLevelKeys は必須トップレベル配列キーの存在を検査する。
func verifyRequiredTopLevelKeys(payload []byte) error {
	probe := map[string]json.RawMessage{}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	for _, key := range requiredTopLevelKeys {
		if _, exists := probe[key]; !exists {
			return fmt.Errorf("%w: 必須要素がありません: %s", ErrInvalidJSON, key)
		}
	}
	return nil
}

// Summarize はシーン記述から内容要約を構築する。
// モーフ数は全primitiveのターゲット列長の厳密な総和であり推定ではない。
func Summarize(doc *SceneDocument, byteSize int, declaredTotalLength int) model.StructuralManifest {
	morphTargetCount := 0
	for _, mesh := range doc.Meshes {
		for _, primitive := range mesh.Primitives {
			morphTargetCount += len(primitive.Targets)
		}
	}
	declared := declaredTotalLength
	return model.StructuralManifest{
		Format:                   model.AssetFormatWebDelivery,
		ByteSize:                 byteSize,
		DeclaredTotalLength:      &declared,
		MorphTargetCount:         morphTargetCount,
		HasSkeleton:              len(doc.Skins) > 0,
		HasMaterials:             len(doc.Materials) > 0,
		UsesCompressionExtension: usesCompressionExtension(doc.ExtensionsUsed),
	}
}

// usesCompressionExtension は拡張使用宣言に圧縮拡張が含まれるかを返す。
func usesCompressionExtension(extensionsUsed []string) bool {
	for _, used := range extensionsUsed {
		for _, name := range compressionExtensionNames {
			if used == name {
				return true
			}
		}
	}
	return false
}

// Repository はWeb配信コンテナの読み込み契約を表す。
type Repository struct{}

// NewRepository はRepositoryを生成する。
func NewRepository() *Repository {
	return &Repository{}
}

// CanInspect は拡張子に応じて解析可否を判定する。
func (r *Repository) CanInspect(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".glb") || strings.EqualFold(ext, ".vrm")
}

// Inspect は資産ファイル全体を読み込み、厳密解析した内容要約を返す。
// ヘッダ解釈に先頭へのランダムアクセスが必要なため、部分読みは行わない。
func (r *Repository) Inspect(path string) (model.StructuralManifest, error) {
	logGlbInfo("配信資産検証開始: file=%s", filepath.Base(path))
	sourceBytes, err := os.ReadFile(path)
	if err != nil {
		return model.StructuralManifest{}, fmt.Errorf("配信資産ファイルの読み取りに失敗しました: %w", err)
	}
	header, err := ParseHeader(sourceBytes)
	if err != nil {
		return model.StructuralManifest{}, err
	}
	doc, err := ParseJSONChunk(sourceBytes)
	if err != nil {
		return model.StructuralManifest{}, err
	}
	manifest := Summarize(doc, len(sourceBytes), header.DeclaredTotalLength)
	logGlbInfo(
		"配信資産検証完了: file=%s bytes=%d morphs=%d skeleton=%t materials=%t compressed=%t",
		filepath.Base(path),
		manifest.ByteSize,
		manifest.MorphTargetCount,
		manifest.HasSkeleton,
		manifest.HasMaterials,
		manifest.UsesCompressionExtension,
	)
	return manifest, nil
}

// logGlbInfo は配信資産検証のINFOログを出力する。
func logGlbInfo(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Info(format, params...)
}
