package model

// AssetFormat は資産コンテナ形式を表す。
type AssetFormat string

const (
	// AssetFormatMeshInterchange は入力側メッシュ交換コンテナ形式を表す。
	AssetFormatMeshInterchange AssetFormat = "mesh_interchange"
	// AssetFormatWebDelivery は出力側Web配信コンテナ形式を表す。
	AssetFormatWebDelivery AssetFormat = "web_delivery"
)

// StructuralManifest は解析済み資産1件の内容要約を表す。
// 解析呼び出しごとに構築され、以後は読み取り専用として扱う。
type StructuralManifest struct {
	Format                   AssetFormat
	ByteSize                 int
	DeclaredTotalLength      *int
	MorphTargetCount         int
	HasSkeleton              bool
	HasMaterials             bool
	UsesCompressionExtension bool
}

// EstimatedManifest はキーワード頻度走査による近似要約を表す。
// 厳密解析由来の StructuralManifest とは型で区別し、混同を防ぐ。
type EstimatedManifest struct {
	StructuralManifest
}
