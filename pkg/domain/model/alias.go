package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAliasCanonicalUnknown は別名表の参照先未登録エラーを表す。
	ErrAliasCanonicalUnknown = errors.New("別名表の正準パラメータ名が未登録です")
	// ErrAliasEntryInvalid は別名表エントリ不正エラーを表す。
	ErrAliasEntryInvalid = errors.New("別名表エントリが不正です")
)

// AliasEntry は入力資産名と正準パラメータの既知対応1件を表す。
type AliasEntry struct {
	SourceName    string
	CanonicalName string
	HasMeshPrefix bool
}

// AliasTable は人手管理の別名対応表を表す。表順は採用優先度を符号化する。
type AliasTable struct {
	entries []AliasEntry
}

// NewAliasTable はエントリ列を検証して別名表を構築する。
// 未登録の正準名を参照するエントリは構成不正としてここで拒否する
// (解決時に黙って無視しない)。同一の source→canonical 重複行は冗長として許容する。
func NewAliasTable(entries []AliasEntry, catalog *ParameterCatalog) (*AliasTable, error) {
	table := &AliasTable{entries: make([]AliasEntry, 0, len(entries))}
	for entryIndex, entry := range entries {
		sourceName := strings.TrimSpace(entry.SourceName)
		canonicalName := strings.TrimSpace(entry.CanonicalName)
		if sourceName == "" || canonicalName == "" {
			return nil, fmt.Errorf("%w: index=%d source=%q canonical=%q", ErrAliasEntryInvalid, entryIndex, entry.SourceName, entry.CanonicalName)
		}
		if !catalog.IsBlendTarget(canonicalName) {
			return nil, fmt.Errorf("%w: index=%d canonical=%s", ErrAliasCanonicalUnknown, entryIndex, canonicalName)
		}
		table.entries = append(table.entries, AliasEntry{
			SourceName:    sourceName,
			CanonicalName: canonicalName,
			HasMeshPrefix: entry.HasMeshPrefix,
		})
	}
	return table, nil
}

// Len は別名エントリ数を返す。
func (t *AliasTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Entries は別名エントリを表順で複製して返す。
func (t *AliasTable) Entries() []AliasEntry {
	if t == nil {
		return nil
	}
	entries := make([]AliasEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}
