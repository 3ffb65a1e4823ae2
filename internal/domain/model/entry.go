// package model はドメインモデルを定義します
package model

import "sort"

// CollectedFile は拡張子フィルタに一致し、読み込みに成功したファイルを表します
type CollectedFile struct {
	// Path は走査で得られたファイルのパスを表します（ルートパスを含む）
	Path string
	// RelPath はルートディレクトリからの相対パスを "/" 区切りで表します
	RelPath string
	// Content は読み込み時点のファイル内容をそのまま保持します
	Content string
}

// Report は出力順に並んだ CollectedFile の列です
type Report []CollectedFile

// Sort は相対パスの辞書順にエントリを並べ替えます
func (r Report) Sort() {
	sort.Slice(r, func(i, j int) bool {
		return r[i].RelPath < r[j].RelPath
	})
}

// Paths は各エントリのパスを出力順に返します
func (r Report) Paths() []string {
	paths := make([]string, 0, len(r))
	for _, f := range r {
		paths = append(paths, f.Path)
	}
	return paths
}
