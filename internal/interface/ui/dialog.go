// Package ui はネイティブダイアログによるディレクトリ選択を提供します
package ui

import (
	"fmt"

	"github.com/sqweek/dialog"

	"FileCollector/internal/infrastructure/filesystem"
)

// BrowseFunc はディレクトリ選択ダイアログを表示し、選択されたパスを返します
type BrowseFunc func(title string) (string, error)

// nativeBrowse は sqweek/dialog のフォルダ選択ダイアログを表示します
func nativeBrowse(title string) (string, error) {
	return dialog.Directory().Title(title).Browse()
}

// DirectorySelector はディレクトリ選択機能を提供します
type DirectorySelector struct {
	// validator はディレクトリパスの検証を行うインターフェースです
	validator filesystem.DirectoryValidator
	browse    BrowseFunc
}

// NewDirectorySelector は新しい DirectorySelector インスタンスを作成します
func NewDirectorySelector(validator filesystem.DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{validator: validator, browse: nativeBrowse}
}

// SelectDirectory はダイアログを表示してディレクトリを選択します
func (d *DirectorySelector) SelectDirectory(title string) (string, error) {
	selectedDir, err := d.browse(title)
	if err != nil {
		if err == dialog.ErrCancelled {
			return "", fmt.Errorf("directory selection cancelled")
		}
		return "", fmt.Errorf("directory selection failed: %w", err)
	}

	if err := d.validator.ValidateDirectoryPath(selectedDir); err != nil {
		return "", fmt.Errorf("invalid directory selected: %w", err)
	}

	return selectedDir, nil
}
