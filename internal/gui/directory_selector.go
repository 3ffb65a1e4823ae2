// Package gui はFyneによるディレクトリ選択ウィンドウを提供します
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

// Default window size constants
const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
)

// DirectoryValidator は、ディレクトリパスの検証を行うインターフェース
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// DirectorySelector は、Fyneを使用してディレクトリ選択を行う構造体
type DirectorySelector struct {
	validator DirectoryValidator
}

// NewDirectorySelector は、DirectorySelectorの新しいインスタンスを作成します
func NewDirectorySelector(validator DirectoryValidator) *DirectorySelector {
	return &DirectorySelector{
		validator: validator,
	}
}

// DirectoryPaths は、選択されたディレクトリパスを保持する構造体です
type DirectoryPaths struct {
	Root   string // 走査対象フォルダ
	Output string // レポート出力先フォルダ
}

// checkSelection はダイアログの結果を検証し、パスを返します
func (s *DirectorySelector) checkSelection(label string, uri fyne.ListableURI, err error) (string, error) {
	if err != nil {
		return "", fmt.Errorf("%s selection failed: %w", label, err)
	}
	if uri == nil {
		return "", fmt.Errorf("%s selection cancelled", label)
	}
	path := uri.Path()
	if err := s.validator.ValidateDirectoryPath(path); err != nil {
		return "", fmt.Errorf("invalid %s: %w", label, err)
	}
	return path, nil
}

// SelectDirectories は、走査対象フォルダとレポート出力先フォルダの選択を一括で行います。
// UI 操作はメインスレッド上で、コールバックを連鎖させる形で実現します。
func (s *DirectorySelector) SelectDirectories() (*DirectoryPaths, error) {
	a := app.New()
	w := a.NewWindow("FileCollector")
	w.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))

	paths := &DirectoryPaths{}
	var currentError error

	finish := func(err error) {
		currentError = err
		w.Close()
		a.Quit()
	}

	// まず走査対象フォルダ、続いて出力先フォルダを選択する
	dialog.NewFolderOpen(func(rootURI fyne.ListableURI, err error) {
		rootPath, err := s.checkSelection("root directory", rootURI, err)
		if err != nil {
			finish(err)
			return
		}
		paths.Root = rootPath

		dialog.NewFolderOpen(func(outputURI fyne.ListableURI, err error) {
			outputPath, err := s.checkSelection("output directory", outputURI, err)
			if err != nil {
				finish(err)
				return
			}
			paths.Output = outputPath
			finish(nil)
		}, w).Show()
	}, w).Show()

	w.Show()
	a.Run()

	if currentError != nil {
		return nil, currentError
	}
	return paths, nil
}
