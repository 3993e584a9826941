package main

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// DialogKind 알림 창 종류
type DialogKind string

const (
	DialogInfo    DialogKind = "info"
	DialogWarning DialogKind = "warning"
	DialogError   DialogKind = "error"
)

// Dialogs 앱이 쓰는 네이티브 대화 상자. 취소하면 빈 경로를 돌려준다.
type Dialogs interface {
	ChooseFile(title, filterName, pattern, defaultDir string) (string, error)
	ChooseDirectory(title, defaultDir string) (string, error)
	ChooseSaveFile(title, filterName, pattern, defaultDir, defaultName string) (string, error)
	Message(kind DialogKind, title, message string)
}

// wailsDialogs Wails 런타임으로 대화 상자를 띄운다.
type wailsDialogs struct {
	ctx context.Context
}

func (d wailsDialogs) ChooseFile(title, filterName, pattern, defaultDir string) (string, error) {
	return runtime.OpenFileDialog(d.ctx, runtime.OpenDialogOptions{
		Title:            title,
		DefaultDirectory: defaultDir,
		Filters: []runtime.FileFilter{
			{DisplayName: filterName, Pattern: pattern},
		},
	})
}

func (d wailsDialogs) ChooseDirectory(title, defaultDir string) (string, error) {
	return runtime.OpenDirectoryDialog(d.ctx, runtime.OpenDialogOptions{
		Title:            title,
		DefaultDirectory: defaultDir,
	})
}

func (d wailsDialogs) ChooseSaveFile(title, filterName, pattern, defaultDir, defaultName string) (string, error) {
	return runtime.SaveFileDialog(d.ctx, runtime.SaveDialogOptions{
		Title:            title,
		DefaultDirectory: defaultDir,
		DefaultFilename:  defaultName,
		Filters: []runtime.FileFilter{
			{DisplayName: filterName, Pattern: pattern},
		},
	})
}

func (d wailsDialogs) Message(kind DialogKind, title, message string) {
	typ := runtime.InfoDialog
	switch kind {
	case DialogWarning:
		typ = runtime.WarningDialog
	case DialogError:
		typ = runtime.ErrorDialog
	}
	_, _ = runtime.MessageDialog(d.ctx, runtime.MessageDialogOptions{
		Type:    typ,
		Title:   title,
		Message: message,
	})
}
