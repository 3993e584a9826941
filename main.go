package main

import (
	"embed"
	"fmt"
	"runtime"

	"birthdayppt/config"
	"birthdayppt/i18n"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/menu/keys"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed all:frontend/dist
var assets embed.FS

// 창 크기 (고정)
const (
	windowWidth  = 500
	windowHeight = 420
)

// startupLanguage 메뉴와 창 제목을 만들기 전에 저장된 언어를 적용한다.
// 서비스가 시작되면 LogService 가 다시 맞춘다.
func startupLanguage() {
	dir, err := config.DefaultStorageDir()
	if err != nil {
		return
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return
	}
	i18n.SyncLanguage(config.ApplyEnv(cfg, nil).Language)
}

func buildMenu(app *App) *menu.Menu {
	appMenu := menu.NewMenu()
	if runtime.GOOS == "darwin" {
		appMenu.Append(menu.AppMenu())
	}
	fileMenu := appMenu.AddSubmenu(i18n.T("menu.file"))
	fileMenu.AddText(i18n.T("menu.save_template"), keys.CmdOrCtrl("t"), func(_ *menu.CallbackData) {
		if status := app.SaveDefaultTemplate(); status != "" {
			app.Log(status)
		}
	})
	fileMenu.AddSeparator()
	fileMenu.AddText(i18n.T("menu.exit"), keys.CmdOrCtrl("q"), func(_ *menu.CallbackData) {
		wailsRuntime.Quit(app.ctx)
	})
	return appMenu
}

func main() {
	startupLanguage()
	app := NewApp()

	err := wails.Run(&options.App{
		Title:         i18n.T("app.title"),
		Width:         windowWidth,
		Height:        windowHeight,
		DisableResize: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 240, G: 240, B: 240, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Menu:             buildMenu(app),
		Bind: []interface{}{
			app,
		},
		Mac: &mac.Options{
			About: &mac.AboutInfo{
				Title:   i18n.T("app.title"),
				Message: i18n.T("menu.about"),
			},
		},
	})

	if err != nil {
		fmt.Println("Error:", err.Error())
	}
}
