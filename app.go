package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"birthdayppt/birthday"
	"birthdayppt/export"
	"birthdayppt/i18n"
	"birthdayppt/logger"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// 진행률 이벤트 이름
const progressEvent = "generate-progress"

// 파일 선택 창의 확장자 필터
const (
	excelPattern    = "*.xlsx;*.xls;*.xlsm"
	templatePattern = "*.pptx"
)

// defaultTemplateName 기본 템플릿 저장 시 제안하는 파일 이름
const defaultTemplateName = "생일자_템플릿.pptx"

// ExcelSelection 엑셀 파일 검증 결과 (프론트엔드용)
type ExcelSelection struct {
	Path       string `json:"path"`
	Month      int    `json:"month"`
	MonthLabel string `json:"monthLabel"`
	Count      int    `json:"count"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// GenerateResult PPT 생성 결과
type GenerateResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// ProgressEvent generate-progress 이벤트 데이터
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Status  string `json:"status"`
}

// AppState 화면 복원용 현재 선택 상태
type AppState struct {
	ExcelPath string `json:"excelPath"`
	SaveDir   string `json:"saveDir"`
	Month     int    `json:"month"`
	Language  string `json:"language"`
}

// App struct
type App struct {
	ctx           context.Context
	registry      *ServiceRegistry
	configService *ConfigService
	logService    *LogService
	pptService    *PPTService
	logger        *logger.Logger
	dialogs       Dialogs
	emit          func(ctx context.Context, event string, data ...interface{})
	now           func() time.Time

	mu        sync.Mutex
	excelPath string
	saveDir   string
	month     int
}

// NewApp creates a new App application struct
func NewApp() *App {
	l := logger.NewLogger()
	cs := NewConfigService(l.Log)
	return &App{
		configService: cs,
		logService:    NewLogService(cs, l),
		pptService:    NewPPTService(cs, l, l.Log),
		logger:        l,
		emit:          runtime.EventsEmit,
		now:           time.Now,
	}
}

// startup is called when the app starts.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	if a.dialogs == nil {
		a.dialogs = wailsDialogs{ctx: ctx}
	}

	a.registry = NewServiceRegistry(ctx, a.Log)
	for _, reg := range []struct {
		svc      Service
		critical bool
	}{
		{a.configService, true},
		{a.logService, false},
		{a.pptService, true},
	} {
		register := a.registry.Register
		if reg.critical {
			register = a.registry.RegisterCritical
		}
		if err := register(reg.svc); err != nil {
			a.Log(fmt.Sprintf("[STARTUP] %v", err))
		}
	}
	if err := a.registry.InitializeAll(); err != nil {
		a.Log(fmt.Sprintf("[STARTUP] %v", err))
		a.dialogs.Message(DialogError, i18n.T("app.dialog_error"), userMessage(err))
		return
	}
	a.Log(fmt.Sprintf("[STARTUP] services ready: %v, language: %s", a.registry.Names(), i18n.GetLanguageString()))
}

// shutdown is called when the application is closing to clean up resources
func (a *App) shutdown(ctx context.Context) {
	if a.registry != nil {
		a.registry.ShutdownAll()
	}
	// LogService 가 없을 때도 파일을 닫는다
	a.logger.Close()
}

// Log writes a log entry
func (a *App) Log(message string) {
	a.logger.Log(message)
}

// GetState returns the current selections
func (a *App) GetState() AppState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AppState{
		ExcelPath: a.excelPath,
		SaveDir:   a.saveDir,
		Month:     a.month,
		Language:  i18n.GetLanguageString(),
	}
}

// SelectExcelFile opens a file dialog for the birthday sheet and validates it
func (a *App) SelectExcelFile() ExcelSelection {
	cfg, _ := a.configService.GetConfig()
	path, err := a.dialogs.ChooseFile(i18n.T("app.select_excel_title"), i18n.T("app.excel_filter"), excelPattern, cfg.LastExcelDir)
	if err != nil {
		msg := userMessage(err)
		a.dialogs.Message(DialogError, i18n.T("app.dialog_error"), msg)
		return ExcelSelection{Error: msg}
	}
	if path == "" {
		return a.currentSelection()
	}
	return a.LoadExcelFile(path)
}

// LoadExcelFile validates the sheet at path and remembers it for GeneratePPT
func (a *App) LoadExcelFile(path string) ExcelSelection {
	vt, err := birthday.ValidateFile(path)
	if err != nil {
		msg := userMessage(err)
		a.Log(fmt.Sprintf("[EXCEL] %s: %v", path, err))
		a.dialogs.Message(DialogWarning, i18n.T("app.dialog_error"), msg)
		return ExcelSelection{Error: msg}
	}

	a.mu.Lock()
	a.excelPath = path
	a.month = int(vt.Month)
	a.mu.Unlock()
	if err := a.configService.RememberDirs(filepath.Dir(path), ""); err != nil {
		a.Log(fmt.Sprintf("[EXCEL] %v", err))
	}

	sel := a.currentSelection()
	sel.Count = len(vt.Rows)
	sel.Status = i18n.T("validate.success")
	return sel
}

func (a *App) currentSelection() ExcelSelection {
	a.mu.Lock()
	defer a.mu.Unlock()
	sel := ExcelSelection{Path: a.excelPath, Month: a.month}
	if a.month != 0 {
		sel.MonthLabel = i18n.T("app.month_detected", a.month)
	}
	return sel
}

// SelectSaveDirectory opens a directory dialog for the output folder
func (a *App) SelectSaveDirectory() string {
	cfg, _ := a.configService.GetConfig()
	dir, err := a.dialogs.ChooseDirectory(i18n.T("app.select_save_title"), cfg.LastSaveDir)
	if err != nil {
		a.dialogs.Message(DialogError, i18n.T("app.dialog_error"), userMessage(err))
		return ""
	}
	if dir == "" {
		return ""
	}
	return a.SetSaveDirectory(dir)
}

// SetSaveDirectory sets the output folder and returns the status line
func (a *App) SetSaveDirectory(dir string) string {
	a.mu.Lock()
	a.saveDir = dir
	a.mu.Unlock()
	if err := a.configService.RememberDirs("", dir); err != nil {
		a.Log(fmt.Sprintf("[SAVE] %v", err))
	}
	return i18n.T("app.save_selected", dir)
}

// GeneratePPT reads the selected sheet again and writes the month's deck,
// reporting progress at 10, 50 and 100 percent
func (a *App) GeneratePPT() GenerateResult {
	a.mu.Lock()
	path, dir := a.excelPath, a.saveDir
	a.mu.Unlock()

	if path == "" {
		return a.warn(i18n.T("app.no_excel"))
	}
	if dir == "" {
		return a.warn(i18n.T("app.no_save_dir"))
	}

	a.progress(10, i18n.T("app.reading_excel"))
	vt, err := birthday.ValidateFile(path)
	if err != nil {
		msg := userMessage(err)
		a.progress(0, i18n.T("app.excel_failed"))
		a.dialogs.Message(DialogWarning, i18n.T("app.dialog_error"), msg)
		return GenerateResult{Message: msg}
	}

	people := birthday.Extract(vt, a.now())
	if len(people) == 0 {
		msg := i18n.T("app.no_birthdays")
		a.progress(0, i18n.T("app.no_data"))
		a.dialogs.Message(DialogInfo, i18n.T("app.dialog_info"), msg)
		return GenerateResult{Message: msg}
	}

	a.progress(50, i18n.T("app.generating"))
	out, err := a.pptService.Generate(int(vt.Month), people, dir)
	if err != nil {
		msg := i18n.T("generate.failed", userMessage(err))
		a.Log(fmt.Sprintf("[GENERATE] %v", err))
		a.progress(0, i18n.T("app.failed"))
		a.dialogs.Message(DialogError, i18n.T("app.dialog_error"), msg)
		return GenerateResult{Message: msg}
	}

	a.progress(100, i18n.T("app.done"))
	a.dialogs.Message(DialogInfo, i18n.T("app.dialog_done"), i18n.T("app.file_created"))
	return GenerateResult{Success: true, Message: i18n.T("generate.success", out), Path: out}
}

// SaveDefaultTemplate writes the bundled template to a file the user picks,
// as a starting point for a custom template. It returns the status line, or
// "" when the dialog was cancelled.
func (a *App) SaveDefaultTemplate() string {
	cfg, _ := a.configService.GetConfig()
	path, err := a.dialogs.ChooseSaveFile(i18n.T("app.template_title"), i18n.T("app.template_filter"),
		templatePattern, cfg.LastSaveDir, defaultTemplateName)
	if err != nil {
		a.dialogs.Message(DialogError, i18n.T("app.dialog_error"), userMessage(err))
		return ""
	}
	if path == "" {
		return ""
	}

	data, err := export.BuildDefaultTemplate()
	if err == nil {
		err = os.WriteFile(path, data, 0644)
	}
	if err != nil {
		msg := i18n.T("app.template_failed", err.Error())
		a.Log(fmt.Sprintf("[TEMPLATE] %v", err))
		a.dialogs.Message(DialogError, i18n.T("app.dialog_error"), msg)
		return msg
	}
	a.Log(fmt.Sprintf("[TEMPLATE] bundled template saved to %s", path))
	return i18n.T("app.template_saved", path)
}

func (a *App) warn(msg string) GenerateResult {
	a.dialogs.Message(DialogWarning, i18n.T("app.dialog_warning"), msg)
	return GenerateResult{Message: msg}
}

func (a *App) progress(percent int, status string) {
	if a.emit == nil || a.ctx == nil {
		return
	}
	a.emit(a.ctx, progressEvent, ProgressEvent{Percent: percent, Status: status})
}
