package tui

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"doctools/internal/domain/entities"
	"doctools/internal/domain/repositories"
)

// UI Configuration constants
const (
	MaxLogBufferSize   = 1000
	LogFlushInterval   = 50 * time.Millisecond
	ProgressBarWidth   = 40
	MaxFileNameLength  = 60
	ProgressViewHeight = 12
	StatusBarHeight    = 1
)

// HistoryProvider источник журнала операций для экрана истории
type HistoryProvider interface {
	Enabled() bool
	Recent(ctx context.Context) ([]entities.HistoryEntry, error)
	Clear(ctx context.Context) error
	Export(ctx context.Context, path string) error
}

// Manager управляет TUI интерфейсом
type Manager struct {
	app           *tview.Application
	pages         *tview.Pages
	currentScreen entities.UIScreen

	// UI компоненты
	mainMenu      *tview.List
	configForm    *tview.Form
	operationForm *tview.Form
	historyTable  *tview.Table
	progressView  *tview.TextView
	logView       *tview.TextView
	statusBar     *tview.TextView

	// Callbacks
	onStartProcessing func()
	onRequest         func(Request)
	history           HistoryProvider

	// Состояние
	configRepo  repositories.AppConfigRepository
	configPath  string
	config      *entities.Config
	statusMutex sync.RWMutex
	busy        atomic.Bool

	logs *logBatcher
}

// NewManager создает новый менеджер TUI
func NewManager(configRepo repositories.AppConfigRepository, configPath string, config *entities.Config) *Manager {
	m := &Manager{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		configRepo: configRepo,
		configPath: configPath,
		config:     config,
	}
	m.logs = newLogBatcher(m.showLogs)
	return m
}

// Initialize инициализирует TUI
func (m *Manager) Initialize() {
	m.createUI()
	m.setupKeyBindings()
}

// Run запускает TUI
func (m *Manager) Run() error {
	return m.app.SetRoot(m.layout(), true).EnableMouse(true).Run()
}

// SetOnStartProcessing устанавливает callback для пакетной обработки
func (m *Manager) SetOnStartProcessing(callback func()) {
	m.onStartProcessing = callback
}

// SetOnRequest устанавливает callback для выполнения запроса пользователя
func (m *Manager) SetOnRequest(callback func(Request)) {
	m.onRequest = callback
}

// SetHistoryProvider подключает журнал операций
func (m *Manager) SetHistoryProvider(provider HistoryProvider) {
	m.history = provider
}

// SendStatusUpdate отправляет обновление статуса
func (m *Manager) SendStatusUpdate(status entities.ProcessingStatus) {
	m.updateProgress(status)
}

// GetConfig возвращает копию текущей конфигурации
func (m *Manager) GetConfig() *entities.Config {
	m.statusMutex.RLock()
	defer m.statusMutex.RUnlock()

	cfg := *m.config
	return &cfg
}

// Notify показывает итог операции в строке состояния и снимает признак занятости.
// Вызывается из горутины обработки.
func (m *Manager) Notify(message string, err error) {
	text := fmt.Sprintf("[green]✓ %s[white]", tview.Escape(message))
	if err != nil {
		text = fmt.Sprintf("[red]✗ %s: %s[white]", tview.Escape(message), escapeError(err))
	}
	m.busy.Store(false)
	m.app.QueueUpdateDraw(func() {
		m.statusBar.SetText(text)
	})
}

// setStatus меняет строку состояния из обработчика событий UI
func (m *Manager) setStatus(text string) {
	if m.statusBar != nil {
		m.statusBar.SetText(text)
	}
}

// createUI создает пользовательский интерфейс
func (m *Manager) createUI() {
	m.createMainMenu()
	m.createConfigScreen()
	m.createOperationScreen()
	m.createHistoryScreen()
	m.createProcessingScreen()

	m.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetText("[yellow]F1[white] меню  [yellow]F2[white] конфигурация  [yellow]F3[white] журнал событий  [yellow]F4[white] история")

	m.pages.AddPage("menu", m.mainMenu, true, true)
	m.pages.AddPage("config", m.configForm, true, false)
	m.pages.AddPage("operation", m.operationForm, true, false)
	m.pages.AddPage("history", m.historyTable, true, false)
	m.pages.AddPage("processing", m.createProcessingLayout(), true, false)

	m.currentScreen = entities.UIScreenMenu
}

func (m *Manager) layout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.pages, 0, 1, true).
		AddItem(m.statusBar, StatusBarHeight, 0, false)
}

// createMainMenu создает главное меню
func (m *Manager) createMainMenu() {
	m.mainMenu = tview.NewList().
		AddItem("📎 Объединить PDF", "Склеить несколько PDF в один документ", '1', func() {
			m.openOperation(entities.OpPDFMerge)
		}).
		AddItem("✂️ Разделить PDF", "Извлечь выбранные страницы в отдельные файлы", '2', func() {
			m.openOperation(entities.OpPDFSplit)
		}).
		AddItem("📄 Страницы PDF", "Повернуть, удалить, извлечь или пронумеровать страницы", '3', func() {
			m.openOperation(entities.OpPDFPages)
		}).
		AddItem("🗜 Сжать PDF", "Уменьшить размер PDF документа", '4', func() {
			m.openOperation(entities.OpPDFCompress)
		}).
		AddItem("🖼 Сжать изображение", "Перекодировать JPEG, PNG или WebP", '5', func() {
			m.openOperation(entities.OpImageCompress)
		}).
		AddItem("📐 Изменить размер изображения", "Масштабировать и сменить формат", '6', func() {
			m.openOperation(entities.OpImageResize)
		}).
		AddItem("🚀 Пакетное сжатие", "Сжать все файлы входной директории", '7', func() {
			m.startProcessing()
		}).
		AddItem("🕘 История операций", "Последние выполненные операции", '8', func() {
			m.switchToScreen(entities.UIScreenHistory)
		}).
		AddItem("⚙️ Конфигурация", "Настроить директории, лимиты и сжатие", '9', func() {
			m.switchToScreen(entities.UIScreenConfig)
		}).
		AddItem("❌ Выход", "Закрыть приложение", 'q', func() {
			m.Cleanup()
			m.app.Stop()
		})

	m.mainMenu.SetBorder(true).
		SetTitle("📚 Doctools - Главное меню").
		SetTitleAlign(tview.AlignCenter)

	m.mainMenu.SetSelectedBackgroundColor(tcell.ColorDarkBlue).
		SetSelectedTextColor(tcell.ColorWhite).
		SetMainTextColor(tcell.ColorWhite).
		SetSecondaryTextColor(tcell.ColorGray)
}

// createProcessingScreen создает экран обработки
func (m *Manager) createProcessingScreen() {
	m.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetScrollable(true)

	m.progressView.SetBorder(true).
		SetTitle("📊 Прогресс обработки").
		SetTitleAlign(tview.AlignCenter)

	m.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(MaxLogBufferSize)

	m.logView.SetBorder(true).
		SetTitle("📋 Журнал событий").
		SetTitleAlign(tview.AlignCenter)
}

// createProcessingLayout создает layout для экрана обработки
func (m *Manager) createProcessingLayout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.logView, 0, 1, false).
		AddItem(m.progressView, ProgressViewHeight, 0, false)
}

// setupKeyBindings настраивает горячие клавиши
func (m *Manager) setupKeyBindings() {
	m.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		case tcell.KeyF2:
			m.switchToScreen(entities.UIScreenConfig)
			return nil
		case tcell.KeyF3:
			m.switchToScreen(entities.UIScreenProcessing)
			return nil
		case tcell.KeyF4:
			m.switchToScreen(entities.UIScreenHistory)
			return nil
		case tcell.KeyEscape:
			// формы обрабатывают ESC сами
			if m.currentScreen == entities.UIScreenConfig || m.currentScreen == entities.UIScreenOperation {
				return event
			}
			if m.currentScreen != entities.UIScreenMenu {
				m.switchToScreen(entities.UIScreenMenu)
				return nil
			}
		}

		if m.currentScreen == entities.UIScreenMenu {
			switch event.Rune() {
			case 'q', 'Q':
				m.Cleanup()
				m.app.Stop()
				return nil
			}
		}

		return event
	})
}

// switchToScreen переключает на указанный экран
func (m *Manager) switchToScreen(screen entities.UIScreen) {
	m.statusMutex.Lock()
	m.currentScreen = screen
	m.statusMutex.Unlock()

	switch screen {
	case entities.UIScreenMenu:
		m.pages.SwitchToPage("menu")
		m.app.SetFocus(m.mainMenu)
	case entities.UIScreenConfig:
		m.loadConfig()
		m.buildConfigForm()
		m.pages.SwitchToPage("config")
		m.app.SetFocus(m.configForm)
	case entities.UIScreenOperation:
		m.pages.SwitchToPage("operation")
		m.app.SetFocus(m.operationForm)
	case entities.UIScreenHistory:
		m.refreshHistory()
		m.pages.SwitchToPage("history")
		m.app.SetFocus(m.historyTable)
	case entities.UIScreenProcessing:
		m.pages.SwitchToPage("processing")
	}
}

// startProcessing начинает пакетную обработку
func (m *Manager) startProcessing() {
	if !m.busy.CompareAndSwap(false, true) {
		m.setStatus("[yellow]Дождитесь завершения текущей операции[white]")
		return
	}
	m.switchToScreen(entities.UIScreenProcessing)

	if m.onStartProcessing != nil {
		go m.onStartProcessing()
	}
}

// submit выполняет запрос пользователя в отдельной горутине
func (m *Manager) submit(req Request) {
	if !m.busy.CompareAndSwap(false, true) {
		m.setStatus("[yellow]Дождитесь завершения текущей операции[white]")
		return
	}
	m.setStatus(fmt.Sprintf("[yellow]Выполняется: %s[white]", req.Operation.Label()))
	m.switchToScreen(entities.UIScreenProcessing)

	if m.onRequest != nil {
		go m.onRequest(req)
	}
}

// updateProgress обновляет панель прогресса
func (m *Manager) updateProgress(status entities.ProcessingStatus) {
	if m.progressView == nil {
		return
	}
	text := RenderProgress(status)
	m.app.QueueUpdateDraw(func() {
		m.progressView.SetText(text)
	})
}

// AddLog добавляет запись в окно журнала (неблокирующе)
func (m *Manager) AddLog(level, message string) {
	m.logs.push(formatLogLine(level, message))
}

func (m *Manager) showLogs(text string) {
	if m.logView == nil {
		return
	}
	m.app.QueueUpdateDraw(func() {
		m.logView.SetText(text)
		m.logView.ScrollToEnd()
	})
}

// Cleanup освобождает ресурсы менеджера (идемпотентный)
func (m *Manager) Cleanup() {
	m.logs.stop()
}
