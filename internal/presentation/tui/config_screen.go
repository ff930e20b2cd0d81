package tui

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"doctools/internal/domain/entities"
)

// Индекс поля лицензии UniPDF в форме конфигурации
const FormItemLicenseIndex = 4

var engines = []string{entities.EnginePDFCPU, entities.EngineUniPDF}

// createConfigScreen создает экран конфигурации
func (m *Manager) createConfigScreen() {
	m.configForm = tview.NewForm()

	m.configForm.SetBorder(true).
		SetTitle("📚 Doctools - Конфигурация (ESC - выйти без сохранения)").
		SetTitleAlign(tview.AlignCenter)

	m.configForm.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		}
		return event
	})

	m.buildConfigForm()
}

// buildConfigForm заполняет форму по черновику конфигурации
func (m *Manager) buildConfigForm() {
	draft := m.GetConfig()
	tiers := entities.Tiers()

	tierLabels := make([]string, len(tiers))
	for i, t := range tiers {
		tierLabels[i] = t.Label()
	}

	m.configForm.Clear(true).
		AddInputField("Входная директория", draft.Workspace.InputDirectory, 60, nil, func(text string) {
			draft.Workspace.InputDirectory = text
		}).
		AddInputField("Выходная директория", draft.Workspace.OutputDirectory, 60, nil, func(text string) {
			draft.Workspace.OutputDirectory = text
		}).
		AddDropDown("Уровень сжатия", tierLabels, max(0, slices.Index(tiers, draft.QualityTier())), func(option string, optionIndex int) {
			if optionIndex >= 0 {
				draft.Compression.Tier = string(tiers[optionIndex])
			}
		}).
		AddDropDown("PDF движок", engines, max(0, slices.Index(engines, draft.Compression.Engine)), func(option string, optionIndex int) {
			draft.Compression.Engine = option
			m.updateLicenseFieldVisibility(option)
		}).
		AddInputField("Лицензия UniPDF (UNIDOC_LICENSE_API_KEY)", draft.Compression.UniPDFLicenseKey, 60, nil, func(text string) {
			draft.Compression.UniPDFLicenseKey = text
		}).
		AddCheckbox("Пакет: PDF", draft.Compression.EnablePDF, func(checked bool) {
			draft.Compression.EnablePDF = checked
		}).
		AddCheckbox("Пакет: JPEG", draft.Compression.EnableJPEG, func(checked bool) {
			draft.Compression.EnableJPEG = checked
		}).
		AddCheckbox("Пакет: PNG", draft.Compression.EnablePNG, func(checked bool) {
			draft.Compression.EnablePNG = checked
		}).
		AddCheckbox("Пакет: WebP", draft.Compression.EnableWebP, func(checked bool) {
			draft.Compression.EnableWebP = checked
		}).
		AddInputField("Параллельных воркеров (1-32)", strconv.Itoa(draft.Processing.ParallelWorkers), 6, tview.InputFieldInteger, func(text string) {
			if n, err := strconv.Atoi(text); err == nil {
				draft.Processing.ParallelWorkers = n
			}
		}).
		AddInputField("Повторов при ошибке", strconv.Itoa(draft.Processing.RetryAttempts), 6, tview.InputFieldInteger, func(text string) {
			if n, err := strconv.Atoi(text); err == nil {
				draft.Processing.RetryAttempts = n
			}
		}).
		AddCheckbox("Вести историю операций", draft.History.Enabled, func(checked bool) {
			draft.History.Enabled = checked
		}).
		AddButton("Сохранить", func() {
			if err := m.saveConfig(draft); err != nil {
				m.setStatus(fmt.Sprintf("[red]✗ %v[white]", err))
				return
			}
			m.setStatus("[green]✓ Конфигурация сохранена[white]")
			m.switchToScreen(entities.UIScreenMenu)
			m.mainMenu.SetCurrentItem(8)
		})

	m.updateLicenseFieldVisibility(draft.Compression.Engine)
}

// loadConfig перечитывает конфигурацию из файла
func (m *Manager) loadConfig() {
	if m.configRepo == nil {
		return
	}
	cfg, err := m.configRepo.Load(m.configPath)
	if err != nil {
		m.setStatus(fmt.Sprintf("[red]✗ %v[white]", err))
		return
	}

	m.statusMutex.Lock()
	m.config = cfg
	m.statusMutex.Unlock()
}

// saveConfig проверяет и сохраняет конфигурацию
func (m *Manager) saveConfig(cfg *entities.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if m.configRepo != nil {
		if err := m.configRepo.Save(m.configPath, cfg); err != nil {
			return fmt.Errorf("ошибка сохранения конфигурации: %w", err)
		}
	}

	m.statusMutex.Lock()
	m.config = cfg
	m.statusMutex.Unlock()
	return nil
}

// updateLicenseFieldVisibility выделяет поле лицензии, если выбран UniPDF
func (m *Manager) updateLicenseFieldVisibility(engine string) {
	if m.configForm == nil || m.configForm.GetFormItemCount() <= FormItemLicenseIndex {
		return
	}

	licenseField, ok := m.configForm.GetFormItem(FormItemLicenseIndex).(*tview.InputField)
	if !ok {
		return
	}

	if engine == entities.EngineUniPDF {
		licenseField.SetLabel("🔑 Лицензия UniPDF - ОБЯЗАТЕЛЬНО")
		licenseField.SetFieldBackgroundColor(tcell.ColorDarkBlue)
	} else {
		licenseField.SetLabel("Лицензия UniPDF (не требуется для PDFCPU)")
		licenseField.SetFieldBackgroundColor(tcell.ColorDarkGray)
	}
}
