package tui

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"doctools/internal/domain/entities"
)

var (
	rotations      = []string{"90", "180", "270", "-90"}
	stampPositions = []entities.StampPosition{
		entities.StampBottomCenter,
		entities.StampBottomRight,
		entities.StampTopRight,
	}
	resizeFormats = []string{"jpeg", "png"}
)

// createOperationScreen создает форму запроса операции
func (m *Manager) createOperationScreen() {
	m.operationForm = tview.NewForm()
	m.operationForm.SetBorder(true).SetTitleAlign(tview.AlignCenter)

	m.operationForm.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			m.switchToScreen(entities.UIScreenMenu)
			return nil
		}
		return event
	})
}

// openOperation строит форму для операции op и показывает ее
func (m *Manager) openOperation(op entities.Operation) {
	cfg := m.GetConfig()
	req := Request{Operation: op, Tier: cfg.QualityTier()}
	form := m.operationForm.Clear(true)

	fileLabel := "Файл"
	if op == entities.OpPDFMerge {
		fileLabel = "Файлы по порядку (через ;)"
	}
	form.AddInputField(fileLabel, "", 70, nil, func(text string) {
		req.Files = ParseFileList(text)
	})

	switch op {
	case entities.OpPDFSplit:
		form.AddInputField("Страницы (например 1,3,5-7)", "", 30, nil, func(text string) {
			req.Pages = text
		})

	case entities.OpPDFPages:
		req.PageAction = ActionRotate
		req.Degrees = 90
		req.Position = entities.StampBottomCenter

		actions := PageActions()
		actionLabels := make([]string, len(actions))
		for i, a := range actions {
			actionLabels[i] = a.Label()
		}
		positionLabels := make([]string, len(stampPositions))
		for i, p := range stampPositions {
			positionLabels[i] = string(p)
		}

		form.AddDropDown("Действие", actionLabels, 0, func(option string, optionIndex int) {
			if optionIndex >= 0 {
				req.PageAction = actions[optionIndex]
			}
		}).
			AddInputField("Страницы (пусто - все для поворота)", "", 30, nil, func(text string) {
				req.Pages = text
			}).
			AddDropDown("Угол поворота", rotations, 0, func(option string, optionIndex int) {
				if deg, err := strconv.Atoi(option); err == nil {
					req.Degrees = deg
				}
			}).
			AddDropDown("Положение номера", positionLabels, 0, func(option string, optionIndex int) {
				if optionIndex >= 0 {
					req.Position = stampPositions[optionIndex]
				}
			})

	case entities.OpPDFCompress, entities.OpImageCompress:
		tiers := entities.Tiers()
		labels := make([]string, len(tiers))
		for i, t := range tiers {
			labels[i] = t.Label()
		}
		form.AddDropDown("Уровень сжатия", labels, max(0, slices.Index(tiers, req.Tier)), func(option string, optionIndex int) {
			if optionIndex >= 0 {
				req.Tier = tiers[optionIndex]
			}
		})

	case entities.OpImageResize:
		req.Resize = entities.ResizeRequest{KeepAspect: true, Format: "jpeg"}
		form.AddInputField("Ширина (px)", "", 8, tview.InputFieldInteger, func(text string) {
			req.Resize.Width, _ = strconv.Atoi(text)
		}).
			AddInputField("Высота (px)", "", 8, tview.InputFieldInteger, func(text string) {
				req.Resize.Height, _ = strconv.Atoi(text)
			}).
			AddCheckbox("Сохранять пропорции", true, func(checked bool) {
				req.Resize.KeepAspect = checked
			}).
			AddDropDown("Формат", resizeFormats, 0, func(option string, optionIndex int) {
				req.Resize.Format = option
			}).
			AddInputField("Качество JPEG (1-100)", "92", 4, tview.InputFieldInteger, func(text string) {
				if q, err := strconv.Atoi(text); err == nil {
					req.Resize.Quality = float64(q) / 100
				}
			})
	}

	form.AddButton("Выполнить", func() {
		if len(req.Files) == 0 {
			m.setStatus("[red]✗ Не указан файл[white]")
			return
		}
		m.submit(req)
	}).
		AddButton("Отмена", func() {
			m.switchToScreen(entities.UIScreenMenu)
		})

	form.SetTitle(fmt.Sprintf("📚 %s (ESC - отмена)", op.Label()))
	m.switchToScreen(entities.UIScreenOperation)
}
