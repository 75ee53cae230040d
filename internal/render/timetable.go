// Package render рисует недельную сетку доступности преподавателя как PNG.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/egorkkov/tutor_booking/internal/model"
)

// Константы размеров и отступов
const (
	cellWidth    = 120
	cellHeight   = 48
	headerHeight = 56
	labelsWidth  = 80
	cellPadding  = 4
)

// Цветовая схема
var (
	bgColor        = color.RGBA{245, 246, 248, 255}
	gridColor      = color.NRGBA{205, 208, 212, 255}
	textColor      = color.RGBA{80, 85, 90, 255}
	slotFreeColor  = color.RGBA{133, 193, 85, 220}
	slotTakenColor = color.RGBA{255, 182, 193, 255}
)

// TimetablePNG рисует сетку день×время для слотов одного преподавателя.
// Свободные слоты зелёные, занятые розовые, отсутствующие — пустые клетки.
func TimetablePNG(teacherName string, slots []*model.Slot) ([]byte, error) {
	times := timeRows(slots)

	width := labelsWidth + cellWidth*len(model.WeekDays)
	height := headerHeight + cellHeight*max(len(times), 1)

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(bgColor)
	dc.Clear()

	dc.SetColor(textColor)
	dc.DrawStringAnchored(teacherName, labelsWidth/2+4, headerHeight/4, 0, 0.5)

	// Заголовки дней
	for i, day := range model.WeekDays {
		x := float64(labelsWidth + i*cellWidth + cellWidth/2)
		dc.DrawStringAnchored(day, x, headerHeight*3/4, 0.5, 0.5)
	}

	// Метки времени слева
	for i, tm := range times {
		y := float64(headerHeight + i*cellHeight + cellHeight/2)
		dc.DrawStringAnchored(tm, labelsWidth/2, y, 0.5, 0.5)
	}

	// Клетки слотов
	for _, slot := range slots {
		col := dayColumn(slot.Day)
		row := timeRow(times, slot.Time)
		if col < 0 || row < 0 {
			continue
		}

		x := float64(labelsWidth + col*cellWidth + cellPadding)
		y := float64(headerHeight + row*cellHeight + cellPadding)
		w := float64(cellWidth - 2*cellPadding)
		h := float64(cellHeight - 2*cellPadding)

		if slot.Status == model.SlotStatusFree {
			dc.SetColor(slotFreeColor)
		} else {
			dc.SetColor(slotTakenColor)
		}
		dc.DrawRoundedRectangle(x, y, w, h, 6)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(slot.Time, x+w/2, y+h/2, 0.5, 0.5)
	}

	// Линии сетки
	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for i := 0; i <= len(model.WeekDays); i++ {
		x := float64(labelsWidth + i*cellWidth)
		dc.DrawLine(x, headerHeight, x, float64(height))
	}
	for i := 0; i <= len(times); i++ {
		y := float64(headerHeight + i*cellHeight)
		dc.DrawLine(0, y, float64(width), y)
	}
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode timetable png: %w", err)
	}

	return buf.Bytes(), nil
}

// timeRows собирает уникальные метки времени для строк сетки
func timeRows(slots []*model.Slot) []string {
	seen := map[string]struct{}{}
	var times []string
	for _, slot := range slots {
		if _, ok := seen[slot.Time]; ok {
			continue
		}
		seen[slot.Time] = struct{}{}
		times = append(times, slot.Time)
	}
	sort.Strings(times)
	return times
}

func dayColumn(day string) int {
	for i, d := range model.WeekDays {
		if d == day {
			return i
		}
	}
	return -1
}

func timeRow(times []string, tm string) int {
	for i, t := range times {
		if t == tm {
			return i
		}
	}
	return -1
}
