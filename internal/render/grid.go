// Package render draws the visual ELD grid for a daily log sheet: a 24-hour
// by four-status chart with one filled block per duty segment, the shape
// drivers and inspectors are used to reading.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/haultrackr/eld-backend/internal/domain"
)

const (
	gridWidth  = 800
	gridHeight = 400
	labelBand  = 20 // bottom strip reserved for hour labels
)

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}

	// Fill colors per duty status row.
	statusColors = map[domain.DutyStatus]color.RGBA{
		domain.StatusOffDuty:      {255, 255, 255, 255}, // white
		domain.StatusSleeperBerth: {255, 228, 181, 255}, // moccasin
		domain.StatusDriving:      {144, 238, 144, 255}, // light green
		domain.StatusOnDuty:       {173, 216, 230, 255}, // light blue
	}

	// Row order top to bottom, matching the paper log layout.
	statusRows = map[domain.DutyStatus]int{
		domain.StatusOffDuty:      0,
		domain.StatusSleeperBerth: 1,
		domain.StatusDriving:      2,
		domain.StatusOnDuty:       3,
	}
)

// Grid renders the log sheet as a PNG image and returns the encoded bytes.
func Grid(sheet domain.LogSheet) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, gridWidth, gridHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{white}, image.Point{}, draw.Src)

	chartHeight := gridHeight - labelBand
	hourWidth := float64(gridWidth) / 24
	rowHeight := float64(chartHeight) / 4

	// Status blocks go under the gridlines so the lines stay visible.
	for _, seg := range sheet.Segments {
		startX := int(seg.Start.Hours() * hourWidth)
		endX := int(endOfSegment(seg).Hours() * hourWidth)
		row, ok := statusRows[seg.Status]
		if !ok {
			return nil, fmt.Errorf("render: unknown duty status %q", seg.Status)
		}

		top := int(float64(row) * rowHeight)
		bottom := int(float64(row+1) * rowHeight)
		fill(img, startX, top, endX, bottom, statusColors[seg.Status])
	}

	// Vertical hour lines and labels.
	for hour := 0; hour <= 24; hour++ {
		x := int(float64(hour) * hourWidth)
		if x >= gridWidth {
			x = gridWidth - 1
		}
		fill(img, x, 0, x+1, chartHeight, black)
		if hour < 24 {
			drawLabel(img, x+4, gridHeight-6, strconv.Itoa(hour))
		}
	}

	// Horizontal status row separators.
	for row := 0; row <= 4; row++ {
		y := int(float64(row) * rowHeight)
		if y >= chartHeight {
			y = chartHeight - 1
		}
		fill(img, 0, y, gridWidth, y+1, black)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// endOfSegment clamps a segment's end to the day boundary for drawing; a
// midnight-crossing segment fills to the right edge and its remainder shows
// on the next day's sheet.
func endOfSegment(seg domain.DutySegment) time.Duration {
	if seg.EndsNextDay || seg.End < seg.Start {
		return 24 * time.Hour
	}
	return seg.End
}

// fill paints the half-open rectangle [x0,x1)×[y0,y1).
func fill(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{c}, image.Point{}, draw.Src)
}

// drawLabel writes small text with the fixed 7x13 bitmap font.
func drawLabel(img *image.RGBA, x, y int, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{black},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
