package components

import (
	"strings"
	"unicode/utf8"
)

func newBuf(w, h int) [][]cell {
	b := make([][]cell, h)
	for y := 0; y < h; y++ {
		row := make([]cell, w)
		for x := 0; x < w; x++ {
			row[x] = cell{ch: ' ', fg: cText, bg: cBG}
		}
		b[y] = row
	}
	return b
}

func setCell(b [][]cell, x, y int, c cell) {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return
	}
	b[y][x] = c
}

// drawText writes s starting at x and returns the column after the last rune.
func drawText(b [][]cell, x, y int, fg, bg rgb, s string) int {
	return drawRunes(b, x, y, fg, bg, s, false)
}

func drawTextSkipSpaces(b [][]cell, x, y int, fg, bg rgb, s string) int {
	return drawRunes(b, x, y, fg, bg, s, true)
}

// drawRunes skips spaces when transparent is set so the grid shows through.
func drawRunes(b [][]cell, x, y int, fg, bg rgb, s string, transparent bool) int {
	xi := x
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			break
		}
		s = s[size:]
		if r == '\n' {
			break
		}
		if !(transparent && r == ' ') {
			setCell(b, xi, y, cell{ch: r, fg: fg, bg: bg})
		}
		xi++
	}
	return xi
}

func drawHLine(b [][]cell, x, y, w int, fg, bg rgb, ch rune) {
	for i := 0; i < w; i++ {
		setCell(b, x+i, y, cell{ch: ch, fg: fg, bg: bg})
	}
}

func drawVLine(b [][]cell, x, y, h int, fg, bg rgb, ch rune) {
	for i := 0; i < h; i++ {
		setCell(b, x, y+i, cell{ch: ch, fg: fg, bg: bg})
	}
}

func drawBox(b [][]cell, x, y, w, h int, border rgb) {
	if w < 2 || h < 2 {
		return
	}
	drawHLine(b, x+1, y, w-2, border, cBG, '─')
	drawHLine(b, x+1, y+h-1, w-2, border, cBG, '─')
	drawVLine(b, x, y+1, h-2, border, cBG, '│')
	drawVLine(b, x+w-1, y+1, h-2, border, cBG, '│')
	setCell(b, x, y, cell{ch: '╭', fg: border, bg: cBG})
	setCell(b, x+w-1, y, cell{ch: '╮', fg: border, bg: cBG})
	setCell(b, x, y+h-1, cell{ch: '╰', fg: border, bg: cBG})
	setCell(b, x+w-1, y+h-1, cell{ch: '╯', fg: border, bg: cBG})
}

func drawGrid(b [][]cell, stepX, stepY int) {
	for y := range b {
		for x := range b[y] {
			vx := stepX > 0 && x%stepX == 0
			hy := stepY > 0 && y%stepY == 0
			switch {
			case vx && hy:
				b[y][x] = cell{ch: '┼', fg: cGrid2, bg: cBG}
			case vx:
				b[y][x] = cell{ch: '│', fg: cGrid, bg: cBG}
			case hy:
				b[y][x] = cell{ch: '─', fg: cGrid, bg: cBG}
			}
		}
	}
}

func fillRect(b [][]cell, x, y, w, h int, fg, bg rgb, ch rune) {
	for yi := 0; yi < h; yi++ {
		drawHLine(b, x, y+yi, w, fg, bg, ch)
	}
}

// drawButton draws a three-row pill button with the label centred.
func drawButton(b [][]cell, r Rect, btn Button) {
	fg, bgMain := cLime, cGrid
	switch {
	case btn.Disabled:
		fg, bgMain = cSub, cBG
	case btn.Down:
		fg, bgMain = cBG, cLime
	case btn.Focused:
		bgMain = cGrid2
	}

	midY := r.Y + r.H/2
	if bgMain == cBG {
		fillRect(b, r.X, r.Y, r.W, r.H, cText, cBG, ' ')
		drawBox(b, r.X, r.Y, r.W, r.H, cGrid2)
	} else if r.H >= 3 {
		fillRect(b, r.X, r.Y, r.W, 1, bgMain, cBG, '▄')
		fillRect(b, r.X, midY, r.W, 1, cText, bgMain, ' ')
		fillRect(b, r.X, r.Y+r.H-1, r.W, 1, bgMain, cBG, '▀')
	} else {
		fillRect(b, r.X, r.Y, r.W, r.H, cText, bgMain, ' ')
	}

	labelX := r.X + (r.W-runeLen(btn.Label))/2
	if labelX < r.X {
		labelX = r.X
	}
	drawText(b, labelX, midY, fg, bgMain, btn.Label)
}

func maxLineLen(lines []string) int {
	m := 0
	for _, ln := range lines {
		m = maxInt(m, runeLen(ln))
	}
	return m
}

func renderBuf(b [][]cell) string {
	var sb strings.Builder
	curFG := rgb{-1, -1, -1}
	curBG := rgb{-1, -1, -1}

	set := func(fg, bg rgb) {
		if fg != curFG {
			sb.WriteString(ansiFG(fg))
			curFG = fg
		}
		if bg != curBG {
			sb.WriteString(ansiBG(bg))
			curBG = bg
		}
	}

	for y := 0; y < len(b); y++ {
		row := b[y]
		for x := 0; x < len(row); x++ {
			c := row[x]
			set(c.fg, c.bg)
			sb.WriteRune(c.ch)
		}
		sb.WriteString(ansiReset)
		curFG, curBG = rgb{-1, -1, -1}, rgb{-1, -1, -1}
		if y != len(b)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
