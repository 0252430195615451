package components

import "fmt"

func drawLogo(b [][]cell, x, y int) {
	markW := maxLineLen(logoMark)
	for i, ln := range logoMark {
		drawTextSkipSpaces(b, x, y+i, cLime, cBG, ln)
	}
	wx := x + markW + 2
	for i, ln := range logoWord {
		drawTextSkipSpaces(b, wx, y+1+i, cText, cBG, ln)
	}
	drawTextSkipSpaces(b, wx, y+1+len(logoWord), cDim, cBG, logoTag)
}

func stepMark(s StepState) string {
	switch s {
	case StepDone:
		return "✓"
	case StepCurrent:
		return "›"
	default:
		return "·"
	}
}

func drawStepper(b [][]cell, r Rect, steps []Step) {
	for i, st := range steps {
		if i >= r.H {
			return
		}
		fg := cSub
		switch st.State {
		case StepDone:
			fg = cDim
		case StepCurrent:
			fg = cLime
		}
		bg := cBG
		if st.Showing {
			bg = cGrid2
			fillRect(b, r.X, r.Y+i, r.W, 1, cText, bg, ' ')
		}
		line := fmt.Sprintf("%02d %s %s", i+1, stepMark(st.State), st.Label)
		drawText(b, r.X, r.Y+i, fg, bg, truncate(line, r.W))
	}
}
