package components

const tooSmall = "terminal too small"

func Render(state ViewState) string {
	if state.W <= 0 || state.H <= 0 {
		return ""
	}

	b := newBuf(state.W, state.H)
	drawGrid(b, 6, 3)

	layout, ok := ComputeLayout(state.W, state.H, len(state.Steps))
	if !ok {
		msg := truncate(tooSmall, state.W)
		drawText(b, maxInt(0, (state.W-runeLen(msg))/2), state.H/2, cErr, cBG, msg)
		return renderBuf(b)
	}

	if !layout.Compact() {
		drawLogo(b, layout.LogoX, layout.LogoY)
		fillRect(b, layout.Steps.X, layout.Steps.Y, layout.Steps.W, minInt(layout.Steps.H, len(state.Steps)), cText, cBG, ' ')
		drawStepper(b, layout.Steps, state.Steps)
	}
	drawCard(b, layout.Card, state.Card)

	if state.Hint != "" {
		hint := truncate(state.Hint, state.W-2)
		drawText(b, maxInt(0, (state.W-runeLen(hint))/2), state.H-1, cSub, cBG, hint)
	}

	return renderBuf(b)
}
