package components

const (
	buttonH     = 3
	cardMaxH    = 30
	hintRows    = 2
	cardHeaderH = 3
	// status row + buttons + bottom border
	cardFooterH = 1 + buttonH + 1
)

func logoSize() (int, int) {
	markW := maxLineLen(logoMark)
	wordW := maxInt(maxLineLen(logoWord), runeLen(logoTag))
	return markW + 2 + wordW, maxInt(len(logoMark), len(logoWord)+1)
}

// ComputeLayout places the logo and stepper in a left column and the card to
// its right. Narrow terminals drop the side column; Steps is then empty.
func ComputeLayout(w, h, steps int) (Layout, bool) {
	if w <= 0 || h <= 0 {
		return Layout{}, false
	}

	containerW := minInt(containerWFixed, w-4)
	if containerW < cardMinW {
		return Layout{}, false
	}

	cardH := clamp(h-2-hintRows, 0, cardMaxH)
	if cardH < cardMinH {
		return Layout{}, false
	}

	_, logoH := logoSize()
	compact := containerW < sideW+colGap+cardMinW

	sideH := 0
	if !compact {
		sideH = logoH + 2 + steps
	}
	blockH := maxInt(cardH, sideH)
	if blockH > h-hintRows {
		blockH = h - hintRows
	}
	baseY := maxInt(1, (h-hintRows-blockH)/2)
	cx0 := maxInt(0, (w-containerW)/2)

	if compact {
		return Layout{
			LogoX: -1,
			LogoY: -1,
			Card:  Rect{X: cx0, Y: baseY, W: containerW, H: cardH},
		}, true
	}

	return Layout{
		LogoX: cx0 + 1,
		LogoY: baseY,
		Steps: Rect{X: cx0 + 1, Y: baseY + logoH + 2, W: sideW - 1, H: maxInt(0, blockH-logoH-2)},
		Card:  Rect{X: cx0 + sideW + colGap, Y: baseY, W: containerW - sideW - colGap, H: cardH},
	}, true
}

// Compact reports whether the side column was dropped.
func (l Layout) Compact() bool { return l.Steps.W == 0 }

func buttonWidth(label string) int {
	return runeLen(label) + buttonPadX*2
}

// ButtonRects returns the Back button (bottom left) and the Continue button
// (bottom right) of a card.
func ButtonRects(cardR Rect) (back, cont Rect, ok bool) {
	if cardR.H < cardHeaderH+cardFooterH+1 {
		return Rect{}, Rect{}, false
	}
	y := cardR.Y + cardR.H - 1 - buttonH
	backW := buttonWidth(BackLabel)
	contW := maxInt(buttonWidth(ContinueLabel), buttonWidth(FinishLabel))
	if cardR.W < backW+contW+6 {
		return Rect{}, Rect{}, false
	}
	back = Rect{X: cardR.X + 2, Y: y, W: backW, H: buttonH}
	cont = Rect{X: cardR.X + cardR.W - 2 - contW, Y: y, W: contW, H: buttonH}
	return back, cont, true
}

// BodyRect is the scrollable region between the card title and footer.
func BodyRect(cardR Rect) Rect {
	return Rect{
		X: cardR.X + 2,
		Y: cardR.Y + cardHeaderH,
		W: maxInt(0, cardR.W-4),
		H: maxInt(0, cardR.H-cardHeaderH-cardFooterH),
	}
}

// ScrollLimit is the largest useful scroll offset for the card at the given
// terminal size.
func ScrollLimit(state ViewState) int {
	layout, ok := ComputeLayout(state.W, state.H, len(state.Steps))
	if !ok {
		return 0
	}
	body := BodyRect(layout.Card)
	rows := cardRows(state.Card.Blocks, body.W)
	return maxInt(0, len(rows)-body.H)
}

// ScrollToFocus returns the card scroll offset clamped to ScrollLimit and
// moved so the focused block is inside the body.
func ScrollToFocus(state ViewState) int {
	layout, ok := ComputeLayout(state.W, state.H, len(state.Steps))
	if !ok {
		return 0
	}
	body := BodyRect(layout.Card)
	rows := cardRows(state.Card.Blocks, body.W)
	scroll := clamp(state.Card.Scroll, 0, maxInt(0, len(rows)-body.H))

	first, last := -1, -1
	for i, r := range rows {
		if r.focused {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 || body.H == 0 {
		return scroll
	}
	if last >= scroll+body.H {
		scroll = last - body.H + 1
	}
	if first < scroll {
		scroll = first
	}
	return clamp(scroll, 0, maxInt(0, len(rows)-body.H))
}
