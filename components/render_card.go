package components

import "fmt"

type seg struct {
	text string
	fg   rgb
	bg   rgb
}

type row struct {
	segs    []seg
	field   *Field
	fieldX  int
	fieldW  int
	focused bool
}

func textRow(fg rgb, s string) row {
	return row{segs: []seg{{text: s, fg: fg, bg: cBG}}}
}

// cardRows flattens blocks into body rows, one blank row between blocks.
func cardRows(blocks []Block, width int) []row {
	var rows []row
	for i := range blocks {
		if i > 0 {
			rows = append(rows, row{})
		}
		rows = append(rows, blockRows(&blocks[i], width)...)
	}
	return rows
}

func blockRows(bl *Block, width int) []row {
	var out []row
	mark := func(rs []row) []row {
		for i := range rs {
			rs[i].focused = bl.Focused
		}
		return rs
	}

	switch bl.Kind {
	case BlockHeading:
		out = append(out, textRow(cLime, truncate(bl.Text, width)))

	case BlockText:
		fg := toneFG(bl.Tone)
		if bl.Text != "" {
			for _, ln := range wrapText(bl.Text, width) {
				out = append(out, textRow(fg, ln))
			}
		}
		for _, ln := range bl.Lines {
			out = append(out, textRow(fg, truncate(ln, width)))
		}

	case BlockCode:
		if bl.Label != "" {
			out = append(out, textRow(cSub, truncate(bl.Label, width)))
		}
		for _, ln := range bl.Lines {
			out = append(out, row{segs: []seg{
				{text: "│ ", fg: cGrid2, bg: cBG},
				{text: truncate(ln, width-2), fg: cDim, bg: cBG},
			}})
		}

	case BlockField:
		label := truncate(bl.Label, fieldLabelW-1)
		labelFG := cSub
		if bl.Focused {
			labelFG = cLime
		}
		fw := maxInt(1, width-fieldLabelW-2)
		r := row{
			segs: []seg{
				{text: fmt.Sprintf("%-*s", fieldLabelW, label), fg: labelFG, bg: cBG},
				{text: "[", fg: cGrid2, bg: cBG},
			},
			field:  &bl.Field,
			fieldX: fieldLabelW + 1,
			fieldW: fw,
		}
		out = append(out, r)
		if bl.Text != "" {
			out = append(out, row{segs: []seg{
				{text: fmt.Sprintf("%*s", fieldLabelW, ""), fg: cText, bg: cBG},
				{text: truncate(bl.Text, width-fieldLabelW), fg: toneFG(bl.Tone), bg: cBG},
			}})
		}
		out = mark(out)

	case BlockChoice:
		labelFG := cSub
		if bl.Focused {
			labelFG = cLime
		}
		out = append(out, textRow(labelFG, truncate(bl.Label, width)))
		var segs []seg
		used := 0
		for i, opt := range bl.Options {
			dot := "( )"
			fg, bg := cText, cBG
			if i == bl.Selected {
				dot = "(•)"
				fg = cLime
				if bl.Focused {
					fg, bg = cBG, cLime
				}
			}
			txt := fmt.Sprintf("%s %s", dot, opt.Label)
			if used+runeLen(txt)+2 > width && len(segs) > 0 {
				out = append(out, row{segs: segs})
				segs, used = nil, 0
			}
			segs = append(segs, seg{text: txt, fg: fg, bg: bg}, seg{text: "  ", fg: cText, bg: cBG})
			used += runeLen(txt) + 2
		}
		if len(segs) > 0 {
			out = append(out, row{segs: segs})
		}
		out = mark(out)

	case BlockCheckbox:
		box := "[ ] "
		if bl.Checked {
			box = "[x] "
		}
		fg := cText
		if bl.Focused {
			fg = cLime
		}
		for i, ln := range wrapText(bl.Text, maxInt(1, width-4)) {
			prefix := "    "
			if i == 0 {
				prefix = box
			}
			out = append(out, row{segs: []seg{{text: prefix, fg: cLime, bg: cBG}, {text: ln, fg: fg, bg: cBG}}})
		}
		out = mark(out)

	case BlockList:
		if bl.Label != "" {
			out = append(out, textRow(cSub, truncate(bl.Label, width)))
		}
		for i, opt := range bl.Options {
			pointer := "  "
			dot := "( ) "
			fg, bg := cText, cBG
			if i == bl.Selected {
				dot = "(•) "
				fg = cLime
			}
			if bl.Focused && i == bl.Cursor {
				pointer = "› "
				bg = cGrid2
			}
			name := fmt.Sprintf("%-14s", opt.Label)
			r := row{segs: []seg{
				{text: pointer, fg: cLime, bg: bg},
				{text: dot, fg: fg, bg: bg},
				{text: name, fg: fg, bg: bg},
				{text: truncate(opt.Detail, maxInt(0, width-4-runeLen(name))), fg: cSub, bg: bg},
			}}
			r.focused = bl.Focused && i == bl.Cursor
			out = append(out, r)
		}
	}
	return out
}

func drawRow(b [][]cell, x, y, width int, r row) {
	used := 0
	for _, s := range r.segs {
		if used >= width {
			break
		}
		txt := truncate(s.text, width-used)
		end := drawText(b, x+used, y, s.fg, s.bg, txt)
		used = end - x
	}
	if r.field != nil {
		fw := minInt(r.fieldW, width-r.fieldX-1)
		r.field.drawInto(b, x+r.fieldX, y, fw, r.focused)
		drawText(b, x+r.fieldX+fw, y, cGrid2, cBG, "]")
	}
}

func drawCard(b [][]cell, cardR Rect, card Card) {
	fillRect(b, cardR.X, cardR.Y, cardR.W, cardR.H, cText, cBG, ' ')
	drawBox(b, cardR.X, cardR.Y, cardR.W, cardR.H, cGrid2)

	titleX := cardR.X + 2
	if card.Number > 0 {
		titleX = drawText(b, titleX, cardR.Y+1, cLime, cBG, fmt.Sprintf("%02d", card.Number)) + 2
	}
	drawText(b, titleX, cardR.Y+1, cText, cBG, truncate(card.Title, cardR.X+cardR.W-2-titleX))
	drawHLine(b, cardR.X+1, cardR.Y+2, cardR.W-2, cGrid2, cBG, '─')

	body := BodyRect(cardR)
	rows := cardRows(card.Blocks, body.W)
	scroll := clamp(card.Scroll, 0, maxInt(0, len(rows)-body.H))
	for i := 0; i < body.H && scroll+i < len(rows); i++ {
		drawRow(b, body.X, body.Y+i, body.W, rows[scroll+i])
	}
	if scroll > 0 {
		drawText(b, cardR.X+cardR.W-2, body.Y, cDim, cBG, "▲")
	}
	if scroll+body.H < len(rows) {
		drawText(b, cardR.X+cardR.W-2, body.Y+body.H-1, cDim, cBG, "▼")
	}

	statusY := body.Y + body.H
	switch {
	case card.Err != "":
		drawText(b, body.X, statusY, cErr, cBG, truncate(card.Err, body.W))
	case card.Notice != "":
		drawText(b, body.X, statusY, cDim, cBG, truncate(card.Notice, body.W))
	}

	backR, contR, ok := ButtonRects(cardR)
	if !ok {
		return
	}
	if card.Back.Visible {
		drawButton(b, backR, card.Back)
	}
	if card.Continue.Visible {
		drawButton(b, contR, card.Continue)
	}
}
