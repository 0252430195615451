package components

const (
	BackLabel     = "Back"
	ContinueLabel = "Continue"
	FinishLabel   = "Finish"
)

type StepState int

const (
	StepLocked StepState = iota
	StepCurrent
	StepDone
)

// Step is one row of the progress column.
type Step struct {
	Label   string
	State   StepState
	Showing bool
}

type BlockKind int

const (
	BlockText BlockKind = iota
	BlockHeading
	BlockCode
	BlockField
	BlockChoice
	BlockCheckbox
	BlockList
)

type Tone int

const (
	ToneNormal Tone = iota
	ToneSub
	ToneAccent
	ToneError
)

type Option struct {
	Label  string
	Detail string
}

// Block is one vertical section of the card body.
type Block struct {
	ID    string
	Kind  BlockKind
	Label string
	Text  string
	// Lines are preformatted: truncated, never wrapped.
	Lines []string
	Tone  Tone

	Field    Field
	Options  []Option
	Selected int
	Cursor   int
	Checked  bool
	Focused  bool
}

// Focusable reports whether the block takes keyboard focus.
func (b Block) Focusable() bool {
	switch b.Kind {
	case BlockField, BlockChoice, BlockCheckbox, BlockList:
		return true
	default:
		return false
	}
}

type Button struct {
	Label    string
	Visible  bool
	Disabled bool
	Focused  bool
	Down     bool
}

type Card struct {
	Number int
	Title  string
	Blocks []Block
	Scroll int

	Back     Button
	Continue Button
	Err      string
	Notice   string
}

type Rect struct {
	X int
	Y int
	W int
	H int
}

func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

type Layout struct {
	LogoX int
	LogoY int
	Steps Rect
	Card  Rect
}

type ViewState struct {
	W int
	H int

	Steps []Step
	Card  Card
	Hint  string
}
