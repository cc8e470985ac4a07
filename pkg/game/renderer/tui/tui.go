package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"hexmath/pkg/engine/terminal"
	"hexmath/pkg/game/puzzle"
	"hexmath/pkg/game/renderer"
	"hexmath/pkg/game/tile"
)

// Icon constants for history entries
const (
	IconCorrect = "✓"
	IconWrong   = "✗"
)

// Layout limits
const (
	MaxFrameWidth = 72
	MinFrameWidth = 40
	cellSpacing   = "  "
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out   io.Writer
	width func() int

	colorTile         color.Style
	colorTileSelected color.Style
	colorTileUsed     color.Style
	colorTarget       color.Style
	colorFormula      color.Style
	colorCorrect      color.Style
	colorWrong        color.Style
	colorAction       color.Style
	colorActionShort  color.Style
	colorSubtle       color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer writing to stdout
func New() *TUIRenderer {
	return NewWithWriter(os.Stdout, terminal.GetWidth)
}

// NewWithWriter creates a TUI renderer writing to out, sized by width
func NewWithWriter(out io.Writer, width func() int) *TUIRenderer {
	return &TUIRenderer{out: out, width: width}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorTile = color.Style{color.FgCyan}
	t.colorTileSelected = color.Style{color.FgYellow, color.OpBold}
	t.colorTileUsed = color.Style{color.FgGreen}
	t.colorTarget = color.Style{color.FgMagenta, color.OpBold}
	t.colorFormula = color.Style{color.FgWhite, color.OpBold}
	t.colorCorrect = color.Style{color.FgGreen, color.OpBold}
	t.colorWrong = color.Style{color.FgRed, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([A-Z_]+){([^{}]+)}`)
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	if t.out != os.Stdout {
		return
	}
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleTile:
		return t.colorTile.Sprint(text)
	case renderer.StyleTileSelected:
		return t.colorTileSelected.Sprint(text)
	case renderer.StyleTileUsed:
		return t.colorTileUsed.Sprint(text)
	case renderer.StyleTarget:
		return t.colorTarget.Sprint(text)
	case renderer.StyleFormula:
		return t.colorFormula.Sprint(text)
	case renderer.StyleCorrect:
		return t.colorCorrect.Sprint(text)
	case renderer.StyleWrong:
		return t.colorWrong.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := msg
	if len(args) > 0 {
		ret = fmt.Sprintf(msg, args...)
	}

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		var val string

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "ACTION":
			first, size := utf8.DecodeRuneInString(operand)
			val = t.colorActionShort.Sprint(string(first)) + t.colorAction.Sprint(operand[size:])
		case "CORRECT":
			val = t.colorCorrect.Sprint(operand)
		case "WRONG":
			val = t.colorWrong.Sprint(operand)
		case "TARGET":
			val = t.colorTarget.Sprint(operand)
		case "SUBTLE":
			val = t.colorSubtle.Sprint(operand)
		default:
			val = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Fprintln(t.out, t.FormatText("%s", msg))
}

// RenderFrame renders a complete game frame
func (t *TUIRenderer) RenderFrame(s puzzle.Snapshot, messages []string) {
	width := t.frameWidth()

	t.printHeader(s, width)
	t.printPyramid(s, width)
	t.printFormula(s)
	t.printHistory(s)
	t.printPossibleActions()
	t.printMessagesPane(messages, width)

	// Input prompt
	fmt.Fprint(t.out, "\n> ")
}

func (t *TUIRenderer) frameWidth() int {
	w := MaxFrameWidth
	if t.width != nil {
		w = t.width()
	}
	if w > MaxFrameWidth {
		w = MaxFrameWidth
	}
	if w < MinFrameWidth {
		w = MinFrameWidth
	}
	return w
}

// printCentered prints styled text centered in width, ignoring color codes
func (t *TUIRenderer) printCentered(s string, width int) {
	visible := utf8.RuneCountInString(color.ClearCode(s))
	pad := (width - visible) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(t.out, strings.Repeat(" ", pad)+s)
}

// printBullet prints a bulleted item
func (t *TUIRenderer) printBullet(txt string) {
	fmt.Fprint(t.out, "- "+t.FormatText("%s", txt)+"\n")
}

func (t *TUIRenderer) printHeader(s puzzle.Snapshot, width int) {
	if s.Level == nil {
		t.printCentered(t.colorSubtle.Sprint(gotext.Get("No level loaded")), width)
		fmt.Fprintln(t.out)
		return
	}

	left := t.colorAction.Sprint(s.Level.Name)
	right := t.colorSubtle.Sprint(gotext.Get("Target")+": ") + t.colorTarget.Sprint(s.Level.Target)
	gap := width - utf8.RuneCountInString(color.ClearCode(left)) - utf8.RuneCountInString(color.ClearCode(right))
	if gap < 1 {
		gap = 1
	}
	fmt.Fprintln(t.out, left+strings.Repeat(" ", gap)+right)
	fmt.Fprintln(t.out)
}

// renderTile returns the styled "A +5" text of a tile
func (t *TUIRenderer) renderTile(tl tile.Tile) string {
	text := fmt.Sprintf("%s %s", tl.Letter, tl.Label())
	switch {
	case tl.IsUsed():
		return t.StyleText("["+text+"]", renderer.StyleTileUsed)
	case tl.IsSelected():
		return t.StyleText("<"+text+">", renderer.StyleTileSelected)
	default:
		return t.StyleText(" "+text+" ", renderer.StyleTile)
	}
}

func (t *TUIRenderer) printPyramid(s puzzle.Snapshot, width int) {
	rows := make([][]string, 0, 4)
	for _, tl := range s.Tiles {
		r := tile.Row(tl.Position)
		for len(rows) <= r {
			rows = append(rows, nil)
		}
		rows[r] = append(rows[r], t.renderTile(tl))
	}

	for _, row := range rows {
		t.printCentered(strings.Join(row, cellSpacing), width)
	}
	fmt.Fprintln(t.out)
}

func (t *TUIRenderer) printFormula(s puzzle.Snapshot) {
	fmt.Fprint(t.out, t.colorSubtle.Sprint(gotext.Get("Formula")+": "))
	if s.Formula == "" {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("select a tile...")))
		return
	}
	fmt.Fprintln(t.out, t.StyleText(s.Formula, renderer.StyleFormula))
}

func (t *TUIRenderer) printHistory(s puzzle.Snapshot) {
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(gotext.Get("History")+":"))
	if len(s.History) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("  "+gotext.Get("(no attempts)")))
		return
	}
	for _, h := range s.History {
		if h.Correct {
			fmt.Fprintln(t.out, "  "+t.StyleText(IconCorrect+" "+h.Formula, renderer.StyleCorrect))
		} else {
			fmt.Fprintln(t.out, "  "+t.StyleText(IconWrong+" "+h.Formula, renderer.StyleWrong))
		}
	}
}

// printPossibleActions prints the available actions
func (t *TUIRenderer) printPossibleActions() {
	fmt.Fprintln(t.out)
	t.printBullet("ACTION{a}-ACTION{j}: \t" + gotext.Get("Tap tiles (several letters at once are fine)"))
	t.printBullet("ACTION{reset}, ACTION{next}, ACTION{help}, ACTION{quit}")
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(messages []string, width int) {
	label := " " + gotext.Get("Messages") + " "
	labelLen := utf8.RuneCountInString(label)
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}
	rightLen := width - sideLen - labelLen
	if rightLen < 1 {
		rightLen = 1
	}

	fmt.Fprintln(t.out)
	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", sideLen)+label+strings.Repeat("─", rightLen)))

	if len(messages) == 0 {
		fmt.Fprintln(t.out, t.colorSubtle.Sprint("  "+gotext.Get("(no messages)")))
	} else {
		for _, msg := range messages {
			fmt.Fprintf(t.out, "  %s\n", t.FormatText("%s", msg))
		}
	}

	fmt.Fprintln(t.out, t.colorSubtle.Sprint(strings.Repeat("─", width)))
}
