package renderer

import (
	"strings"
	"testing"

	"hexmath/pkg/game/level"
	"hexmath/pkg/game/puzzle"
)

// fakeRenderer counts frames and keeps the last message list.
type fakeRenderer struct {
	frames   int
	clears   int
	messages []string
}

func (f *fakeRenderer) Init()  {}
func (f *fakeRenderer) Clear() { f.clears++ }
func (f *fakeRenderer) RenderFrame(s puzzle.Snapshot, messages []string) {
	f.frames++
	f.messages = messages
}
func (f *fakeRenderer) StyleText(text string, style TextStyle) string { return text }
func (f *fakeRenderer) FormatText(msg string, args ...any) string     { return msg }
func (f *fakeRenderer) ShowMessage(msg string)                        {}

func testLevel() *level.Level {
	return &level.Level{Name: "Level 1", Target: 11}
}

func TestDisplay_MessagesForEvents(t *testing.T) {
	d := NewDisplay(&fakeRenderer{})

	d.OnEvent(puzzle.Event{Kind: puzzle.EventLevelLoaded, Level: testLevel()})
	d.OnEvent(puzzle.Event{Kind: puzzle.EventFormulaChanged, Formula: "5 x 2"})
	d.OnEvent(puzzle.Event{Kind: puzzle.EventAttemptFinished, Formula: "5 x 2 + 6 = 16", Result: 16})
	d.OnEvent(puzzle.Event{Kind: puzzle.EventHistoryAppended, Formula: "5 x 2 + 6 = 16"})

	msgs := d.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Messages() = %q, want 2 messages", msgs)
	}
	if !strings.Contains(msgs[0], "Level 1") || !strings.Contains(msgs[0], "11") {
		t.Errorf("level message = %q, want name and target", msgs[0])
	}
	if !strings.HasPrefix(msgs[1], "WRONG{") || !strings.HasSuffix(msgs[1], "5 x 2 + 6 = 16") {
		t.Errorf("attempt message = %q, want WRONG markup and formula", msgs[1])
	}
}

func TestDisplay_WinMessages(t *testing.T) {
	d := NewDisplay(&fakeRenderer{})
	d.OnEvent(puzzle.Event{Kind: puzzle.EventAttemptFinished, Formula: "5 x 2 + 1 = 11", Correct: true})
	d.OnEvent(puzzle.Event{Kind: puzzle.EventLevelCompleted})
	d.OnEvent(puzzle.Event{Kind: puzzle.EventAllLevelsCompleted})

	msgs := d.Messages()
	if len(msgs) != 3 || !strings.HasPrefix(msgs[0], "CORRECT{") {
		t.Errorf("Messages() = %q", msgs)
	}
}

func TestDisplay_LevelLoadClearsMessages(t *testing.T) {
	d := NewDisplay(&fakeRenderer{})
	d.AddMessage("old")
	d.OnEvent(puzzle.Event{Kind: puzzle.EventLevelLoaded, Level: testLevel()})
	for _, m := range d.Messages() {
		if m == "old" {
			t.Error("message from previous level survived a level load")
		}
	}
}

func TestDisplay_MessageLimit(t *testing.T) {
	d := NewDisplay(&fakeRenderer{})
	for i := 0; i < MaxMessages+3; i++ {
		d.AddMessage(string(rune('a' + i)))
	}
	msgs := d.Messages()
	if len(msgs) != MaxMessages || msgs[0] != "d" {
		t.Errorf("Messages() = %q, want the last %d", msgs, MaxMessages)
	}
}

func TestDisplay_CooldownRedraws(t *testing.T) {
	r := &fakeRenderer{}
	d := NewDisplay(r)

	d.OnEvent(puzzle.Event{Kind: puzzle.EventCooldownFinished})
	if r.frames != 0 {
		t.Errorf("frames = %d before Attach, want 0", r.frames)
	}

	d.Attach(func() puzzle.Snapshot { return puzzle.Snapshot{} })
	d.AddMessage("hello")
	d.OnEvent(puzzle.Event{Kind: puzzle.EventCooldownFinished})
	if r.frames != 1 || r.clears != 1 {
		t.Errorf("frames=%d clears=%d, want 1/1", r.frames, r.clears)
	}
	if len(r.messages) != 1 || r.messages[0] != "hello" {
		t.Errorf("rendered messages = %q, want [hello]", r.messages)
	}
}
