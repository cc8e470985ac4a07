package terminal

import (
	"os"
	"testing"
)

func TestGetSize_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w, h := GetSize(f)
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("GetSize(file) = %d, %d, want %d, %d", w, h, DefaultWidth, DefaultHeight)
	}
	if IsInteractive(f) {
		t.Error("IsInteractive(file) = true, want false")
	}
}
