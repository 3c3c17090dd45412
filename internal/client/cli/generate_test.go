package cli

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckpilot/deckpilot/internal/client/tasks"
)

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		lines = append(lines, fmt.Sprint(args...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestPrintTaskProgress_InterimSnapshots(t *testing.T) {
	lines := capturePrintln(t)

	printTaskProgress(&tasks.Snapshot{
		Status:   tasks.StatusProcessing,
		Progress: &tasks.ImageProgress{StageName: "rendering", Completed: 1, Total: 5},
	})
	printTaskProgress(&tasks.Snapshot{
		Status:   tasks.StatusProcessing,
		Progress: &tasks.ImageProgress{Completed: 3, Total: 5},
	})

	assert.Equal(t, []string{"  ... rendering 20%", "  ... 60%"}, *lines)
}

func TestPrintTaskProgress_SkipsUnprintableSnapshots(t *testing.T) {
	lines := capturePrintln(t)

	printTaskProgress(nil)
	printTaskProgress(&tasks.Snapshot{Status: tasks.StatusProcessing})
	printTaskProgress(&tasks.Snapshot{
		Status:   tasks.StatusCompleted,
		Progress: &tasks.ImageProgress{Completed: 5, Total: 5},
	})
	printTaskProgress(&tasks.Snapshot{
		Status:   tasks.StatusProcessing,
		Progress: &tasks.ImageProgress{},
	})

	assert.Empty(t, *lines)
}
