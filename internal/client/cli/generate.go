package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deckpilot/deckpilot/internal/client/tasks"
	"github.com/deckpilot/deckpilot/internal/common"
)

// printTaskProgress reports interim polling snapshots as they arrive. The
// terminal snapshot is skipped; the command prints its own outcome line.
func printTaskProgress(s *tasks.Snapshot) {
	if s == nil || s.Status.Terminal() || s.Progress == nil {
		return
	}
	p := s.Progress.Percent()
	if p < 0 {
		return
	}
	if stage := s.Progress.Stage(); stage != "" {
		printlnFn(fmt.Sprintf("  ... %s %d%%", stage, p))
		return
	}
	printlnFn(fmt.Sprintf("  ... %d%%", p))
}

// awaitTask blocks until the tracked task reaches a terminal state and
// reports the outcome to the user.
func awaitTask(results <-chan tasks.Result, what string) error {
	res := <-results

	if res.Err != nil {
		if errors.Is(res.Err, common.ErrStillProcessing) {
			fmt.Printf("%s is still running on the server; use sync later to pick up the result.\n", what)
			return nil
		}
		return res.Err
	}

	if res.Snapshot != nil && res.Snapshot.Progress != nil {
		if p := res.Snapshot.Progress.Percent(); p >= 0 {
			fmt.Printf("%s finished (%d%%).\n", what, p)
			return nil
		}
	}
	fmt.Printf("%s finished.\n", what)
	return nil
}

// Outline generates the project outline from its idea.
func (a *App) Outline(ctx context.Context) error {
	p, err := a.store.GenerateOutline(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Outline generated: %d pages.\n", len(p.Pages))
	return nil
}

// Refine rewrites the outline or the descriptions following an instruction,
// depending on how far the project has progressed.
func (a *App) Refine(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: refine <instruction>")
		return nil
	}
	instruction := strings.Join(args, " ")

	cur := a.store.Current()
	if cur == nil {
		return common.ErrNoCurrentProject
	}

	described := false
	for _, pg := range cur.Pages {
		if pg.HasDescription() {
			described = true
			break
		}
	}

	var err error
	if described {
		_, err = a.store.RefineDescriptions(ctx, instruction)
	} else {
		_, err = a.store.RefineOutline(ctx, instruction)
	}
	if err != nil {
		return err
	}

	fmt.Println("Refined.")
	return nil
}

// Descriptions generates descriptions for every page and waits for the task.
func (a *App) Descriptions(ctx context.Context) error {
	results, err := a.store.GenerateDescriptions(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Generating descriptions...")
	return awaitTask(results, "Description generation")
}

// PageDescription regenerates one page's description.
func (a *App) PageDescription(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: pagedesc <page id>")
		return nil
	}

	page, err := a.store.GeneratePageDescription(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Description regenerated for page %s:\n", page.ID)
	for _, b := range page.Description {
		fmt.Printf("  [%s] %s\n", b.Type, b.Content)
	}
	return nil
}

// Images generates images for every described page and waits for the task.
func (a *App) Images(ctx context.Context) error {
	results, err := a.store.GenerateImages(ctx)
	if err != nil {
		return err
	}

	fmt.Println("Generating images...")
	return awaitTask(results, "Image generation")
}

// PageImage regenerates one page's image.
func (a *App) PageImage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: pageimage <page id>")
		return nil
	}

	results, err := a.store.GeneratePageImage(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println("Generating image...")
	return awaitTask(results, "Image generation")
}
