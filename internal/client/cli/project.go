package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deckpilot/deckpilot/internal/client/api"
	"github.com/deckpilot/deckpilot/internal/client/models"
)

// Projects lists the user's projects.
func (a *App) Projects(ctx context.Context) error {
	projects, meta, err := a.client.ListProjects(ctx, 1, 50)
	if err != nil {
		return err
	}

	for _, p := range projects {
		fmt.Printf("%s  %-30s  %s  %d pages\n", p.ID, p.Title, p.Status, len(p.Pages))
	}
	if meta != nil && meta.Total > len(projects) {
		fmt.Printf("(%d of %d shown)\n", len(projects), meta.Total)
	}
	return nil
}

// NewProject interactively creates a project in one of the three creation
// modes and makes it current.
func (a *App) NewProject(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}

	mode, err := getSimpleText(a.reader, "Creation mode (idea/outline/description)", os.Stdout)
	if err != nil {
		return err
	}

	req := api.CreateProjectRequest{Title: title, CreationMode: models.CreationMode(mode)}

	switch models.CreationMode(mode) {
	case models.ModeIdea:
		req.Idea, err = getSimpleText(a.reader, "Describe the idea", os.Stdout)
	case models.ModeOutline:
		var text string
		text, err = GetMultiline(a.reader, "Enter the outline, one page per line", os.Stdout)
		if text != "" {
			req.Outline = strings.Split(text, "\n")
		}
	case models.ModeDescription:
		req.Description, err = GetMultiline(a.reader, "Enter the full description", os.Stdout)
	default:
		return fmt.Errorf("unknown creation mode %q", mode)
	}
	if err != nil {
		return err
	}

	p, err := a.store.Create(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("Created project %s\n", p.ID)
	return nil
}

// Open loads a project by id and makes it current. With no argument it
// reopens the last-open project.
func (a *App) Open(ctx context.Context, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}

	p, err := a.store.Sync(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("Opened %s (%s, %d pages)\n", p.Title, p.Status, len(p.Pages))
	return nil
}

// Sync refetches the current project from the server.
func (a *App) Sync(ctx context.Context) error {
	p, err := a.store.Sync(ctx, "")
	if err != nil {
		return err
	}
	fmt.Printf("Synced %s (%s)\n", p.Title, p.Status)
	return nil
}

// Show prints the current project and its pages.
func (a *App) Show(ctx context.Context) error {
	p := a.store.Current()
	if p == nil {
		fmt.Println("No project open. Use: open <id>")
		return nil
	}

	fmt.Printf("%s  %s  [%s]\n", p.ID, p.Title, p.Status)
	if p.TemplateID != "" {
		fmt.Printf("Template: %s\n", p.TemplateID)
	}
	for _, pg := range p.Pages {
		marks := ""
		if pg.HasDescription() {
			marks += "D"
		}
		if pg.ImageURL != "" {
			marks += "I"
		}
		if a.store.PageGenerating(pg.ID) {
			marks += "*"
		}
		fmt.Printf("  %2d. %s  %-40s %s\n", pg.OrderIndex+1, pg.ID, pg.Outline, marks)
	}
	return nil
}

// EditPage edits a page's outline locally. The change is not sent to the
// server until savepage.
func (a *App) EditPage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: editpage <page id>")
		return nil
	}
	pageID := args[0]

	outline, err := getSimpleText(a.reader, "New outline", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.store.UpdatePageLocal(pageID, models.PagePatch{Outline: &outline}); err != nil {
		return err
	}

	fmt.Println("Page updated locally. Use savepage to push it to the server.")
	return nil
}

// SavePage pushes a locally edited page to the server.
func (a *App) SavePage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: savepage <page id>")
		return nil
	}

	if err := a.store.SavePage(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Page saved.")
	return nil
}

// AddPage appends a new page to the current project.
func (a *App) AddPage(ctx context.Context) error {
	outline, err := getSimpleText(a.reader, "Outline for the new page", os.Stdout)
	if err != nil {
		return err
	}

	page, err := a.store.AddPage(ctx, api.PageRequest{Outline: outline})
	if err != nil {
		return err
	}

	fmt.Printf("Added page %s\n", page.ID)
	return nil
}

// DeletePage removes a page from the current project.
func (a *App) DeletePage(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: delpage <page id>")
		return nil
	}

	if err := a.store.DeletePage(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Page deleted.")
	return nil
}

// Delete removes one of the user's projects on the server. Deleting the
// currently open project also closes it locally.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: delete <project id>")
		return nil
	}
	projectID := args[0]

	if err := a.client.DeleteProject(ctx, projectID); err != nil {
		return err
	}
	if a.store.CurrentID() == projectID {
		a.store.Close()
	}

	fmt.Println("Project deleted.")
	return nil
}

// SetTemplate switches the current project's presentation template.
func (a *App) SetTemplate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: template <template id>")
		return nil
	}

	if err := a.store.SetTemplate(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Template set.")
	return nil
}

// Rename changes the current project's title.
func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: rename <new title>")
		return nil
	}

	if err := a.store.Rename(ctx, strings.Join(args, " ")); err != nil {
		return err
	}

	fmt.Println("Project renamed.")
	return nil
}
