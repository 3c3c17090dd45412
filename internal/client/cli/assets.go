package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Materials manages the user's uploaded source materials.
//
//	materials            — list
//	materials upload <p> — upload a local file
//	materials delete <i> — delete by id
func (a *App) Materials(ctx context.Context, args []string) error {
	if len(args) == 0 {
		items, err := a.client.ListMaterials(ctx)
		if err != nil {
			return err
		}
		for _, m := range items {
			fmt.Printf("%s  %-30s  %s\n", m.ID, m.Filename, m.ParseStatus)
		}
		return nil
	}

	switch args[0] {
	case "upload":
		if len(args) < 2 {
			fmt.Println("Usage: materials upload <path>")
			return nil
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		m, err := a.client.UploadMaterial(ctx, filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s)\n", m.Filename, m.ID)

	case "delete":
		if len(args) < 2 {
			fmt.Println("Usage: materials delete <id>")
			return nil
		}
		if err := a.client.DeleteMaterial(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Deleted.")

	default:
		fmt.Println("Usage: materials [upload <path> | delete <id>]")
	}
	return nil
}

// Templates manages the user's presentation templates.
func (a *App) Templates(ctx context.Context, args []string) error {
	if len(args) == 0 {
		items, err := a.client.ListTemplates(ctx)
		if err != nil {
			return err
		}
		for _, t := range items {
			fmt.Printf("%s  %s\n", t.ID, t.Name)
		}
		return nil
	}

	switch args[0] {
	case "upload":
		if len(args) < 3 {
			fmt.Println("Usage: templates upload <name> <path>")
			return nil
		}
		f, err := os.Open(args[2])
		if err != nil {
			return err
		}
		defer f.Close()

		t, err := a.client.UploadTemplate(ctx, args[1], filepath.Base(args[2]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded template %s (%s)\n", t.Name, t.ID)

	case "delete":
		if len(args) < 2 {
			fmt.Println("Usage: templates delete <id>")
			return nil
		}
		if err := a.client.DeleteTemplate(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Deleted.")

	default:
		fmt.Println("Usage: templates [upload <name> <path> | delete <id>]")
	}
	return nil
}

// RefFiles manages the current project's reference files.
func (a *App) RefFiles(ctx context.Context, args []string) error {
	projectID := a.store.CurrentID()
	if projectID == "" {
		fmt.Println("No project open. Use: open <id>")
		return nil
	}

	if len(args) == 0 {
		items, err := a.client.ListReferenceFiles(ctx, projectID)
		if err != nil {
			return err
		}
		for _, r := range items {
			fmt.Printf("%s  %-30s  %s\n", r.ID, r.Filename, r.ParseStatus)
		}
		return nil
	}

	switch args[0] {
	case "upload":
		if len(args) < 2 {
			fmt.Println("Usage: reffiles upload <path>")
			return nil
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		r, err := a.client.UploadReferenceFile(ctx, projectID, filepath.Base(args[1]), f)
		if err != nil {
			return err
		}
		fmt.Printf("Uploaded %s (%s)\n", r.Filename, r.ID)

	case "delete":
		if len(args) < 2 {
			fmt.Println("Usage: reffiles delete <id>")
			return nil
		}
		if err := a.client.DeleteReferenceFile(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("Deleted.")

	default:
		fmt.Println("Usage: reffiles [upload <path> | delete <id>]")
	}
	return nil
}
