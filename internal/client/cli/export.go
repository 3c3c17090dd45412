package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/deckpilot/deckpilot/internal/client/api"
	"github.com/deckpilot/deckpilot/internal/client/tasks"
	"github.com/deckpilot/deckpilot/internal/common"
	"github.com/deckpilot/deckpilot/internal/filex"
	"github.com/deckpilot/deckpilot/internal/urlx"
)

const downloadsDir = "downloads"

// download fetches a server-issued URL into the downloads directory.
func (a *App) download(ctx context.Context, downloadURL, filename string) (string, error) {
	dir, err := filex.EnsureSubDir(downloadsDir)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = filepath.Base(downloadURL)
	}

	dest := filepath.Join(dir, filename)
	if _, err := os.Stat(dest); err == nil {
		// Never overwrite an earlier download.
		ext := filepath.Ext(filename)
		base := strings.TrimSuffix(filename, ext)
		dest = filepath.Join(dir, base+"-"+uuid.NewString()[:8]+ext)
	}
	full := urlx.Resolve(a.client.BaseURL(), downloadURL)
	if err := urlx.Download(ctx, full, a.session.Token(), dest); err != nil {
		return "", err
	}
	return dest, nil
}

// Export renders the current project synchronously and downloads the file.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: export pptx|pdf")
		return nil
	}

	projectID := a.store.CurrentID()
	if projectID == "" {
		return common.ErrNoCurrentProject
	}

	var (
		res *api.ExportResult
		err error
	)
	switch args[0] {
	case "pptx":
		res, err = a.client.ExportPPTX(ctx, projectID)
	case "pdf":
		res, err = a.client.ExportPDF(ctx, projectID)
	default:
		fmt.Println("Usage: export pptx|pdf")
		return nil
	}
	if err != nil {
		return err
	}

	dest, err := a.download(ctx, res.DownloadURL, res.Filename)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", dest)
	return nil
}

// EditableExport starts the editable-PPTX export task, waits for it and
// downloads the produced file.
func (a *App) EditableExport(ctx context.Context) error {
	projectID := a.store.CurrentID()
	if projectID == "" {
		return common.ErrNoCurrentProject
	}

	taskID, err := a.client.StartEditableExport(ctx, projectID)
	if err != nil {
		return err
	}

	poller := tasks.New(taskID, tasks.KindEditableExport,
		a.client.EditableExportFetcher(projectID, taskID),
		tasks.WithInterval(a.config.PollInterval),
		tasks.WithMaxAttempts(a.config.PollMaxAttempts),
		tasks.WithOnUpdate(printTaskProgress),
	)

	fmt.Println("Exporting editable PPTX...")
	return a.awaitDownload(ctx, tasks.SlotEditableExport, poller)
}

// Convert uploads a local PDF, waits for the PDF-to-PPTX conversion and
// downloads the produced file.
func (a *App) Convert(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: convert <pdf path>")
		return nil
	}
	path := args[0]

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	taskID, err := a.client.StartPDFConversion(ctx, filepath.Base(path), f, "")
	if err != nil {
		return err
	}

	poller := tasks.New(taskID, tasks.KindPDFConversion,
		a.client.PDFConversionFetcher(taskID),
		tasks.WithInterval(a.config.PollInterval),
		tasks.WithMaxAttempts(a.config.PollMaxAttempts),
		tasks.WithOnUpdate(printTaskProgress),
	)

	fmt.Println("Converting...")
	return a.awaitDownload(ctx, tasks.SlotPDFConversion, poller)
}

// awaitDownload tracks the poller to a terminal state and downloads the
// artifact the terminal snapshot points at.
func (a *App) awaitDownload(ctx context.Context, slot tasks.Slot, poller *tasks.Poller) error {
	res := <-a.tracker.Track(ctx, slot, poller)

	if res.Err != nil {
		if errors.Is(res.Err, common.ErrStillProcessing) {
			fmt.Println("The server is still working on it; try again later.")
			return nil
		}
		return res.Err
	}

	if res.Snapshot == nil || res.Snapshot.DownloadURL == "" {
		return fmt.Errorf("task finished but no download link was returned")
	}

	dest, err := a.download(ctx, res.Snapshot.DownloadURL, "")
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", dest)
	return nil
}
