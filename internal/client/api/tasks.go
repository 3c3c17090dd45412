package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/deckpilot/deckpilot/internal/client/tasks"
)

// taskStatusResponse is the wire shape shared by the three status endpoint
// families. Progress stays raw until the kind-specific decoder runs.
type taskStatusResponse struct {
	TaskID       string          `json:"task_id"`
	Status       string          `json:"status"`
	Progress     json.RawMessage `json:"progress,omitempty"`
	DownloadURL  string          `json:"download_url,omitempty"`
	Error        string          `json:"error,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
}

func (r *taskStatusResponse) snapshot(kind tasks.Kind) (*tasks.Snapshot, error) {
	progress, err := tasks.DecodeProgress(kind, r.Progress)
	if err != nil {
		return nil, err
	}
	msg := r.ErrorMessage
	if msg == "" {
		msg = r.Error
	}
	return &tasks.Snapshot{
		TaskID:       r.TaskID,
		Kind:         kind,
		Status:       tasks.ParseStatus(r.Status),
		Progress:     progress,
		DownloadURL:  r.DownloadURL,
		ErrorMessage: msg,
	}, nil
}

func (c *HTTPClient) taskStatus(ctx context.Context, path string, kind tasks.Kind) (*tasks.Snapshot, error) {
	var out taskStatusResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.snapshot(kind)
}

// ProjectTaskStatus fetches the state of a project-scoped generation task.
// The project task endpoint serves both image and description batches; the
// caller says which kind it started so the snapshot is labeled correctly.
func (c *HTTPClient) ProjectTaskStatus(ctx context.Context, projectID, taskID string, kind tasks.Kind) (*tasks.Snapshot, error) {
	return c.taskStatus(ctx, "/api/projects/"+projectID+"/tasks/"+taskID, kind)
}

// PDFConversionStatus fetches the state of a PDF-to-PPTX conversion task.
func (c *HTTPClient) PDFConversionStatus(ctx context.Context, taskID string) (*tasks.Snapshot, error) {
	return c.taskStatus(ctx, "/api/tools/pdf-to-pptx/"+taskID, tasks.KindPDFConversion)
}

// EditableExportStatus fetches the state of an editable-PPTX export task.
func (c *HTTPClient) EditableExportStatus(ctx context.Context, projectID, taskID string) (*tasks.Snapshot, error) {
	return c.taskStatus(ctx, "/api/projects/"+projectID+"/export/editable-pptx/"+taskID, tasks.KindEditableExport)
}

// ProjectTaskFetcher binds ProjectTaskStatus into a poller fetch function.
func (c *HTTPClient) ProjectTaskFetcher(projectID, taskID string, kind tasks.Kind) tasks.FetchFunc {
	return func(ctx context.Context) (*tasks.Snapshot, error) {
		return c.ProjectTaskStatus(ctx, projectID, taskID, kind)
	}
}

// PDFConversionFetcher binds PDFConversionStatus into a poller fetch function.
func (c *HTTPClient) PDFConversionFetcher(taskID string) tasks.FetchFunc {
	return func(ctx context.Context) (*tasks.Snapshot, error) {
		return c.PDFConversionStatus(ctx, taskID)
	}
}

// EditableExportFetcher binds EditableExportStatus into a poller fetch function.
func (c *HTTPClient) EditableExportFetcher(projectID, taskID string) tasks.FetchFunc {
	return func(ctx context.Context) (*tasks.Snapshot, error) {
		return c.EditableExportStatus(ctx, projectID, taskID)
	}
}
