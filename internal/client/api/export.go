package api

import (
	"context"
	"io"
	"net/http"
)

// ExportResult is the response of a synchronous export call.
type ExportResult struct {
	Filename            string `json:"filename"`
	DownloadURL         string `json:"download_url"`
	DownloadURLAbsolute string `json:"download_url_absolute,omitempty"`
}

// ExportPPTX renders the project to PPTX and returns the download reference.
func (c *HTTPClient) ExportPPTX(ctx context.Context, projectID string) (*ExportResult, error) {
	var out ExportResult
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/export/pptx", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportPDF renders the project to PDF and returns the download reference.
func (c *HTTPClient) ExportPDF(ctx context.Context, projectID string) (*ExportResult, error) {
	var out ExportResult
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/export/pdf", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartEditableExport kicks off the editable-PPTX export task and returns
// the task id for polling.
func (c *HTTPClient) StartEditableExport(ctx context.Context, projectID string) (string, error) {
	var out startedTask
	if err := c.do(ctx, http.MethodPost, "/api/projects/"+projectID+"/export/editable-pptx", nil, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}

// StartPDFConversion uploads a PDF and starts the PDF-to-PPTX conversion
// task. outputName may be empty; the server derives one from the upload.
func (c *HTTPClient) StartPDFConversion(ctx context.Context, filename string, pdf io.Reader, outputName string) (string, error) {
	fields := map[string]string{}
	if outputName != "" {
		fields["filename"] = outputName
	}
	var out startedTask
	if err := c.upload(ctx, "/api/tools/pdf-to-pptx", fields, "file", filename, pdf, &out); err != nil {
		return "", err
	}
	return out.TaskID, nil
}
