package handlers

import (
	"io"
	"net/http"

	"translationportal/internal/analysis"
	"translationportal/internal/pricing"
)

// maxUploadBytes bounds document uploads at 50 MiB.
const maxUploadBytes = 50 << 20

// FilesUpload analyzes an uploaded document and returns its size-derived
// statistics plus a quote per workflow tier. The file itself is not stored;
// orders carry the statistics instead.
func (a *App) FilesUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusRequestEntityTooLarge, "too_large", "upload exceeds the 50 MiB limit")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upload read failed")
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read upload")
		return
	}
	if len(data) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "uploaded file is empty")
		return
	}

	result, err := analysis.Analyze(header.Filename, data)
	if err != nil {
		a.error(w, http.StatusBadRequest, "unsupported_format", err.Error())
		return
	}

	quotes := map[string]pricing.Quote{}
	for _, tier := range []pricing.Workflow{pricing.WorkflowTier1, pricing.WorkflowTier2, pricing.WorkflowTier3} {
		quotes[string(tier)] = pricing.Estimate(result.CharCount, 1, tier)
	}

	a.json(w, http.StatusOK, map[string]any{
		"analysis":            result,
		"quotes_per_language": quotes,
	})
}
