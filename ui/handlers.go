package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/battyone/beyond-correlation/adapters/excel"
	"github.com/battyone/beyond-correlation/app"
	"github.com/battyone/beyond-correlation/domain/core"
	"github.com/battyone/beyond-correlation/domain/frame"
	"github.com/battyone/beyond-correlation/domain/relate"
	apperrors "github.com/battyone/beyond-correlation/internal/errors"
)

// maxUploadSize caps dataset uploads at 50MB
const maxUploadSize = 50 * 1024 * 1024

// handleHealth reports service liveness
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDiscover runs discovery on an uploaded dataset and returns the run as JSON
func (a *App) handleDiscover(w http.ResponseWriter, r *http.Request) {
	run, _, ok := a.runDiscovery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleDiscoverReport runs discovery and returns an HTML report
func (a *App) handleDiscoverReport(w http.ResponseWriter, r *http.Request) {
	run, f, ok := a.runDiscovery(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(a.service.ReportHTML(run, f))
}

// runDiscovery parses the upload and request parameters, ingests the dataset
// and executes a discovery run. On failure it writes the error response and
// returns ok=false.
func (a *App) runDiscovery(w http.ResponseWriter, r *http.Request) (run *relate.Run, f *frame.Frame, ok bool) {
	req, f, err := a.parseDiscoverRequest(r)
	if err != nil {
		log.Printf("[handleDiscover] FAILED - bad request: %v", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}

	result, err := a.service.Discover(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if isBadRequest(err) {
			status = http.StatusBadRequest
		}
		log.Printf("[handleDiscover] FAILED - discovery error: %v", err)
		writeError(w, status, err.Error())
		return nil, nil, false
	}
	return result, f, true
}

// isBadRequest classifies caller mistakes vs internal failures
func isBadRequest(err error) bool {
	if errors.Is(err, core.ErrUnknownMethod) || errors.Is(err, core.ErrEmptyFrame) {
		return true
	}
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeValidationError:
		return true
	}
	return false
}

// parseDiscoverRequest reads the multipart upload and the discovery parameters
func (a *App) parseDiscoverRequest(r *http.Request) (app.DiscoverRequest, *frame.Frame, error) {
	var req app.DiscoverRequest

	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return req, nil, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return req, nil, fmt.Errorf("no dataset file uploaded")
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".csv" && ext != ".xlsx" {
		return req, nil, fmt.Errorf("only .xlsx and .csv files are supported")
	}

	// excelize needs a seekable file on disk
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return req, nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		return req, nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	tmp.Close()

	f, err := excel.NewDataReader(tmp.Name()).ReadFrame()
	if err != nil {
		return req, nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	req.Source = header.Filename
	req.Frame = f
	req.Method = formValueOrDefault(r, "method", "rf")
	req.IncludeNAInfo = parseBool(r.FormValue("include_na_information"))
	req.Persist = parseBool(r.FormValue("persist"))

	if overrides := strings.TrimSpace(r.FormValue("classifier_overrides")); overrides != "" {
		for _, name := range strings.Split(overrides, ",") {
			if name = strings.TrimSpace(name); name != "" {
				req.ClassifierOverrides = append(req.ClassifierOverrides, name)
			}
		}
	}
	if s := strings.TrimSpace(r.FormValue("seed")); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return req, nil, fmt.Errorf("invalid seed: %q", s)
		}
		req.Seed = &seed
	}
	if s := strings.TrimSpace(r.FormValue("workers")); s != "" {
		workers, err := strconv.Atoi(s)
		if err != nil || workers < 1 {
			return req, nil, fmt.Errorf("invalid workers: %q", s)
		}
		req.Workers = workers
	}

	return req, f, nil
}

// handleGetRun loads one persisted run
func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := a.service.GetRun(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsNotFoundError(err) {
			status = http.StatusNotFound
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// handleListRuns lists persisted runs with limit/offset pagination
func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	runs, err := a.service.ListRuns(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"count": len(runs),
	})
}

func formValueOrDefault(r *http.Request, key, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(key)); v != "" {
		return v
	}
	return fallback
}

func parseBool(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
