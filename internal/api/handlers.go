package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/revopsstack/revleak/internal/ingest"
	"github.com/revopsstack/revleak/internal/models"
	"github.com/revopsstack/revleak/internal/services"
)

const maxUploadRecords = 10000

// Handler holds all HTTP handler dependencies.
type Handler struct {
	svc *services.LeakService
	mux *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(svc *services.LeakService) http.Handler {
	h := &Handler{svc: svc, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/records", h.uploadRecords)
	h.mux.HandleFunc("POST /v1/records/csv", h.uploadCSV)
	h.mux.HandleFunc("GET /v1/records", h.listRecords)
	h.mux.HandleFunc("POST /v1/demo/load", h.loadDemo)
	h.mux.HandleFunc("POST /v1/demo/reset", h.resetDemo)

	h.mux.HandleFunc("POST /v1/scan", h.runScan)
	h.mux.HandleFunc("GET /v1/issues", h.listIssues)
	h.mux.HandleFunc("GET /v1/incident", h.getIncident)
	h.mux.HandleFunc("GET /v1/reliability", h.getReliability)
	h.mux.HandleFunc("GET /v1/slos", h.listSLOs)

	h.mux.HandleFunc("GET /v1/timeline", h.getTimeline)
	h.mux.HandleFunc("POST /v1/timeline/note", h.addNote)
	h.mux.HandleFunc("GET /v1/audit", h.getAudit)

	h.mux.HandleFunc("POST /v1/fixes/{issue_id}/generate", h.generateFix)
	h.mux.HandleFunc("POST /v1/fixes/{issue_id}/preview", h.previewFix)
	h.mux.HandleFunc("POST /v1/fixes/{issue_id}/apply", h.applyFix)

	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// POST /v1/records — replace the working record set with a JSON array.
func (h *Handler) uploadRecords(w http.ResponseWriter, r *http.Request) {
	var records []models.FunnelRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if len(records) > maxUploadRecords {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("record count %d exceeds max %d", len(records), maxUploadRecords))
		return
	}
	for _, rec := range records {
		if rec.ID == "" {
			writeError(w, http.StatusBadRequest, "every record requires an id")
			return
		}
	}

	h.svc.LoadRecords(records)
	writeJSON(w, http.StatusOK, map[string]interface{}{"loaded": len(records)})
}

// POST /v1/records/csv — replace the working record set from a CSV body.
func (h *Handler) uploadCSV(w http.ResponseWriter, r *http.Request) {
	records, err := ingest.ParseCSV(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(records) > maxUploadRecords {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("record count %d exceeds max %d", len(records), maxUploadRecords))
		return
	}

	h.svc.LoadRecords(records)
	writeJSON(w, http.StatusOK, map[string]interface{}{"loaded": len(records)})
}

// GET /v1/records — current record set.
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records := h.svc.Records()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// POST /v1/demo/load — seed the store with the demo data set.
func (h *Handler) loadDemo(w http.ResponseWriter, r *http.Request) {
	count := h.svc.LoadSampleData()
	writeJSON(w, http.StatusOK, map[string]interface{}{"loaded": count})
}

// POST /v1/demo/reset — reload demo data and clear incident state.
func (h *Handler) resetDemo(w http.ResponseWriter, r *http.Request) {
	h.svc.Reset()
	count := h.svc.LoadSampleData()
	writeJSON(w, http.StatusOK, map[string]interface{}{"reset": true, "loaded": count})
}

// POST /v1/scan — run one full detection loop.
func (h *Handler) runScan(w http.ResponseWriter, r *http.Request) {
	result := h.svc.Scan()
	writeJSON(w, http.StatusOK, result)
}

// GET /v1/issues — issues from the latest scan.
func (h *Handler) listIssues(w http.ResponseWriter, r *http.Request) {
	result, ok := h.svc.LastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no scan has been run yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count":  len(result.Issues),
		"issues": result.Issues,
	})
}

// GET /v1/incident — incident summary from the latest scan.
func (h *Handler) getIncident(w http.ResponseWriter, r *http.Request) {
	result, ok := h.svc.LastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no scan has been run yet")
		return
	}
	writeJSON(w, http.StatusOK, result.Incident)
}

// GET /v1/reliability — burn rate and paging state from the latest scan.
func (h *Handler) getReliability(w http.ResponseWriter, r *http.Request) {
	result, ok := h.svc.LastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no scan has been run yet")
		return
	}
	writeJSON(w, http.StatusOK, result.Reliability)
}

// GET /v1/slos — per-SLO attainment from the latest scan.
func (h *Handler) listSLOs(w http.ResponseWriter, r *http.Request) {
	result, ok := h.svc.LastResult()
	if !ok {
		writeError(w, http.StatusNotFound, "no scan has been run yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"slos": result.SLOs})
}

// GET /v1/timeline — incident timeline, newest first.
func (h *Handler) getTimeline(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": h.svc.Timeline()})
}

// POST /v1/timeline/note — append a manual note to the timeline.
func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if strings.TrimSpace(body.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	event := h.svc.AddNote(body.Message)
	writeJSON(w, http.StatusOK, event)
}

// GET /v1/audit — audit trail, newest first.
func (h *Handler) getAudit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": h.svc.AuditTrail()})
}

// POST /v1/fixes/{issue_id}/generate — build a fix pack for one issue.
func (h *Handler) generateFix(w http.ResponseWriter, r *http.Request) {
	pack, err := h.svc.GenerateFix(r.PathValue("issue_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, pack)
}

// POST /v1/fixes/{issue_id}/preview — dry-run the fix pack's workflow.
func (h *Handler) previewFix(w http.ResponseWriter, r *http.Request) {
	pack, logs, err := h.svc.PreviewFix(r.PathValue("issue_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fix_pack": pack,
		"logs":     logs,
	})
}

// POST /v1/fixes/{issue_id}/apply — apply the fix and rescan.
func (h *Handler) applyFix(w http.ResponseWriter, r *http.Request) {
	result, scan, err := h.svc.ApplyFix(r.Context(), r.PathValue("issue_id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"fix_result": result,
		"scan":       scan,
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 until records have been loaded.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	count := len(h.svc.Records())
	if count == 0 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":       "no records loaded",
			"record_count": 0,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"record_count": count,
	})
}
