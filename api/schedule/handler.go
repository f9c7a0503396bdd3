// Package schedule exposes the scheduling engine over HTTP.
package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wardplan/wardplan/core/logger"
	"github.com/wardplan/wardplan/core/roster"
)

// NewHandler returns an HTTP handler serving POST /schedule. The response is
// always JSON: a schedule under "s", or an "error" message. An infeasible
// model is a 200 with an error message, matching what roster clients expect;
// only malformed requests and pipeline failures map to error statuses.
func NewHandler(engine *roster.Engine, log logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req roster.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		req.ApplyDefaults()

		result, err := engine.Schedule(r.Context(), req)
		if err != nil {
			status := http.StatusInternalServerError
			var rangeErr *roster.InvalidRangeError
			if errors.As(err, &rangeErr) {
				status = http.StatusBadRequest
			}
			log.Errorf("schedule request failed: %v", err)
			writeError(w, status, err.Error())
			return
		}

		log.Infof("request %s: %s, %d entries", result.RequestID, result.Status, len(result.Entries))
		writeJSON(w, http.StatusOK, result.Response())
	})
}

func writeJSON(w http.ResponseWriter, status int, body roster.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, roster.Response{Error: msg})
}
