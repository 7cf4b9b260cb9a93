package handler

import "net/http"

// Health handles GET /healthz.
// Returns 200 with {"status":"ok"} when the server is running.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
