package server

import (
	"encoding/json"
	"log"
	"math"
	"net/http"
	"runtime"
)

const homeText = "YouTube Transcript Bot is running.\n"

// HomeHandler tells the hosting platform the process is alive
func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(homeText)); err != nil {
		log.Printf("Failed to write response to %q: %v", r.URL.Path, err)
	}
}

// Redis and server health status
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {

	data := map[string]any{
		"status":        "ok",
		"server_status": getServerStats(),
	}

	if s.rdb != nil {
		data["redis_status"] = s.rdb.Health(r.Context())
	}

	writeJSON(w, r, data)
}

// writeJSON converts the data into JSON-formatted string
// and writes the output to response
func writeJSON(w http.ResponseWriter, r *http.Request, data any) {

	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to encode JSON response on URI '%s': %v", r.RequestURI, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(jsonData); err != nil {
		// Too late for recovery here, just log the error
		log.Printf("Failed to write JSON to response on URI '%s': %v", r.RequestURI, err)
	}
}

func bToMib(bytes uint64) float64 {
	mib := float64(bytes) / (1024 * 1024)
	return math.Round(mib*100) / 100
}

// Get basic server stats
func getServerStats() map[string]any {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]any{
		"num_goroutine": runtime.NumGoroutine(),
		"num_gc":        m.NumGC,
		"mem_alloc_MB":  bToMib(m.Alloc),
		"mem_sys_MB":    bToMib(m.Sys),
	}
}
