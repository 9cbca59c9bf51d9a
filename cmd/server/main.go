// Command server runs the Fun Euchre runtime: an HTTP+websocket server
// hosting lobbies and trick-taking Euchre games. Wiring mirrors the
// teacher's main.go: load config, assemble the runtime, start the
// background sweeper, then serve.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"funeuchre/internal/config"
	"funeuchre/internal/runtime"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[server] config: %v", err)
	}

	rt, err := runtime.New(cfg, func() int64 { return time.Now().UnixMilli() })
	if err != nil {
		log.Fatalf("[server] runtime init: %v", err)
	}
	rt.Start()
	defer rt.Stop()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("[server] listening on %s (persistence=%s, hand-history=%s)", addr, cfg.PersistenceMode, cfg.HandHistoryMode)
	if err := http.ListenAndServe(addr, withCORS(rt.Mux())); err != nil {
		log.Fatalf("[server] listen: %v", err)
	}
}

// withCORS mirrors main.go's permissive development CORS wrapper.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
