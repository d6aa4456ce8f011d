package app

import (
	"fmt"
	"net/http"
	"sync"
)

// watchState holds the last good effective configuration published by watch
// mode, shared between the reload loop and the HTTP server.
type watchState struct {
	mu      sync.RWMutex
	current []byte
}

func newWatchState() *watchState {
	return &watchState{}
}

func (s *watchState) publish(encoded []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = encoded
}

func (s *watchState) snapshot() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// healthHandler reports liveness of the watch process.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// configMux builds the watch-mode HTTP routes over the shared state.
func (a *App) configMux(state *watchState) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/config", func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debug("Config endpoint hit.", "remote_addr", r.RemoteAddr)
		current := state.snapshot()
		if current == nil {
			http.Error(w, "no configuration resolved yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(current)
	})
	return mux
}

// startConfigServer runs the HTTP server exposing the current effective
// configuration during watch mode.
func (a *App) startConfigServer(port int, state *watchState) {
	a.logger.Debug("Configuring watch HTTP server.")
	mux := a.configMux(state)
	addr := fmt.Sprintf(":%d", port)

	go func() {
		a.logger.Info("Watch HTTP server starting.", "address", fmt.Sprintf("http://localhost%s/config", addr))
		if err := http.ListenAndServe(addr, mux); err != nil {
			a.logger.Error("Watch HTTP server failed.", "error", err)
		}
	}()
}
