package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// webServer creates the HTTP server serving the viewer page from ./static
// along with the websocket endpoint the viewer streams frames from.
func webServer(port int, h *hub, ctrl *controller) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(h, ctrl))
	mux.Handle("/", http.FileServer(http.Dir("./static")))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("viewer on http://localhost:%d", port)
	return srv
}

// websocketHandler upgrades the http connection and hands it to the hub,
// which owns it for the rest of its life.
func websocketHandler(h *hub, ctrl *controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		h.serve(r.Context(), c, ctrl)
	}
}
