// Package websocket pushes game updates to browser clients.
//
// A Hub keeps the clients of each session and fans out one JSON Message per
// interaction: the new engine snapshot plus the render events (theme,
// redraw, highlights, tooltips, damage) the engine emitted. Clients pick
// their session with a query parameter (?session=abc123) and act through
// the REST API; incoming frames are only read to keep the connection alive.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(id, result.GameState, result.Events)
//
// Clients whose send buffer fills up are dropped.
package websocket
