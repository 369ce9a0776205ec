// Package api provides the HTTP REST API of the tactics server.
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "classic"})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get a session
//   - DELETE /api/sessions/{id} - Delete a session and its save slots
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Current snapshot
//   - POST /api/sessions/{id}/click - Click a cell ({"index": 9})
//   - POST /api/sessions/{id}/hover - Hover a cell ({"index": 9})
//   - POST /api/sessions/{id}/leave - Leave a cell ({"index": 9})
//   - POST /api/sessions/{id}/ack - Acknowledge a damage animation
//   - POST /api/sessions/{id}/cancel - Clear the selection and reset the run
//   - POST /api/sessions/{id}/new-game - Start over ({"level": 1})
//   - POST /api/sessions/{id}/save - Save to a slot ({"slot": "default"})
//   - POST /api/sessions/{id}/load - Load from a slot
//
// Configuration:
//   - GET /api/configs - List rule sets
//   - GET /api/configs/{name} - Get a rule set
//
// Other:
//   - GET /health
//   - GET /ws?session={id} - WebSocket push of snapshots and render events
//
// Rejected moves are not HTTP errors: they answer 200 with success=false and
// the user-facing message. Unknown sessions answer 404, malformed indices
// 400, and actions attempted while a damage animation awaits its
// acknowledgement 409.
package api
