// Package export renders world state to developer-facing artifacts: a
// JSON dump of the map and entities, and an SVG floor plan. These are
// debugging and balancing tools, not the player-facing renderer — the SVG
// shows the whole floor regardless of what the player has revealed.
package export
