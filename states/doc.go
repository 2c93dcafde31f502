// Package states provides the concrete session states: option menus, a static
// map walker, and a scrolling map walker, plus the bordered frame helper used to
// size a map's surface.
package states
