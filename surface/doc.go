// @focus: #sys { render }
// Package surface provides a composable tree of drawing targets sharing one terminal.
//
// Every node implements Surface. Composites forward writes to their parent after a
// coordinate transform, clipping, or text rewrite; the chain always ends at the single
// Backend wrapping the tcell screen.
//
//   - Plain: offset + optional bound + cell scale
//   - Border: frame drawn on Present, inner content inset by one cell
//   - Filter: ordered literal substring replacement
//
// Writes past a bounded surface are dropped silently. Only the Backend reports
// out-of-range coordinates, as a recoverable *Error.
package surface
