// Package stroker converts stroked vector paths into filled outlines.
//
// # Overview
//
// stroker is a pure Go path stroking library for the GoGPU ecosystem.
// Given a path made of line, cubic Bezier and conic (rational
// quadratic) segments plus a stroke style, it produces the closed
// outline of the region a pen of that width would paint. The outline
// is ordinary path geometry, ready for any fill rasterizer.
//
// # Quick Start
//
//	import "github.com/gogpu/stroker"
//
//	path := stroker.BuildPath().
//		MoveTo(10, 10).
//		LineTo(90, 10).
//		LineTo(90, 90).
//		Build()
//
//	style := stroker.DefaultStroke().WithWidth(6).WithJoin(stroker.LineJoinRound)
//	outline := stroker.Stroked(path, style)
//
// # Algorithm
//
// The stroker is a streaming transformer. Curves too curved for a
// faithful single-piece parallel are subdivided at curvature extrema,
// then each piece is offset to both sides of the path. Joins are
// synthesized on the outer side of every corner; on the inner side the
// two offsets are trimmed at their intersection so the outline does
// not fold over itself. Open contours are finished with caps and
// emitted as one closed ring; closed contours produce two rings, one
// per side.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Logging
//
// The package is silent by default. Call [SetLogger] with a
// *slog.Logger to receive diagnostics, e.g. warnings about skipped
// non-finite input primitives.
package stroker
