// Package overview builds the code overview: a compressed, clickable proxy of
// a source file with one row per group of lines.
//
// The pieces run in this order:
//
//   - GenerateLineShapes summarizes every source line for glyph drawing.
//   - Aggregate splits the shapes into exactly as many row groups as fit.
//   - Paint turns each group into a Row, preferring a linter severity
//     indicator over the shape glyph.
//   - Sizer owns the measured height and re-measures once a resize settles.
//
// Everything except Sizer is a pure function of its inputs and is recomputed
// on every render.
package overview
