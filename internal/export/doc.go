// Package export renders sampled curves to image files: a hand-built SVG
// path writer and raster/vector plots through gonum/plot.
package export
