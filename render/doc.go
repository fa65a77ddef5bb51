// Package render is the Ebitengine-backed drawing layer: reusable offscreen
// render targets, Kage shader programs, and the composite passes the layer
// tree's wipes and effects draw through.
package render
