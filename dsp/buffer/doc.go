// Package buffer provides a multi-channel float32 block type and pool for
// allocation-free audio rendering. Renderers write additively into
// [Block] channels; callers own clearing between blocks.
package buffer
