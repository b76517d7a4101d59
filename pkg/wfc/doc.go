// Package wfc implements a grid constraint-collapse generator: pick the
// lowest-entropy cell, weight-sample one of its remaining modules, propagate
// the resulting adjacency constraints outward, and backtrack through a
// snapshot stack on contradiction.
package wfc
