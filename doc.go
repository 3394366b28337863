// Package segvec provides the segmented vector container used by
// factor-graph solvers to hold solution estimates and update directions.
//
// A Vector is a single flat float64 buffer logically partitioned into
// contiguous blocks, one block per optimization variable. Blocks may have
// different dimensions (2D points, 3D poses, ...). The boundary list
// delimiting the blocks is the only structural metadata; all numeric
// kernels (Dot, Axpy, Scal, Add) operate on the flat buffer directly.
//
// # Quick Start
//
//	// Two variables: a 2D point and a 3D pose.
//	v := segvec.New(2, 3)
//	b, _ := v.At(0)
//	b.Set([]float64{1, 2})
//
//	// Incremental assembly without reallocation.
//	var w segvec.Vector
//	w.Reserve(2, 5)
//	w.Append([]float64{1, 2})
//	w.Append([]float64{3, 4, 5})
//
//	// Solver kernels.
//	dot, _ := segvec.Dot(v, &w)
//	_ = segvec.Axpy(0.5, v, &w)
//
// # Ownership
//
// A Vector exclusively owns its storage. Block views returned by At and the
// iterator alias that storage; they are invalidated by Reserve and must be
// re-acquired afterwards. A Vector is owned by one goroutine at a time;
// concurrent access requires external synchronization.
package segvec
