// Package pool
// Author: momentics <momentics@gmail.com>
//
// High-performance IO and memory layer for the stagepipe library.
// Implements NUMA-aware, zero-copy byte buffer pooling and generic object pooling.
// All primitives are cross-platform (Linux/Windows) and designed for ultra-low-latency, high-throughput workloads.
// See bytepool.go, objpool.go, numapool.go for implementation details.
package pool
