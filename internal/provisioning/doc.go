// Package provisioning turns a pool of allocatable bare-metal nodes into
// running instances in one batch.
//
// # Pipeline
//
// The run proceeds leaf to root:
//  1. Selector queries the control plane for allocatable nodes.
//  2. Allocate makes a first-fit assignment of one node per requested slot.
//  3. Dispatch fans out provisioning workers under the parallelism cap.
//  4. Aggregate merges per-instance outcomes into a RunResult.
//
// Selection, allocation and aggregation are sequential; the dispatcher is the
// only parallel phase. Workers share no mutable state: each owns its
// Allocation and produces exactly one Outcome.
//
// # Core Types
//
// Allocation pairs a slot index and derived name with one node.
// Provisioner drives a single allocation through the
// PENDING → SUBMITTING → WAITING → {ACTIVE, FAILED, TIMED_OUT} lifecycle.
// RunResult accumulates the per-instance outcomes and overall counts.
package provisioning
