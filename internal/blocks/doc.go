// Package blocks groups consecutive segments into coarse program blocks.
//
// Runs of same-typed segments are accumulated by a two-state machine
// (no open run, or a run open with type T). Silence closes the open run and
// belongs to no block. Each closed run gets a block type from its music share
// and the roles of its speakers, and adjacent blocks of equal type are merged
// until no neighbors share a type.
package blocks
