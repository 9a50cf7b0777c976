// Package pfqcore implements the Lang Engine and MPDB Queue of a
// PFQ-style programmable packet pipeline: a small typed combinator
// language that validates and links a user-supplied computation graph,
// evaluates it once per packet, and a double-buffered, multi-producer
// single-consumer ring that delivers captured packets to a reader.
//
// Socket/device attachment, the group-membership table, the per-group
// symbol table, and memory-mapping mechanics at the OS boundary are
// external collaborators, represented here by the narrow interfaces in
// internal/interfaces. Engine ties the pieces together for a caller that
// owns those collaborators; internal/group and internal/symtab supply
// minimal in-memory reference implementations so the engine and its tests
// have something concrete to install against.
package pfqcore
