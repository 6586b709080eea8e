package filter

// Options is the bitmask controlling Build (§6 "Options bitmap").
type Options uint32

const (
	// NoRewrite skips the Group Merger and Rewriter (§4.4-§4.5); the
	// FilterInfo keeps whatever groups the Builder produced verbatim.
	NoRewrite Options = 1 << iota
	// NeedUnique interns value and unit fields for byte-exact dedup
	// instead of appending duplicates.
	NeedUnique
	// Timestamp enables rangectx's adjacency fuse in Finish for
	// TIMESTAMP-typed columns.
	Timestamp
)

func (o Options) has(bit Options) bool { return o&bit != 0 }

// Status mirrors FilterInfo's ALL/EMPTY/REWRITE-NEEDED bitmap (§3).
type Status uint32

const (
	StatusAll Status = 1 << iota
	StatusEmpty
	StatusRewriteNeeded
)
