// Package labeling assigns a fine-grained label to every segment.
//
// Labels come from the segment type, the broadcast role map and a
// turn-level interaction statistic computed here. That statistic collapses
// repeated dominant speakers into turns and only looks at the immediately
// neighboring turn, so it intentionally differs from the windowed count the
// roles package uses to pick a guest.
package labeling
