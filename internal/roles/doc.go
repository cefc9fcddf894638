// Package roles infers a broadcast-wide role for every diarized speaker.
//
// The speaker with the most attributed speech is the DJ. Every other speaker
// is ranked by how often its segment-level appearances fall within a small
// window of a DJ appearance; a clearly leading speaker becomes the GUEST and
// everyone else is an AD_SPEAKER. The result is an immutable timeline.RoleMap
// plus descriptive per-speaker statistics for the role table.
package roles
