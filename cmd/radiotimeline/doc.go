// Command radiotimeline classifies recorded radio broadcasts.
//
// For each broadcast date it reads the transcript segment table and the
// speaker diarization, infers DJ, guest and advert speakers, labels every
// segment and groups the timeline into MUSIC, DJ, GUEST and AD blocks. The
// results are written as CSV tables next to the inputs and stored in a local
// SQLite database for later inspection with "show".
package main
