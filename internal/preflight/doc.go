// Package preflight provides readiness checks for the filesystem paths that
// radiotimeline depends on.
//
// These checks run in two contexts:
//   - The range command calls RunAll before processing any day. If a check
//     fails, the range stops before touching any broadcast.
//   - The CLI "check" command renders every result as a status table.
package preflight
