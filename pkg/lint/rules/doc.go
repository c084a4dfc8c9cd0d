// Package rules provides the built-in table checks for gotexlint.
//
// Each check inspects one table view (see texast.Tables) and, on failure,
// reports a fixed message:
//
//   - TEX001: table-environment - the node is a \begin{table} group (gate)
//   - TEX002: table-placement - the first argument contains [H]
//   - TEX003: table-centering - a center block is a direct child
//   - TEX004: table-caption - a \caption is a direct child
//
// TEX001 is a gate: when it fails no other check runs.
//
// # Rule Packs
//
// Packs are configuration presets: default, strict, and relaxed.
// Use PackByName or Packs to access pack definitions programmatically.
//
// # Registration
//
// Checks are registered with the default registry via RegisterAll when this
// package is imported.
package rules
