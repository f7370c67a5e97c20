// Package notes is the composition root for the notes client.
//
// It wires the notes store (pkg/store) to a remote Gateway and a local
// Storage chosen through functional options, in the same hexagonal layout
// as the rest of the module: contracts in pkg/core, adapters under
// pkg/adapters and pkg/gateway.
//
// Features:
//
//   - **Single source of truth**: one Store per session holds the notes,
//     the active filter and the loading/error lifecycle.
//   - **Write-through persistence**: notes and filter survive restarts in a
//     JSON/YAML file or an embedded BadgerDB.
//   - **Resilient sync**: the HTTP gateway degrades reads and creates to
//     local fallbacks when the API is unreachable.
//   - **Offline mode**: an in-memory gateway replaces the API entirely.
//
// Usage:
//
//	app, err := notes.New(ctx,
//		notes.WithAPIURL("http://localhost:3001"),
//		notes.WithLogger(logger),
//	)
//	defer app.Close()
//
//	err = app.Store.LoadAll(ctx, false)
//	for _, n := range app.Store.Filtered() { ... }
package notes
