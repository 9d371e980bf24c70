// Package core wires the roundboard components together.
//
// It loads the configuration, opens the blob store and builds the result
// store, the reconciler, the watcher and the site exporter from it.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - All persistence goes through a single store.BlobStore
//   - UI-specific logic belongs in the cli package, not here
//
// # Site Export
//
// [App.ExportSite] renders index.html from the catalog and every published
// post below the configured site directory. The returned file list is what
// has to be uploaded to the web server.
package core
