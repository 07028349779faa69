// Package cli provides the interactive careerkit command-line client.
//
// It wires configuration, local session storage, the identity API client,
// the session store, the navigation reconciler and an interactive REPL. On
// start the persisted session is restored; until that finishes the client
// stays in the loading state and no page redirects happen.
//
// Key features:
//   - Register / Login / OAuth login / Logout
//   - Terms of service and privacy policy acceptance
//   - Page navigation guarded by the terms gate
//   - Resume upload and download links
//   - Online/offline indicator driven by a periodic ping
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
