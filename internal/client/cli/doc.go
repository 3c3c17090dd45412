// Package cli provides the interactive DeckPilot command-line client.
//
// It wires configuration, local state storage, the REST API client and an
// interactive REPL. Typical flow: prompt for credentials, then execute user
// commands against the currently open project.
//
// Key features:
//   - Login / Logout, forced password change and phone verification gates
//   - Project lifecycle: create, open, sync, edit pages, save
//   - Generation pipeline: outline, descriptions, images, per-page redo
//   - Exports: PPTX, PDF, editable PPTX, and PDF-to-PPTX conversion
//   - Materials, templates, reference files, notifications
//   - Back-office commands for administrator accounts
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
