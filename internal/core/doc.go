// Package core provides the business logic of the catalog admin panel.
//
// It sits between the HTTP layer and the remote catalog and can be used by
// web handlers, the CLI or tests without modification.
//
// # Architecture
//
//   - Sessions: every browser gets a [Session] holding its own [view.State].
//     Handlers for one session run one at a time.
//   - Service: the entry point for loading the catalog and for the create and
//     update workflows.
//   - Audit: optional record of every create/update attempt.
//
// # Mutation Workflows
//
// Create and update never patch the local list. They validate the form,
// call the remote catalog and, on success, reload the full list:
//
//  1. [Service.UpdateProduct] / [Service.CreateProduct] validate the [ProductForm]
//  2. The remote call is made outside the session lock
//  3. An [AuditEntry] is recorded whatever the outcome
//  4. [Service.Reload] replaces the session's full set
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - NET001-NET004: Remote catalog failures
//   - EXP001: Empty export
//   - VAL001-VAL002: Invalid or unreadable forms
//   - VIEW001-VIEW003, PRD001, SES001: Table state errors
package core
