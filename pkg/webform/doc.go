// Package webform defines the server-side form vocabulary consumed by the
// translator and the submission forwarder: definitions, their element tree,
// ordered option lists, the submission envelope handed to the CMS, and the
// collaborator interfaces (Repository, StatusChecker, Validator, Submitter)
// that backends implement. Nothing in this package performs I/O.
package webform
