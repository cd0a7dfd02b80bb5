// Package app is the application layer, the only component that references
// multiple domain components. It orchestrates the review submission pipeline:
// validation, rate limiting, sentiment classification, persistence.
package app
