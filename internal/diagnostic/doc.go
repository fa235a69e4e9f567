// Package diagnostic provides structured errors and warnings collected while
// ingesting a type schema.
//
// Key capabilities:
//   - Every problem carries a stable code and the field it concerns
//   - Errors keep their typed cause so callers can use errors.As
//   - Warnings never abort a run; the driver logs them
package diagnostic
