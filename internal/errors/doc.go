// Package errors provides structured error handling for the combat service.
//
// Errors carry a Code that maps onto an HTTP status, a human-readable
// message, an optional wrapped cause, and optional metadata. Orchestrators
// and repositories return these typed errors so handlers can surface a
// consistent JSON error body without inspecting error strings.
//
// Creating errors:
//
//	errors.NotFoundf("combatant %s not found", id)
//	errors.ResourceExhausted("no level 3 spell slots available")
//	errors.PermissionDenied("only the GM may end combat")
//
// Wrapping errors from collaborators:
//
//	if err != nil {
//	    return errors.Wrapf(err, "failed to persist combat state")
//	}
//
// Checking errors:
//
//	if errors.IsNotFound(err) { ... }
//	if errors.GetCode(err) == errors.CodeAborted { ... } // CAS conflict, retry
//
// Validating config and input:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.CombatRepo == nil {
//	    vb.RequiredField("CombatRepo")
//	}
//	return vb.Build()
package errors
