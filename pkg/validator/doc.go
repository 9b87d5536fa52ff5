// Package validator provides small, composable validation rules.
//
// A Rule pairs a boolean Check with translation-friendly error metadata.
// Rules are evaluated with Apply, which aggregates failures into a
// ValidationErrors slice that satisfies the error interface. Apply reports
// at most one violation per field, in the order the rules were given, so
// callers can list the rules for a field from the most basic (presence,
// type) to the most specific (bounds).
//
// Messages default to a generic English text; WithMessage overrides it for
// user-facing copy while keeping the translation key.
//
//	err := validator.Apply(
//	    validator.MinLen("name", in.Name, 2).WithMessage("Name must be at least 2 characters."),
//	    validator.ValidEmail("email", in.Email),
//	    validator.MinNum("amount", in.Amount, 20),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // render field-level messages
//	}
//
// The package is stateless and safe for concurrent use.
package validator
