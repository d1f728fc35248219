// Package validator provides small declarative validation rules.
//
// A Rule pairs a Check function with the error reported when the check
// fails. Apply evaluates any number of rules and aggregates the failures into
// ValidationErrors, which implements error:
//
//	err := validator.Apply(
//	    validator.RequiredString("chinese_name", cn),
//	    validator.ValidEmail("address", addr),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() {
//	        // field-level messages
//	    }
//	}
//
// Rules hold no global state and are safe for concurrent use.
package validator
