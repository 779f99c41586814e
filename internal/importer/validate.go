package importer

import "fmt"

// ValidateSessionImport checks the document for errors that make it unusable
// as a whole. Rows with bad timestamps are not errors here; Convert skips them.
func ValidateSessionImport(schema *SessionImportSchema) []error {
	var errs []error

	if len(schema.Sessions) == 0 {
		errs = append(errs, fmt.Errorf("sessions: at least one session is required"))
	}

	seen := make(map[string]int)
	for i, s := range schema.Sessions {
		prefix := fmt.Sprintf("sessions[%d]", i)
		if s.ID != "" {
			if first, dup := seen[s.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q (first used at sessions[%d])", prefix, s.ID, first))
			} else {
				seen[s.ID] = i
			}
		}
		if s.TimeSpentMinutes != nil && *s.TimeSpentMinutes < 0 {
			errs = append(errs, fmt.Errorf("%s.time_spent_minutes: must be >= 0, got %d", prefix, *s.TimeSpentMinutes))
		}
		if s.Quantity != nil && *s.Quantity < 0 {
			errs = append(errs, fmt.Errorf("%s.quantity: must be >= 0, got %d", prefix, *s.Quantity))
		}
	}

	return errs
}
