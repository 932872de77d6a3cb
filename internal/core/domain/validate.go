package domain

import "regexp"

var (
	grantIDPattern      = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	researcherIDPattern = regexp.MustCompile(`^[A-Za-z0-9 ,'-]+$`)
)

// ValidateGrantID checks the grant id against its allowed grammar.
// Empty strings always fail.
func ValidateGrantID(s string) error {
	if !grantIDPattern.MatchString(s) {
		return ErrInvalidGrantID
	}
	return nil
}

// ValidateResearcherID checks the researcher id against its allowed grammar.
// Researcher ids may contain spaces, commas, apostrophes and hyphens
// ("Zeevi, Gil" is valid). Empty strings always fail.
func ValidateResearcherID(s string) error {
	if !researcherIDPattern.MatchString(s) {
		return ErrInvalidResearcherID
	}
	return nil
}

// ValidateAction checks that s is one of the two vote actions.
func ValidateAction(s string) error {
	if Action(s) != ActionLike && Action(s) != ActionDislike {
		return ErrInvalidAction
	}
	return nil
}
