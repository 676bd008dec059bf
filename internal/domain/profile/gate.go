package profile

import "time"

// IsAdult reports whether someone born on dob is 18 or older on the given day.
// The comparison is calendar-exact: the birthday itself counts, the day before
// does not. A nil or future dob is never adult.
func IsAdult(dob *time.Time, today time.Time) bool {
	if dob == nil {
		return false
	}

	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() ||
		(today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age >= 18
}

// CanViewAdult reports whether the profile may see adult-only content on the
// given day: the user must be an adult, have the preference enabled, and have
// no DOB change under review.
func (p *Profile) CanViewAdult(today time.Time) bool {
	return IsAdult(p.DateOfBirth, today) && p.ShowAdultContent && !p.DobChangePending
}
