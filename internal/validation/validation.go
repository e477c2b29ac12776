// Package validation holds the pure form-level rules shared by the reminder
// and auth surfaces. Every validator collects the complete set of field
// errors in one pass so callers can surface all problems at once.
package validation

import (
	"regexp"
	"strings"
)

type FieldErrors map[string]string

func (f FieldErrors) Empty() bool {
	return len(f) == 0
}

const (
	ReasonMissingField     = "MissingField"
	ReasonInvalidTime      = "InvalidTime"
	ReasonInvalidDay       = "InvalidDay"
	ReasonInvalidEmail     = "InvalidEmail"
	ReasonPasswordTooShort = "PasswordTooShort"
	ReasonPasswordMismatch = "PasswordMismatch"
	ReasonNameRequired     = "NameRequired"
)

var (
	timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	emailRe     = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	nonDigitRe  = regexp.MustCompile(`\D`)
)

var validDays = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true, "Thu": true,
	"Fri": true, "Sat": true, "Sun": true,
}

// ValidateReminderInput checks a reminder form. The time is 24-hour HH:MM
// and the day set must be non-empty with entries from Mon..Sun.
func ValidateReminderInput(name, timeOfDay, dosage string, days []string) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = ReasonMissingField
	}

	switch {
	case strings.TrimSpace(timeOfDay) == "":
		errs["time"] = ReasonMissingField
	case !timeOfDayRe.MatchString(timeOfDay):
		errs["time"] = ReasonInvalidTime
	}

	if strings.TrimSpace(dosage) == "" {
		errs["dosage"] = ReasonMissingField
	}

	if len(days) == 0 {
		errs["days"] = ReasonMissingField
	} else {
		for _, day := range days {
			if !validDays[day] {
				errs["days"] = ReasonInvalidDay

				break
			}
		}
	}

	return errs
}

// ValidateAuthInput checks a login or signup form. On signup the name and
// password confirmation are also required.
func ValidateAuthInput(name, email, password, confirmPassword string, signup bool) FieldErrors {
	errs := FieldErrors{}

	switch {
	case email == "":
		errs["email"] = ReasonMissingField
	case !emailRe.MatchString(email):
		errs["email"] = ReasonInvalidEmail
	}

	switch {
	case password == "":
		errs["password"] = ReasonMissingField
	case len(password) < 6:
		errs["password"] = ReasonPasswordTooShort
	}

	if signup {
		if strings.TrimSpace(name) == "" {
			errs["name"] = ReasonNameRequired
		}

		if password != confirmPassword {
			errs["confirm_password"] = ReasonPasswordMismatch
		}
	}

	return errs
}

// NormalizeCardNumber strips non-digits, truncates to 16 digits and groups
// them into blocks of four, e.g. "4242 4242 4242 4242" (19 chars max).
func NormalizeCardNumber(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")

	if len(digits) > 16 {
		digits = digits[:16]
	}

	var sb strings.Builder

	for i, r := range digits {
		if i > 0 && i%4 == 0 {
			sb.WriteByte(' ')
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// NormalizeExpiry strips non-digits and formats as MM/YY once more than two
// digits are present.
func NormalizeExpiry(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")

	if len(digits) > 4 {
		digits = digits[:4]
	}

	if len(digits) > 2 {
		return digits[:2] + "/" + digits[2:]
	}

	return digits
}
