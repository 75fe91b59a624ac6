package forms

import (
	"net/mail"
	"roaddogs/internal/utils"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// FieldErrors maps field names to the message shown next to that field. An
// empty map means the step passed.
type FieldErrors map[string]string

func (e FieldErrors) Ok() bool { return len(e) == 0 }

const TotalSteps = 5

// ValidateStep runs the validator for one step of the form. Validators are
// pure: same values and same clock, same result.
func ValidateStep(step int, values ApplicationValues, now time.Time) FieldErrors {
	switch step {
	case 1:
		return ValidatePersonal(values, now)
	case 2:
		return ValidateBackground(values)
	case 3:
		return ValidateExperience(values)
	case 4:
		return ValidateConduct(values)
	case 5:
		return ValidateInsurance(values)
	}
	return FieldErrors{"step": "unknown form step"}
}

// ValidateAll runs every step validator and merges the results, used as the
// final gate before submission.
func ValidateAll(values ApplicationValues, now time.Time) FieldErrors {
	errors := FieldErrors{}
	for step := 1; step <= TotalSteps; step++ {
		for field, message := range ValidateStep(step, values, now) {
			errors[field] = message
		}
	}
	return errors
}

func minLen(errors FieldErrors, field, value string, min int, message string) {
	if utf8.RuneCountInString(value) < min {
		errors[field] = message
	}
}

func ValidatePersonal(v ApplicationValues, now time.Time) FieldErrors {
	errors := FieldErrors{}

	minLen(errors, "first_name", v.FirstName, 2, "First name must be at least 2 characters")
	minLen(errors, "last_name", v.LastName, 2, "Last name must be at least 2 characters")

	if !validEmail(v.Email) {
		errors["email"] = "Please enter a valid email address"
	}

	minLen(errors, "phone", v.Phone, 10, "Please enter a valid phone number")

	if !utils.IsAtLeast18(v.DateOfBirth, now) {
		errors["date_of_birth"] = "You must be at least 18 years old"
	}

	minLen(errors, "address_street", v.AddressStreet, 5, "Please enter a valid street address")
	minLen(errors, "address_city", v.AddressCity, 2, "Please enter a valid city")
	minLen(errors, "address_state", v.AddressState, 2, "Please select a state")
	minLen(errors, "address_zip", v.AddressZip, 5, "Please enter a valid ZIP code")
	minLen(errors, "id_number", v.IDNumber, 5, "Please enter a valid ID number")
	minLen(errors, "emergency_contact_name", v.EmergencyContactName, 2, "Emergency contact name is required")
	minLen(errors, "emergency_contact_phone", v.EmergencyContactPhone, 10, "Please enter a valid emergency contact phone")
	minLen(errors, "emergency_contact_relationship", v.EmergencyContactRelationship, 2, "Please specify the relationship")

	return errors
}

// ValidateBackground has no failing inputs: the disclosure flags are plain
// booleans and every detail field is optional, even when its flag is true.
func ValidateBackground(v ApplicationValues) FieldErrors {
	return FieldErrors{}
}

func ValidateExperience(v ApplicationValues) FieldErrors {
	errors := FieldErrors{}

	minLen(errors, "why_companion_rider", v.WhyCompanionRider, 50,
		"Please provide a detailed response (at least 50 characters)")

	if v.OvernightComfortLevel == "" || !slices.Contains(ComfortLevels, v.OvernightComfortLevel) {
		errors["overnight_comfort_level"] = "Please select your comfort level"
	}

	if !v.UnderstandsNotRomantic {
		errors["understands_not_romantic"] = "You must acknowledge this understanding"
	}

	return errors
}

func ValidateConduct(v ApplicationValues) FieldErrors {
	errors := FieldErrors{}

	if !v.ConductAcknowledged {
		errors["conduct_acknowledged"] = "You must acknowledge the conduct and professional expectations"
	}

	minLen(errors, "conduct_signature", v.ConductSignature, 2, "Please provide your signature")
	minLen(errors, "conduct_date", v.ConductDate, 1, "Date is required")

	return errors
}

func ValidateInsurance(v ApplicationValues) FieldErrors {
	errors := FieldErrors{}

	minLen(errors, "health_insurance_name", v.HealthInsuranceName, 2, "Insurance company name is required")
	minLen(errors, "health_insurance_policy", v.HealthInsurancePolicy, 2, "Policy number is required")
	minLen(errors, "health_insurance_start", v.HealthInsuranceStart, 1, "Coverage start date is required")
	minLen(errors, "health_insurance_end", v.HealthInsuranceEnd, 1, "Coverage end date is required")

	// The liability quartet is optional.

	return errors
}

func validEmail(address string) bool {
	if strings.TrimSpace(address) == "" {
		return false
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil {
		return false
	}
	// Reject display-name forms and addresses without a domain dot, which
	// mail.ParseAddress tolerates but the form should not.
	if parsed.Address != address {
		return false
	}
	at := strings.LastIndex(address, "@")
	return at > 0 && strings.Contains(address[at:], ".")
}
