package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func validTestValues() ApplicationValues {
	return ApplicationValues{
		FirstName:                    "Jane",
		LastName:                     "Doe",
		Email:                        "jane.doe@example.com",
		Phone:                        "5551234567",
		DateOfBirth:                  "1990-03-10",
		AddressStreet:                "123 Main Street",
		AddressCity:                  "Austin",
		AddressState:                 "TX",
		AddressZip:                   "78701",
		IDNumber:                     "TX1234567",
		EmergencyContactName:         "John Doe",
		EmergencyContactPhone:        "5557654321",
		EmergencyContactRelationship: "spouse",

		CanSitExtendedPeriods: true,

		WhyCompanionRider:      strings.Repeat("I want to help drivers stay awake and safe. ", 3),
		OvernightComfortLevel:  "comfortable",
		ConfinedSpacesComfort:  true,
		UnderstandsNotRomantic: true,

		ConductAcknowledged: true,
		ConductSignature:    "Jane Doe",
		ConductDate:         "2025-06-01",

		HealthInsuranceName:   "Acme Health",
		HealthInsurancePolicy: "POL-99881",
		HealthInsuranceStart:  "2025-01-01",
		HealthInsuranceEnd:    "2025-12-31",
	}
}

func TestValidatePersonal(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ApplicationValues)
		expectedField string
	}{
		{
			name:   "valid values pass",
			mutate: func(v *ApplicationValues) {},
		},
		{
			name:          "short first name",
			mutate:        func(v *ApplicationValues) { v.FirstName = "J" },
			expectedField: "first_name",
		},
		{
			name:          "invalid email",
			mutate:        func(v *ApplicationValues) { v.Email = "not-an-email" },
			expectedField: "email",
		},
		{
			name:          "email without domain dot",
			mutate:        func(v *ApplicationValues) { v.Email = "jane@example" },
			expectedField: "email",
		},
		{
			name:          "short phone",
			mutate:        func(v *ApplicationValues) { v.Phone = "555123" },
			expectedField: "phone",
		},
		{
			name:          "under 18",
			mutate:        func(v *ApplicationValues) { v.DateOfBirth = "2010-01-01" },
			expectedField: "date_of_birth",
		},
		{
			name:          "18 tomorrow fails",
			mutate:        func(v *ApplicationValues) { v.DateOfBirth = "2007-06-02" },
			expectedField: "date_of_birth",
		},
		{
			name:          "unparseable birth date fails without panic",
			mutate:        func(v *ApplicationValues) { v.DateOfBirth = "garbage" },
			expectedField: "date_of_birth",
		},
		{
			name:          "short street address",
			mutate:        func(v *ApplicationValues) { v.AddressStreet = "12 A" },
			expectedField: "address_street",
		},
		{
			name:          "short zip",
			mutate:        func(v *ApplicationValues) { v.AddressZip = "787" },
			expectedField: "address_zip",
		},
		{
			name:          "short id number",
			mutate:        func(v *ApplicationValues) { v.IDNumber = "1234" },
			expectedField: "id_number",
		},
		{
			name:          "missing emergency contact name",
			mutate:        func(v *ApplicationValues) { v.EmergencyContactName = "" },
			expectedField: "emergency_contact_name",
		},
		{
			name:          "short emergency contact phone",
			mutate:        func(v *ApplicationValues) { v.EmergencyContactPhone = "12345" },
			expectedField: "emergency_contact_phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validTestValues()
			tt.mutate(&values)

			errors := ValidatePersonal(values, testNow)

			if tt.expectedField == "" {
				assert.True(t, errors.Ok(), "expected no errors, got %v", errors)
			} else {
				assert.Contains(t, errors, tt.expectedField)
			}
		})
	}
}

func TestValidatePersonal_ExactlyEighteen(t *testing.T) {
	values := validTestValues()
	values.DateOfBirth = "2007-06-01"

	errors := ValidatePersonal(values, testNow)
	assert.True(t, errors.Ok(), "18th birthday today should pass, got %v", errors)
}

// Background has no required fields: flags are plain booleans and details
// are optional even when the matching flag is set.
func TestValidateBackground_AlwaysPasses(t *testing.T) {
	values := ApplicationValues{
		HasFelonyConviction: true,
		FelonyDetails:       "",
		IsOnProbationParole: true,
		TakesMedications:    true,
	}

	assert.True(t, ValidateBackground(values).Ok())
	assert.True(t, ValidateBackground(ApplicationValues{}).Ok())
}

func TestValidateExperience(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ApplicationValues)
		expectedField string
	}{
		{
			name:   "valid values pass",
			mutate: func(v *ApplicationValues) {},
		},
		{
			name: "motivation of 49 characters fails",
			mutate: func(v *ApplicationValues) {
				v.WhyCompanionRider = strings.Repeat("x", 49)
			},
			expectedField: "why_companion_rider",
		},
		{
			name: "motivation of exactly 50 characters passes",
			mutate: func(v *ApplicationValues) {
				v.WhyCompanionRider = strings.Repeat("x", 50)
			},
		},
		{
			name:          "missing comfort level",
			mutate:        func(v *ApplicationValues) { v.OvernightComfortLevel = "" },
			expectedField: "overnight_comfort_level",
		},
		{
			name:          "unknown comfort level",
			mutate:        func(v *ApplicationValues) { v.OvernightComfortLevel = "thrilled" },
			expectedField: "overnight_comfort_level",
		},
		{
			name:          "romantic acknowledgment must be true",
			mutate:        func(v *ApplicationValues) { v.UnderstandsNotRomantic = false },
			expectedField: "understands_not_romantic",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validTestValues()
			tt.mutate(&values)

			errors := ValidateExperience(values)

			if tt.expectedField == "" {
				assert.True(t, errors.Ok(), "expected no errors, got %v", errors)
			} else {
				assert.Contains(t, errors, tt.expectedField)
			}
		})
	}
}

func TestValidateExperience_MotivationIsRuneCount(t *testing.T) {
	values := validTestValues()
	// 50 multi-byte runes count as 50 characters, not bytes.
	values.WhyCompanionRider = strings.Repeat("ä", 50)

	assert.True(t, ValidateExperience(values).Ok())
}

func TestValidateConduct(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ApplicationValues)
		expectedField string
	}{
		{
			name:   "valid values pass",
			mutate: func(v *ApplicationValues) {},
		},
		{
			name:          "acknowledgment must be true",
			mutate:        func(v *ApplicationValues) { v.ConductAcknowledged = false },
			expectedField: "conduct_acknowledged",
		},
		{
			name:          "signature too short",
			mutate:        func(v *ApplicationValues) { v.ConductSignature = "J" },
			expectedField: "conduct_signature",
		},
		{
			name:          "date required",
			mutate:        func(v *ApplicationValues) { v.ConductDate = "" },
			expectedField: "conduct_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validTestValues()
			tt.mutate(&values)

			errors := ValidateConduct(values)

			if tt.expectedField == "" {
				assert.True(t, errors.Ok(), "expected no errors, got %v", errors)
			} else {
				assert.Contains(t, errors, tt.expectedField)
			}
		})
	}
}

func TestValidateConduct_FixedMessage(t *testing.T) {
	values := validTestValues()
	values.ConductAcknowledged = false

	errors := ValidateConduct(values)
	assert.Equal(t,
		"You must acknowledge the conduct and professional expectations",
		errors["conduct_acknowledged"])
}

func TestValidateInsurance(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*ApplicationValues)
		expectedField string
	}{
		{
			name:   "valid values pass",
			mutate: func(v *ApplicationValues) {},
		},
		{
			name:          "missing company name",
			mutate:        func(v *ApplicationValues) { v.HealthInsuranceName = "" },
			expectedField: "health_insurance_name",
		},
		{
			name:          "missing policy number",
			mutate:        func(v *ApplicationValues) { v.HealthInsurancePolicy = "X" },
			expectedField: "health_insurance_policy",
		},
		{
			name:          "missing coverage start",
			mutate:        func(v *ApplicationValues) { v.HealthInsuranceStart = "" },
			expectedField: "health_insurance_start",
		},
		{
			name:          "missing coverage end",
			mutate:        func(v *ApplicationValues) { v.HealthInsuranceEnd = "" },
			expectedField: "health_insurance_end",
		},
		{
			name: "liability fields are optional",
			mutate: func(v *ApplicationValues) {
				v.LiabilityInsuranceName = ""
				v.LiabilityInsurancePolicy = ""
				v.LiabilityInsuranceStart = ""
				v.LiabilityInsuranceEnd = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validTestValues()
			tt.mutate(&values)

			errors := ValidateInsurance(values)

			if tt.expectedField == "" {
				assert.True(t, errors.Ok(), "expected no errors, got %v", errors)
			} else {
				assert.Contains(t, errors, tt.expectedField)
			}
		})
	}
}

func TestValidateStep_UnknownStep(t *testing.T) {
	errors := ValidateStep(9, validTestValues(), testNow)
	assert.False(t, errors.Ok())
}

func TestValidateAll_MergesAllSteps(t *testing.T) {
	values := validTestValues()
	values.FirstName = ""
	values.UnderstandsNotRomantic = false
	values.HealthInsuranceName = ""

	errors := ValidateAll(values, testNow)

	assert.Contains(t, errors, "first_name")
	assert.Contains(t, errors, "understands_not_romantic")
	assert.Contains(t, errors, "health_insurance_name")

	assert.True(t, ValidateAll(validTestValues(), testNow).Ok())
}
