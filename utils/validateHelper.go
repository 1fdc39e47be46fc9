package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var CountryCode = "CO"

func IsValidEmail(email string) bool {
	// Basic email validation regex pattern
	pattern := `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	regex := regexp.MustCompile(pattern)
	return regex.MatchString(email)
}

func ValidatePhoneNumber(phoneNumber string, countryCode string) error {
	p, err := libphonenumber.Parse(phoneNumber, countryCode)
	if err != nil {
		return err // Phone number is invalid
	}

	if !libphonenumber.IsValidNumber(p) {
		return fmt.Errorf("phone number is not valid")
	}

	return nil // Phone number is valid for the specified country code
}

// DIAN check-digit weights, applied right to left over the NIT base.
var nitPesos = []int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

var nitPattern = regexp.MustCompile(`^\d{5,15}(-\d)?$`)

// CalcularDigitoVerificacion computes the DIAN verification digit for a NIT
// base (digits only, without the trailing "-D").
func CalcularDigitoVerificacion(base string) (int, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return 0, fmt.Errorf("nit vacio: %w", ErrorInvalidInput)
	}
	suma := 0
	for i := 0; i < len(base); i++ {
		c := base[len(base)-1-i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("nit %q contiene caracteres no numericos: %w", base, ErrorInvalidInput)
		}
		if i >= len(nitPesos) {
			return 0, fmt.Errorf("nit %q demasiado largo: %w", base, ErrorInvalidInput)
		}
		suma += int(c-'0') * nitPesos[i]
	}
	resto := suma % 11
	if resto > 1 {
		return 11 - resto, nil
	}
	return resto, nil
}

// ValidarNIT checks the format of a NIT ("123456789" or "123456789-0") and
// computes its verification digit. Legacy NITs whose declared digit does not
// match the computed one are still accepted (conforme=false); enforcement
// broke too many real-world records, so callers only log the mismatch.
func ValidarNIT(nit string) (digito int, conforme bool, err error) {
	nit = strings.TrimSpace(nit)
	if !nitPattern.MatchString(nit) {
		return 0, false, fmt.Errorf("nit %q con formato invalido: %w", nit, ErrorInvalidInput)
	}

	base := nit
	declarado := -1
	if idx := strings.IndexByte(nit, '-'); idx >= 0 {
		base = nit[:idx]
		declarado = int(nit[idx+1] - '0')
	}

	digito, err = CalcularDigitoVerificacion(base)
	if err != nil {
		return 0, false, err
	}
	if declarado < 0 {
		// Without a declared digit there is nothing to contrast.
		return digito, true, nil
	}
	return digito, digito == declarado, nil
}
