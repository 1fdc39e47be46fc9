package utils

import (
	"errors"
	"testing"
)

func TestCalcularDigitoVerificacion(t *testing.T) {
	casos := []struct {
		base   string
		digito int
	}{
		{"900123456", 8},
		{"4", 1},
	}
	for _, c := range casos {
		got, err := CalcularDigitoVerificacion(c.base)
		if err != nil {
			t.Fatalf("CalcularDigitoVerificacion(%q): %v", c.base, err)
		}
		if got != c.digito {
			t.Errorf("CalcularDigitoVerificacion(%q) = %d, esperaba %d", c.base, got, c.digito)
		}
	}

	if _, err := CalcularDigitoVerificacion(""); !errors.Is(err, ErrorInvalidInput) {
		t.Fatalf("base vacia: %v", err)
	}
	if _, err := CalcularDigitoVerificacion("12A45"); !errors.Is(err, ErrorInvalidInput) {
		t.Fatalf("base no numerica: %v", err)
	}
	if _, err := CalcularDigitoVerificacion("1234567890123456"); !errors.Is(err, ErrorInvalidInput) {
		t.Fatalf("base demasiado larga: %v", err)
	}
}

func TestValidarNIT(t *testing.T) {
	digito, conforme, err := ValidarNIT("900123456")
	if err != nil || digito != 8 || !conforme {
		t.Fatalf("sin digito declarado: digito=%d conforme=%v err=%v", digito, conforme, err)
	}

	digito, conforme, err = ValidarNIT("900123456-8")
	if err != nil || digito != 8 || !conforme {
		t.Fatalf("digito correcto: digito=%d conforme=%v err=%v", digito, conforme, err)
	}

	// Legacy NITs with a wrong declared digit pass with conforme=false.
	digito, conforme, err = ValidarNIT("900123456-7")
	if err != nil || digito != 8 || conforme {
		t.Fatalf("digito incorrecto: digito=%d conforme=%v err=%v", digito, conforme, err)
	}

	for _, nit := range []string{"", "123", "12AB5", "900123456-77", "nit-1"} {
		if _, _, err := ValidarNIT(nit); !errors.Is(err, ErrorInvalidInput) {
			t.Errorf("ValidarNIT(%q) = %v, esperaba ErrorInvalidInput", nit, err)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	validos := []string{"gerencia@example.com", "a.b+c@sub.dominio.co"}
	for _, e := range validos {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false", e)
		}
	}
	invalidos := []string{"", "sin-arroba", "a@b", "a@b."}
	for _, e := range invalidos {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true", e)
		}
	}
}
