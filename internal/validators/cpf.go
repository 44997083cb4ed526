package validators

import "strings"

// IsCPFValid valida os dígitos verificadores do CPF. Aceita com ou sem
// máscara; string vazia passa (o campo é opcional).
func IsCPFValid(cpf string) bool {
	if cpf == "" {
		return true
	}

	clean := strings.NewReplacer(".", "", "-", "", " ", "").Replace(cpf)
	if len(clean) != 11 {
		return false
	}

	digits := make([]int, 11)
	allEqual := true
	for i, r := range clean {
		if r < '0' || r > '9' {
			return false
		}
		digits[i] = int(r - '0')
		if i > 0 && digits[i] != digits[0] {
			allEqual = false
		}
	}
	if allEqual {
		return false
	}

	check := func(n int) int {
		sum := 0
		for i := 0; i < n; i++ {
			sum += digits[i] * (n + 1 - i)
		}
		rest := sum % 11
		if rest < 2 {
			return 0
		}
		return 11 - rest
	}

	return digits[9] == check(9) && digits[10] == check(10)
}
