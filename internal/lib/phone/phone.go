// Package phone нормализует номера мобильных телефонов для M-PESA.
package phone

import "strings"

var stripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizeMpesa приводит кенийский номер к формату 2547XXXXXXXX:
// убирает пробелы, дефисы, скобки и ведущий "+", затем достраивает код
// страны для записей вида 07... и 7... Это эвристика, а не полная
// валидация: номера в другом формате возвращаются как есть.
func NormalizeMpesa(raw string) string {
	s := stripper.Replace(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "+")
	switch {
	case len(s) == 10 && strings.HasPrefix(s, "0"):
		return "254" + s[1:]
	case len(s) == 9 && strings.HasPrefix(s, "7"):
		return "254" + s
	}
	return s
}
