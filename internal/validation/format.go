package validation

import "strings"

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// nationalPhone strips formatting and an optional 55 country code, returning
// the 10 or 11 digit national number or "" when s is not a Brazilian phone.
func nationalPhone(s string) string {
	d := digits(s)
	if (len(d) == 12 || len(d) == 13) && strings.HasPrefix(d, "55") {
		d = d[2:]
	}
	if len(d) != 10 && len(d) != 11 {
		return ""
	}
	if d[0] == '0' {
		return ""
	}
	return d
}

// ValidPhone reports whether s is a Brazilian landline or mobile number
func ValidPhone(s string) bool {
	return nationalPhone(s) != ""
}

// NormalizePhone returns s in E.164 (+55...) or "" if it is not a phone
func NormalizePhone(s string) string {
	d := nationalPhone(s)
	if d == "" {
		return ""
	}
	return "+55" + d
}

// FormatPhone renders a phone as (11) 91234-5678 or (11) 1234-5678.
// Inputs that are not phones are returned unchanged.
func FormatPhone(s string) string {
	d := nationalPhone(s)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	}
	return s
}

// ValidCPF checks length and both check digits
func ValidCPF(s string) bool {
	d := digits(s)
	if len(d) != 11 {
		return false
	}
	allSame := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}
	return cpfCheckDigit(d[:9]) == d[9] && cpfCheckDigit(d[:10]) == d[10]
}

func cpfCheckDigit(base string) byte {
	sum := 0
	weight := len(base) + 1
	for i := 0; i < len(base); i++ {
		sum += int(base[i]-'0') * weight
		weight--
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return byte('0' + rest)
}

// FormatCPF renders 11 digits as 123.456.789-09
func FormatCPF(s string) string {
	d := digits(s)
	if len(d) != 11 {
		return s
	}
	return d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
}

// NormalizeCPF keeps only the digits
func NormalizeCPF(s string) string {
	return digits(s)
}
