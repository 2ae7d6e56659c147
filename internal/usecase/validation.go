package usecase

// ValidateZipCode accepts five-digit US zip codes, optionally with a
// four-digit extension (ZIP+4).
func ValidateZipCode(zip string) bool {
	switch len(zip) {
	case 5:
		return allDigits(zip)
	case 10:
		return allDigits(zip[:5]) && zip[5] == '-' && allDigits(zip[6:])
	}
	return false
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
