package models

import "strings"

// NormalizePhone strips everything but digits. The result is the identity key
// used for duplicate detection.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone canonicalizes a phone number to the regional dial format.
// Numbers that do not match a known length are returned unchanged.
func FormatPhone(phone string) string {
	d := NormalizePhone(phone)
	switch {
	case len(d) == 11:
		// Mobile: 010-1234-5678
		return d[:3] + "-" + d[3:7] + "-" + d[7:]
	case len(d) == 10 && strings.HasPrefix(d, "02"):
		// Seoul landline: 02-1234-5678
		return d[:2] + "-" + d[2:6] + "-" + d[6:]
	case len(d) == 10:
		// Regional landline or old mobile: 031-123-4567
		return d[:3] + "-" + d[3:6] + "-" + d[6:]
	case len(d) == 9 && strings.HasPrefix(d, "02"):
		// Short Seoul landline: 02-123-4567
		return d[:2] + "-" + d[2:5] + "-" + d[5:]
	case len(d) == 8:
		// Service numbers: 1588-1234
		return d[:4] + "-" + d[4:]
	default:
		return phone
	}
}
