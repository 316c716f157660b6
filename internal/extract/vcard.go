package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/smkwon/lifeone/internal/models"
)

var qpByteRe = regexp.MustCompile(`=([0-9A-F]{2})`)

// ParseVCard extracts contacts from a vCard (.vcf) document: BEGIN/END card
// markers, folded-line continuation, FN/N names, first TEL and EMAIL, and
// ORG/TITLE as the group label. Quoted-printable values (old Android exports)
// are decoded. Cards with neither name nor phone are dropped.
func ParseVCard(content string) []models.Contact {
	lines := regexp.MustCompile(`\r\n|\r|\n`).Split(content, -1)

	var contacts []models.Contact
	var current models.Contact
	inCard := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		// Unfold: continuation lines start with a space.
		for i+1 < len(lines) && strings.HasPrefix(lines[i+1], " ") {
			line += lines[i+1][1:]
			i++
		}

		switch {
		case strings.HasPrefix(line, "BEGIN:VCARD"):
			inCard = true
			current = models.Contact{Group: models.DefaultGroup}
			continue
		case strings.HasPrefix(line, "END:VCARD"):
			if inCard && (current.Name != "" || current.Phone != "") {
				if current.Name == "" {
					current.Name = "이름 없음"
				}
				contacts = append(contacts, current)
			}
			inCard = false
			continue
		}
		if !inCard {
			continue
		}

		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}
		left, value := line[:colon], line[colon+1:]

		params := strings.Split(left, ";")
		key := strings.ToUpper(params[0])
		for _, p := range params[1:] {
			if strings.Contains(strings.ToUpper(p), "QUOTED-PRINTABLE") {
				value = decodeQuotedPrintable(value)
				break
			}
		}

		switch key {
		case "FN":
			current.Name = value
		case "N":
			if current.Name == "" {
				parts := strings.Split(value, ";")
				family, given := "", ""
				if len(parts) > 0 {
					family = parts[0]
				}
				if len(parts) > 1 {
					given = parts[1]
				}
				current.Name = strings.TrimSpace(family + given)
			}
		case "TEL":
			if current.Phone == "" {
				current.Phone = models.FormatPhone(value)
			}
		case "EMAIL":
			if current.Email == "" {
				current.Email = value
			}
		case "ORG", "TITLE":
			if current.Group == models.DefaultGroup {
				current.Group = strings.SplitN(value, ";", 2)[0]
			}
		}
	}

	return contacts
}

func decodeQuotedPrintable(s string) string {
	s = strings.ReplaceAll(s, "=\r\n", "")
	s = strings.ReplaceAll(s, "=\n", "")
	escaped := qpByteRe.ReplaceAllString(s, "%$1")
	// PathUnescape, not QueryUnescape: '+' is a literal in vCard values.
	decoded, err := url.PathUnescape(escaped)
	if err != nil {
		return s
	}
	return decoded
}
