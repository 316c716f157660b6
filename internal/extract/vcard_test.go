package extract

import (
	"testing"

	"github.com/smkwon/lifeone/internal/models"
)

func TestParseVCard(t *testing.T) {
	content := "BEGIN:VCARD\r\n" +
		"VERSION:3.0\r\n" +
		"FN:김철수\r\n" +
		"N:김;철수;;;\r\n" +
		"TEL;TYPE=CELL:01012345678\r\n" +
		"TEL;TYPE=WORK:0212345678\r\n" +
		"EMAIL:chulsoo@example.com\r\n" +
		"ORG:회사이름;개발팀\r\n" +
		"END:VCARD\r\n"

	contacts := ParseVCard(content)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	c := contacts[0]
	if c.Name != "김철수" {
		t.Errorf("name = %q", c.Name)
	}
	if c.Phone != "010-1234-5678" {
		t.Errorf("phone = %q, want formatted first TEL", c.Phone)
	}
	if c.Email != "chulsoo@example.com" {
		t.Errorf("email = %q", c.Email)
	}
	if c.Group != "회사이름" {
		t.Errorf("group = %q, want first ORG component", c.Group)
	}
}

func TestParseVCardNFallbackAndFolding(t *testing.T) {
	content := "BEGIN:VCARD\n" +
		"N:홍;길동;;;\n" +
		"TEL:010999\n" +
		" 90000\n" + // folded continuation line
		"END:VCARD\n"

	contacts := ParseVCard(content)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	if contacts[0].Name != "홍길동" {
		t.Errorf("name = %q, want family+given from N", contacts[0].Name)
	}
	if contacts[0].Phone != "010-9999-0000" {
		t.Errorf("phone = %q, want unfolded and formatted", contacts[0].Phone)
	}
}

func TestParseVCardQuotedPrintable(t *testing.T) {
	// "김" in UTF-8 quoted-printable is =EA=B9=80.
	content := "BEGIN:VCARD\n" +
		"FN;CHARSET=UTF-8;ENCODING=QUOTED-PRINTABLE:=EA=B9=80\n" +
		"TEL:01012345678\n" +
		"END:VCARD\n"

	contacts := ParseVCard(content)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1", len(contacts))
	}
	if contacts[0].Name != "김" {
		t.Errorf("name = %q, want decoded 김", contacts[0].Name)
	}
}

func TestParseVCardDropsEmptyCards(t *testing.T) {
	content := "BEGIN:VCARD\nVERSION:3.0\nEND:VCARD\n" +
		"BEGIN:VCARD\nTEL:01012345678\nEND:VCARD\n"

	contacts := ParseVCard(content)
	if len(contacts) != 1 {
		t.Fatalf("contacts = %d, want 1 (nameless+phoneless card dropped)", len(contacts))
	}
	if contacts[0].Name != "이름 없음" {
		t.Errorf("name = %q, want placeholder for phone-only card", contacts[0].Name)
	}
	if contacts[0].Group != models.DefaultGroup {
		t.Errorf("group = %q, want default", contacts[0].Group)
	}
}
