package extract

import (
	"regexp"
	"strings"
)

// kakaoSliceLines caps how much of a chat export gets sent to the extraction
// service; exports can run to years of conversation.
const kakaoSliceLines = 2000

var kakaoMessageRe = regexp.MustCompile(`^\[(.*?)\] \[(.*?)\] (.*)`)

// PrepareKakaoLog normalizes a KakaoTalk chat export into the compact
// "Name (Time): Message" form the extraction prompt expects, keeping only the
// most recent slice. Date separator lines become [Date: ...] headers.
func PrepareKakaoLog(raw string) string {
	lines := strings.Split(raw, "\n")
	if len(lines) > kakaoSliceLines {
		lines = lines[len(lines)-kakaoSliceLines:]
	}

	var b strings.Builder
	b.WriteString("KakaoTalk Export Data:\n")

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Date separators vary by OS and app version, e.g.
		// "--------------- 2024년 5월 1일 수요일 ---------------".
		if strings.Contains(line, "---------------") &&
			strings.Contains(line, "년") && strings.Contains(line, "월") {
			date := strings.TrimSpace(strings.ReplaceAll(line, "-", ""))
			b.WriteString("\n[Date: " + date + "]\n")
			continue
		}

		if m := kakaoMessageRe.FindStringSubmatch(line); m != nil {
			b.WriteString(m[1] + " (" + m[2] + "): " + m[3] + "\n")
			continue
		}

		// Continuation of the previous message, or a system line.
		b.WriteString(line + "\n")
	}

	return b.String()
}

// KakaoExtractionPrompt wraps a prepared log in the instruction the
// extraction service analyzes it with.
func KakaoExtractionPrompt(preparedLog string) string {
	return `I have uploaded a chat log from KakaoTalk. Analyze it and extract any contacts,
schedule items (appointments, events), expenses (transactions), or important
memos/diary entries found in the conversation.

The log contains dates in headers (e.g., [Date: ...]) and messages in the
format "Name (Time): Message". For schedules, prefer the date context from the
log; assume the current year when unspecified. For contacts, infer phone
numbers or emails if mentioned.

Chat Log:
` + preparedLog
}
