package notifier

import (
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/jsmon/internal/common"
	"github.com/aleister1102/jsmon/internal/httpclient"
)

// truncateString shortens s to at most maxLength runes, ending with an ellipsis.
func truncateString(s string, maxLength int) string {
	if utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string([]rune(s)[:maxLength])
	}
	return string([]rune(s)[:maxLength-3]) + "..."
}

// codeSafe keeps a value from breaking out of a Markdown code span.
func codeSafe(s string) string {
	return strings.ReplaceAll(s, "`", "'")
}

// checkResponse turns a non-2xx response into an HTTPError.
func checkResponse(resp *httpclient.Response, target string) error {
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}
	body := strings.TrimSpace(string(resp.Body))
	return common.NewHTTPErrorWithURL(resp.StatusCode, truncateString(body, 200), target)
}

// redactToken hides a bot token embedded in a request URL before it reaches the logs.
func redactToken(s, token string) string {
	if token == "" {
		return s
	}
	return strings.ReplaceAll(s, token, "<redacted>")
}

func sizeTooLarge(name string, size, limit int) error {
	return common.NewValidationError(name, size, fmt.Sprintf("exceeds the %d byte upload limit", limit))
}
