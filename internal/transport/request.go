package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/logging"
)

// maxErrorBody caps how much of a failed response ends up in an error message.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into target and closes the body.
// Non-200 responses become *errors.APIError and bad JSON *errors.ParseError.
func DecodeResponse(resp *http.Response, target any, source string) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Str("source", source).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.String()
		}
		apiErr := errors.NewAPIError(source, resp.StatusCode, errorMessage(resp, body))
		apiErr.Endpoint = endpoint
		return apiErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", source+" response", err)
	}
	return nil
}

func errorMessage(resp *http.Response, body []byte) string {
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return resp.Status
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}
