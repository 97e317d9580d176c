package billing

import (
	"strings"

	"github.com/costview/backend/internal/domain/shared"
)

// Source identifies which external billing system a request targets. The set
// is closed; dispatch never falls back to a default adapter.
type Source string

const (
	SourceSuite        Source = "suite"
	SourceCloudBilling Source = "cloudbilling"
)

// ParseSource parses a source key from request input, case-insensitively.
// Unknown values are a request problem, not a crash.
func ParseSource(value string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(value))) {
	case SourceSuite:
		return SourceSuite, nil
	case SourceCloudBilling:
		return SourceCloudBilling, nil
	default:
		return "", shared.NewErrorWithDetail(shared.ErrKindExternalSourceNotSupported, "source = "+value)
	}
}

// String returns the source key.
func (s Source) String() string {
	return string(s)
}
