package marketplace

import (
	"fmt"
	"net/http"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/shared/utils/logutil"
)

// UpstreamError is a non-2xx answer from the marketplace API.
type UpstreamError struct {
	Operation string
	Status    int
	Body      string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: api error: status=%d body=%s", e.Operation, e.Status, logutil.TruncateForLog(e.Body, 200))
}

// Is matches domain.ErrAccessDenied for a 401 or 403 answer.
func (e *UpstreamError) Is(target error) bool {
	if target != domain.ErrAccessDenied {
		return false
	}
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}
