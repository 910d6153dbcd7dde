package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kennethjason07/school_management_app/internal/utils"
)

// ledgerEvents names the mutations worth tracking, keyed by method and route template.
var ledgerEvents = map[string]string{
	http.MethodPost + " /api/v1/classes/:classID/fee-structures": "fee_structure_created",
	http.MethodPatch + " /api/v1/fee-structures/:feeID":          "fee_structure_updated",
	http.MethodDelete + " /api/v1/fee-structures/:feeID":         "fee_structure_deleted",
	http.MethodPost + " /api/v1/students/:studentID/payments":    "payment_applied",
	http.MethodPost + " /api/v1/maintenance/date-repair":         "dates_repaired",
}

// EventForRoute returns the analytics event of a matched route. Reads and
// unknown routes are not tracked.
func EventForRoute(method, fullPath string) (string, bool) {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return "", false
	}
	if fullPath == "" {
		return "", false
	}
	if name, ok := ledgerEvents[method+" "+fullPath]; ok {
		return name, true
	}
	// e.g. "POST /api/v1/things/:id" -> "post_api_v1_things_id"
	name := strings.ToLower(method) + "_" + strings.TrimPrefix(fullPath, "/")
	name = strings.NewReplacer("/", "_", ":", "", "-", "_").Replace(name)
	return name, true
}

// PosthogMiddleware reports successful ledger mutations to PostHog, attributed
// to the authenticated user.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		eventName, ok := EventForRoute(c.Request.Method, c.FullPath())
		if !ok {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		props := map[string]any{
			"status_code": c.Writer.Status(),
			"request_id":  c.GetString(string(requestIDKey)),
		}
		// Route parameters carry the ledger keys (class, student, fee item).
		for _, param := range c.Params {
			props[ledgerPropertyName(param.Key)] = param.Value
		}

		posthogClient.Enqueue(userID, eventName, props)
	}
}

// ledgerPropertyName turns a route parameter such as "studentID" into "student_id".
func ledgerPropertyName(param string) string {
	return strings.ToLower(strings.TrimSuffix(param, "ID")) + "_id"
}
