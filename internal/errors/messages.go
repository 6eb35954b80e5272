package errors

// human-readable default messages, keyed by symbolic name
const (
	MsgInternalServerError500 = "Internal Server Error"
	MsgContactAdministrator   = "Please contact the administrator if the problem persists."
	MsgBadRequest400          = "Bad Request"
	MsgUnauthorized401        = "Unauthorized"
	MsgForbidden403           = "Forbidden"
	MsgNotFound404            = "Not Found"
	MsgMethodNotAllowed405    = "Method Not Allowed"
	MsgConflict409            = "Conflict"
	MsgTooManyRequests429     = "Too Many Requests"
	MsgServiceUnavailable503  = "Service Unavailable"
	MsgAuthenticationRequired = "Authentication is required to access this resource."
	MsgInvalidToken           = "The provided token is invalid or expired."
	MsgRateLimited            = "Request limit reached, please retry later."
	MsgRequestTimedOut        = "The request timed out."
	MsgRequestCanceled        = "The request was canceled."
	MsgResourceNotFound       = "The requested resource was not found."
	MsgRouteNotFound          = "No route matches the requested path."
	MsgDatabaseFailure        = "database operation failed"
)
