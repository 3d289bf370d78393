package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_AUTH_USER_ID_KEY         ContextKey = "auth_user_id"
	CONTEXT_AUTH_ROLE_KEY            ContextKey = "auth_role"
)

const (
	REQUEST_ID_PREFIX = "VETCR_SVC_"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderXRequestID    = "X-Request-ID"
	HeaderBearerPrefix  = "Bearer "
)

const (
	MIMEApplicationJSON = "application/json"
)
