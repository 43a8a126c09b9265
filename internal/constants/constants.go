package constants

const (
	//分頁
	DefaultPagingSkip int = 0
	DefaultPagingTake int = 5
	MaxPagingTake     int = 100
)

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey    RequestID = "request_id"
	RequestIDHeader string    = "X-Request-Id"
)

// kafka event type
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

const (
	ProductCachePrefix  = "shop:product"
	RateLimitKeyPrefix  = "shop:rate_limit"
	CartEmptyMessage    = "cart is empty"
	DefaultSuccessMsg   = "success"
	DefaultCreatedMsg   = "created"
	DefaultShutdownSecs = 30
	// MaxCartItemQuantity 單一購物車項目數量上限，累加後也不能超過
	MaxCartItemQuantity = 10000
)

const AuthorizationRoleKey ContextKey = "authorization_role"
