package constant

const (
	ContextKeyRequestID = "requestid"

	// LocalsTranslatorKey is the fiber.Ctx locals key holding the negotiated ut.Translator.
	LocalsTranslatorKey = "T"

	IdempotencyKeyLocalsKey = "idempotencyKey"

	RequestIDHeader = "X-Itinerary-Request-ID"

	IdempotencyHeader    = "X-Itinerary-Idempotency"
	IdempotencyKeyHeader = "X-Itinerary-Idempotency-Key"

	IdempotencyKeyLengthLimit = 128

	IdempotencyRedisPrefix = "itinerary:idempotency:"
)
