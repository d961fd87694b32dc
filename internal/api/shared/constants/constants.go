package constants

const (
	// Header carrying the request id, echoed on every response
	HEADER_REQUEST_ID = "X-Request-ID"

	// Header carrying the content hash of a metadata record
	HEADER_ETAG = "ETag"

	SERVICE_NAME = "ff-metadata-registry"
)
