package domain

const (
	// Field bounds, counted in Unicode code points
	MAX_NAME_LENGTH        = 256
	MAX_DESCRIPTION_LENGTH = 1024
	MAX_URI_LENGTH         = 256
	MAX_TRAIT_LENGTH       = 64

	// Collection bounds
	MAX_ATTRIBUTES     = 20
	MAX_BULK_RECORDS   = 50
	DEFAULT_LIST_LIMIT = 50
	MAX_LIST_LIMIT     = 100

	// Blockchain constants
	ETHEREUM_ZERO_ADDRESS = "0x0000000000000000000000000000000000000000"
)
