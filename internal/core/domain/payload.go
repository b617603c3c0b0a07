package domain

// Payload is a size-guarded serialization of the entry-point trees.
type Payload struct {
	// Roots holds one tree per entry point, or flat entry-point nodes when truncated.
	Roots []DependencyNode `json:"roots"`
	// Truncated reports that the full trees exceeded the size ceiling.
	Truncated bool `json:"truncated"`
	// Reason explains a truncation.
	Reason string `json:"reason,omitempty"`
	// Size is the encoded size of the full trees in bytes.
	Size int `json:"size"`
	// Checksum is an xxhash of the encoded roots; equal checksums mean equal trees.
	Checksum string `json:"checksum"`
}

// PayloadOptions bounds payload construction.
type PayloadOptions struct {
	MaxDepth int
	MaxBytes int
}

// DefaultPayloadOptions returns the stock limits.
func DefaultPayloadOptions() PayloadOptions {
	return PayloadOptions{
		MaxDepth: DefaultPayloadMaxDepth,
		MaxBytes: DefaultPayloadMaxBytes,
	}
}
