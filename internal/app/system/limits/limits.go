// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody caps JSON request bodies.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxImageBytes caps each uploaded image.
	MaxImageBytes = 5 << 20 // 5 MB

	// MaxPropertyImages caps the files accepted by one property upload.
	MaxPropertyImages = 10
)
