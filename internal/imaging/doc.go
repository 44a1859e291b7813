// Package imaging provides the image handling around shape analysis: loading
// and caching images, region cropping, foreground segmentation, color sampling
// and overlay rendering.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Segmentation
//
// Binarize turns a photo or drawing of dark objects on a light background into
// a binary mask: grayscale, a 5×5 Gaussian blur, then an inverted Otsu
// threshold. The mask feeds the contour tracer in package detection.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use and reloads files that
// change on disk. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Coordinates outside image bounds
//   - Invalid region specifications (x1 >= x2 or y1 >= y2)
//   - File I/O errors during image loading
//   - Encoding errors during image output
package imaging
