// Package imaging handles image file I/O and pixel inspection.
//
// Decoding and encoding go through disintegration/imaging, so the format
// follows the file extension on write and the file contents on read. Open
// reads a file fresh every time and is what the analysis pipeline uses;
// ImageCache wraps it for the interactive inspection tools, which query the
// same file repeatedly.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y downward.
//
// # Output Location
//
// Annotated images are written next to their input in a sibling directory
// (see ProcessedPath), keeping the input's file name and therefore its
// format.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
package imaging
