// Package dump reads and writes text images of an EEPROM emulation bank.
//
// # Image Format
//
// An image captures a page-aligned flash region page by page so that it can
// be inspected offline, compared, or programmed back. It consists of a header
// line followed by one row per page, all hex-encoded.
//
// Header Format (20 hex characters, big-endian):
//
//	[BaseAddress(8)][PageSize(8)][PageCount(4)]
//
// Example header:
//
//	0803C000000008000004
//	  0803C000 = Base address (0x0803C000)
//	  00000800 = Page size (2048 bytes)
//	  0004 = Page count
//
// Row Format (variable length, big-endian):
//
//	:[Index(4)][Length(4)][Data(variable)][Checksum(2)]
//
// Example row of a 16 byte page:
//
//	:00010010AAAAAAAAAAAAAAAAFFFFFFFFFFFFFFFFA7
//	  0001 = Page index, relative to the base address
//	  0010 = Data length (16 bytes)
//	  AAAA...FFFF = Page content
//	  A7 = Checksum (two's complement of the byte sum of the row)
//
// # Usage
//
// Capture a bank and save it:
//
//	img, err := dump.Capture(dev, 0x0803C000, 2048, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := dump.Write(out, img); err != nil {
//	    log.Fatal(err)
//	}
//
// Load an image and program it back:
//
//	img, err := dump.Parse("bank0.dump")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := img.Restore(dev); err != nil {
//	    log.Fatal(err)
//	}
//
// # Error Handling
//
// Parse returns detailed errors for invalid images:
//   - Invalid header format
//   - Row parsing errors with line numbers
//   - Checksum mismatches
//   - Page count or page length mismatches
//   - Invalid hex encoding
//
// All errors include context about what failed and where.
package dump
