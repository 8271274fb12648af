/*
Package arch decides which architectures a library supports and which of its
source files apply to a target architecture.

Sources are tagged by naming convention only: a path is tagged with an
architecture when the architecture name appears in it bounded by characters
that are not letters or digits (or by the ends of the path). For example
"src/esp32/wifi.cpp" and "core_esp32.cpp" are tagged esp32, while
"esp32s3.cpp" and "megaavr/pins.cpp" are not tagged esp32 or avr
respectively. Files without any tag are always kept.

The pipeline is:

	path, found, err := arch.LocateMetadata(root)
	declared, err := arch.ExtractArchitectures(path)
	if !arch.IsSupported(declared, "avr") { ... }
	pattern := arch.UnsupportedPattern(declared, registry.Default().Names())
	kept, err := arch.Filter(pattern, sources)

Underscore counts as a separator, so the tag mbed also matches
"src/mbed_nano/pins.cpp". For that reason a known name is never treated as
unsupported when a declared name extends it with an underscore: a library
declaring mbed_nano keeps both mbed_nano and mbed tagged files.
*/
package arch
