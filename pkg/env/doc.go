package env

/*
Package env derives the compiler environment a library needs: the include
directories a sketch compiling against the library must add.

Basic Usage:

    import "github.com/arc-language/libarch/pkg/env"

    e := env.New("/home/me/Arduino/libraries/Servo")

    // Get paths
    includes := e.GetIncludePaths()

    // Get compiler flags
    flags := e.GetCompilerFlags()
    for _, flag := range flags.IncludeFlags {
        fmt.Println(flag) // -I/home/me/Arduino/libraries/Servo/src
    }

Library Layouts:

Libraries in the 1.5 format keep their headers in src/, legacy libraries keep
them in the library root with implementation headers in utility/.
*/
