// Package cli adapts a tuning run to the connection-script process
// contract: it decodes the optimizer's calling convention, runs one
// trial, and emits exactly one outcome token on standard output.
//
// A connection script embeds the package like this:
//
//	func main() {
//	    app := &cli.App{
//	        ConfigPath: os.Getenv("CLOPTUNE_CONFIG"),
//	        Builder:    build,
//	        Runner:     runner,
//	    }
//	    os.Exit(app.Main(os.Args[1:]))
//	}
//
// Main loads the configuration itself so that a broken configuration
// file during a trial invocation still produces the Error token instead
// of leaving the optimizer without a terminal signal.
//
// The same binary serves both sub-commands: "setup" exports the
// declaration file and prepares output directories, and "play" runs one
// trial under the connection calling convention.
package cli
