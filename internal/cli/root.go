package cli

import (
	"context"
	"io"
)

// Execute runs the wikigraph CLI with args, writing logs to logs. It is the
// entry point used by main.
//
// Logging defaults to info level, or the level set in the config file;
// --verbose (-v) switches to debug.
//
//	func main() {
//	    ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	    defer cancel()
//	    if err := cli.Execute(ctx, os.Args[1:], os.Stderr); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context, args []string, logs io.Writer) error {
	c := New(logs, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
