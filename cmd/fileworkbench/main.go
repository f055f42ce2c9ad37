// Command fileworkbench serves the Easy Web File Workbench: a
// browser-based dashboard for organizing folders and files, staging
// simulated uploads, and tracking storage usage.
package main

import (
	"context"

	"github.com/SadiqNaizam/fileworkbench/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
