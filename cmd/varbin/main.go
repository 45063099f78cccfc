// cmd/varbin/main.go
package main

import (
	"varbin/internal/app"
	"varbin/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
