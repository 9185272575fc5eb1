package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// Version задается через ldflags при сборке
var Version = "dev"

//	@title			Storefront API
//	@version		1.0
//	@description	Каталог товаров и магазинов витрины
//	@BasePath		/api/v1
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand(Version).ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
