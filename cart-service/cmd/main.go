package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_cart/pricing/cart-service/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
