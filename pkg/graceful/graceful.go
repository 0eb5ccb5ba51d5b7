package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Wait 阻塞直到收到 SIGINT 或 SIGTERM
func Wait() os.Signal {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)
	return <-done
}

func Stop(fn func()) {
	Wait()
	fn()
}

// StopWithTimeout 收到信号后调用 fn，fn 需在 timeout 内完成
func StopWithTimeout(timeout time.Duration, fn func(ctx context.Context) error) error {
	Wait()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx)
}
