// linkctl административная утилита для управления гео-ссылками.
// Хранилище выбирается переменными окружения, как у сервера.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fsdevblog/geolink/internal/app"
	"github.com/fsdevblog/geolink/internal/config"
	"github.com/fsdevblog/geolink/internal/logs"
)

const commandTimeout = 30 * time.Second

func main() {
	if err := execute(os.Args[1:]); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err) //nolint:forbidigo
	os.Exit(1)
}

func execute(args []string) error {
	conf, err := config.Load("linkctl", nil)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logs.New(logs.WithLevel("warn"), logs.WithService("linkctl"))
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	svc, closers, err := app.InitServices(ctx, *conf, logger, nil)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}()

	return run(ctx, svc.Links, args, os.Stdout)
}
