package main

import (
	"context"
	"flag"
	"time"

	"github.com/treeforest/easyscript"
	"github.com/treeforest/easyscript/config"
	"github.com/treeforest/easyscript/dao"
	"github.com/treeforest/easyscript/pkg/graceful"
	log "github.com/treeforest/logger"
)

func main() {
	confPath := flag.String("conf", "config.yaml", "配置文件路径")
	flag.Parse()

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	if conf.Debug {
		log.SetLevel(log.DEBUG)
	}

	store, err := dao.New(conf.DBPath)
	if err != nil {
		log.Fatalf("open script store failed: %v", err)
	}
	defer store.Close()

	httpSrv := easyscript.NewHttpServer(conf.HttpServerPort, store)
	go func() {
		if err := httpSrv.Run(); err != nil {
			log.Fatalf("http server exit: %v", err)
		}
	}()

	err = graceful.StopWithTimeout(5*time.Second, func(ctx context.Context) error {
		log.Info("shutting down http server")
		return httpSrv.Stop(ctx)
	})
	if err != nil {
		log.Warnf("http server shutdown: %v", err)
	}
}
