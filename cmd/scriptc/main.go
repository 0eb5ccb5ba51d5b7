package main

import (
	"flag"
	"os"

	"github.com/treeforest/easyscript"
	"github.com/treeforest/easyscript/config"
	log "github.com/treeforest/logger"
)

func main() {
	confPath := flag.String("conf", "config.yaml", "配置文件路径")
	flag.Parse()

	conf, err := config.Load(*confPath)
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	easyscript.NewCommandFromConfig(conf, os.Stdout).Run(flag.Args())
}
