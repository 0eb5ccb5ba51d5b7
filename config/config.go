package config

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// 对外服务配置
	HttpServerPort int `yaml:"http_server_port"` // web监听端口

	// 脚本存储配置
	DBPath string `yaml:"db_path"` // 脚本数据库路径

	Debug bool `yaml:"debug"` // 输出调试日志
}

func DefaultConfig() *Config {
	return &Config{
		HttpServerPort: 8080,
		DBPath:         ".",
		Debug:          false,
	}
}

func (c *Config) Unmarshal(b []byte) error {
	return yaml.Unmarshal(b, c)
}

func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Load 读取配置文件，文件不存在时使用默认配置。未出现的字段保留默认值。
func Load(path string) (*Config, error) {
	conf := DefaultConfig()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, errors.WithStack(err)
	}

	if err = conf.Unmarshal(data); err != nil {
		return nil, errors.WithStack(err)
	}

	return conf, nil
}
