package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// reading config error is fatal, and exits main thread
func processError(err error) {
	fmt.Println(err)
	os.Exit(2)
}

func readFile(cfg *Configuration) {
	path := os.Getenv("POOL_CONFIG")
	if path == "" {
		path = "config.yml"
	}

	f, err := os.Open(path)
	if err != nil {
		processError(err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		processError(err)
	}
}

// environment variables override file values
func readEnv(cfg *Configuration) {
	if err := envconfig.Process("", cfg); err != nil {
		processError(err)
	}
}

func Init() {
	readFile(&Config)
	readEnv(&Config)
}
