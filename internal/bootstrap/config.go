package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/lightningstudio/watchbili/cmd/flags"
	"github.com/lightningstudio/watchbili/internal/conf"
	"github.com/lightningstudio/watchbili/utils"
	log "github.com/sirupsen/logrus"
)

var ErrSkipConfigAndEnv = errors.New("skip config and skip env at the same time")

func InitDefaultConfig(ctx context.Context) error {
	conf.Conf = conf.DefaultConfig()
	return nil
}

func InitConfig(ctx context.Context) (err error) {
	if flags.SkipConfig && flags.SkipEnv {
		return ErrSkipConfigAndEnv
	}
	conf.Conf = conf.DefaultConfig()
	if !flags.SkipConfig {
		configFile, err := utils.OptFilePath("config.yaml")
		if err != nil {
			return err
		}
		if err = confFromConfig(configFile, conf.Conf); err != nil {
			return err
		}
		log.Infof("load config success from file: %s", configFile)
		if err = restoreConfig(configFile, conf.Conf); err != nil {
			log.Warnf("restore config error: %v", err)
		} else {
			log.Debug("restore config success")
		}
	}
	if !flags.SkipEnv {
		prefix := flags.ENV_PREFIX
		if flags.EnvNoPrefix {
			prefix = ""
			log.Info("load config from env without prefix")
		} else {
			log.Infof("load config from env with prefix: %s", prefix)
		}
		if err := confFromEnv(prefix, conf.Conf); err != nil {
			return err
		}
		log.Info("load config success from env")
	}
	return nil
}

func confFromConfig(filePath string, conf *conf.Config) error {
	if filePath == "" {
		return errors.New("config file path is empty")
	}
	if !utils.Exists(filePath) {
		log.Infof("config file not exists, create new config file: %s", filePath)
		return conf.Save(filePath)
	}
	return utils.ReadYaml(filePath, conf)
}

func restoreConfig(filePath string, conf *conf.Config) error {
	if filePath == "" {
		return errors.New("config file path is empty")
	}
	return conf.Save(filePath)
}

func confFromEnv(prefix string, conf *conf.Config) error {
	s, err := getEnvFiles(flags.DataDir)
	if err != nil {
		return err
	}
	if flags.Dev {
		ss, err := getEnvFiles(".")
		if err != nil {
			return err
		}
		s = append(s, ss...)
	}
	if len(s) != 0 {
		if err = godotenv.Overload(s...); err != nil {
			return err
		}
	}
	return env.ParseWithOptions(conf, env.Options{
		Prefix: prefix,
	})
}

// getEnvFiles lists the .env* files directly under root.
func getEnvFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), ".env") {
			files = append(files, filepath.Join(root, e.Name()))
		}
	}
	return files, nil
}
