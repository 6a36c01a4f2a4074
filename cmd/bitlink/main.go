package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"bitlink/config"
	"bitlink/internal/command"
	commandHandler "bitlink/internal/command/handler"
	"bitlink/internal/core"
	"bitlink/internal/log"
	"bitlink/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultEnvFile = ".env"

// Version 編譯時以 -ldflags "-X main.Version=..." 注入；
// store 持有目前生效的設定，熱更新時整份替換；
// configErr 留到命令執行時才回報，version 不受影響。
var (
	Version   string
	envPath   string
	yamlPath  string
	store     = config.NewStore(nil)
	logger    = zap.NewNop()
	configErr error
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "bitlink",
		Short:         "Shorten long URLs and count clicks of bitlinks with the Bitly API",
		Long:          "Without a subcommand bitlink asks for links interactively: a bitlink prints its total clicks, anything else is shortened.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&envPath, "env", "e", "", "Environment file, e.g. --env .env")
	rootCmd.PersistentFlags().StringVarP(&yamlPath, "config", "c", "", "YAML config file, e.g. --config config.yaml")

	cobra.OnInitialize(func() {
		if envPath != "" && yamlPath != "" {
			fmt.Fprintln(os.Stderr, "同時指定 --env 與 --config，將以 --env 優先")
		}
		v, watch, err := initConfig()
		if err != nil {
			configErr = err
			return
		}
		// 初始化 logger
		l, err := log.NewLogger(store.Load())
		if err != nil {
			configErr = fmt.Errorf("init logger failed: %w", err)
			return
		}
		logger = l
		if watch {
			watchConfig(v, logger)
		}
	})

	command.Register(rootCmd,
		func() (*command.Command, func(), error) {
			if configErr != nil {
				return nil, nil, configErr
			}
			if err := store.Load().Validate(); err != nil {
				return nil, nil, err
			}
			return wireCommand(store, logger)
		},
		func() *commandHandler.VersionHandler {
			return commandHandler.NewVersionHandler(store.Load())
		},
	)

	err := rootCmd.ExecuteContext(context.Background())
	_ = logger.Sync()
	if err != nil {
		if !errors.Is(err, commandHandler.ErrReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// initConfig 載入設定並放進 store；回傳的 watch 表示有設定檔可監看
func initConfig() (*viper.Viper, bool, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	setDefaults(v)

	useFile := false

	if envPath != "" {
		useFile = true
		envPath = path.Resolve(envPath)
		v.SetConfigFile(envPath)
		v.SetConfigType("env")
	} else if yamlPath != "" {
		useFile = true
		yamlPath = path.Resolve(yamlPath, "conf")
		v.SetConfigFile(yamlPath)
		v.SetConfigType("yaml")
	} else if ok, _ := path.Exists(defaultEnvFile); ok {
		// 沒指定設定檔時，工作目錄下有 .env 就直接讀
		useFile = true
		envPath = path.Resolve(defaultEnvFile)
		v.SetConfigFile(envPath)
		v.SetConfigType("env")
	}

	if useFile {
		if err := v.ReadInConfig(); err != nil {
			return nil, false, fmt.Errorf("read config failed: %w", err)
		}
	}

	bindEnvs(v, reflect.TypeOf(config.Configuration{}))

	conf, err := loadConfig(v)
	if err != nil {
		return nil, false, fmt.Errorf("unmarshal config failed: %w", err)
	}
	store.Set(conf)
	return v, useFile, nil
}

// watchConfig 監看設定檔；之後 v 只在 viper 的 watcher goroutine 內使用
func watchConfig(v *viper.Viper, logger *zap.Logger) {
	v.OnConfigChange(func(in fsnotify.Event) {
		logger.Info("config file changed", zap.String("file", in.Name))
		reloadConfig(v, logger)
	})
	v.WatchConfig()
}

// reloadConfig 驗證通過才替換設定，壞掉的設定檔不影響進行中的 session
func reloadConfig(v *viper.Viper, logger *zap.Logger) bool {
	next, err := loadConfig(v)
	if err != nil {
		logger.Warn("unmarshal on change failed", zap.Error(err))
		return false
	}
	if err := next.Validate(); err != nil {
		logger.Warn("reloaded config is invalid, keep current one", zap.Error(err))
		return false
	}
	store.Set(next)
	return true
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP__NAME", "bitlink")
	v.SetDefault("APP__VERSION", "dev")
	v.SetDefault("BITLY__API_URL", core.BitlyAPIBaseURL)
	v.SetDefault("BITLY__DOMAIN", core.BitlyDefaultHost)
	v.SetDefault("BITLY__CLICK_UNITS", core.BitlyAllTimeUnits)
	v.SetDefault("BITLY__VERIFY_LONG_URL", true)
}

// loadConfig 每次都解出一份新的設定，不修改 store 內既有的那份
func loadConfig(v *viper.Viper) (*config.Configuration, error) {
	conf := &config.Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, err
	}
	// 相容舊的 ACCESS_TOKEN 變數
	if conf.Bitly.AccessToken == "" {
		conf.Bitly.AccessToken = v.GetString("ACCESS_TOKEN")
	}
	if Version != "" {
		conf.App.Version = Version
	}
	return conf, nil
}

func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	// 若遇到指標，取其 Elem
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		newPath := append(append([]string{}, path...), tag)
		if field.Type.Kind() == reflect.Struct || (field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct) {
			bindEnvs(v, field.Type, newPath...)
		} else {
			_ = v.BindEnv(strings.Join(newPath, "__"))
		}
	}
}
