package config

type App struct {
	// 當前執行環境
	Env string `mapstructure:"ENV" json:"env" yaml:"env"`
	// 程式名稱，亦作為 metric 前綴與 trace service name
	Name string `mapstructure:"NAME" json:"name" yaml:"name" validate:"required"`
	// 程式版本
	Version string `mapstructure:"VERSION" json:"version" yaml:"version"`
}
