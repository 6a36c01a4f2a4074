package config

type Log struct {
	// debug / info / warn / error ...
	Level string `mapstructure:"LEVEL" json:"level" yaml:"level"`
	// json 或 console
	Encoding string `mapstructure:"ENCODING" json:"encoding" yaml:"encoding" validate:"omitempty,oneof=json console"`
}
