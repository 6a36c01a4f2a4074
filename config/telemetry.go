package config

type TelemetryConfig struct {
	Metric struct {
		Enabled bool      `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		Buckets []float64 `yaml:"buckets" mapstructure:"BUCKETS" json:"buckets"`
		// Pushgateway 位址；CLI 不常駐，結束前把指標推過去
		PushGatewayUrl string `yaml:"pushGatewayUrl" mapstructure:"PUSH_GATEWAY_URL" json:"pushGatewayUrl" validate:"omitempty,url"`
		Job            string `yaml:"job" mapstructure:"JOB" json:"job"`
	} `yaml:"metric" mapstructure:"METRIC" json:"metric"`
	Trace struct {
		Enabled     bool   `yaml:"enabled" mapstructure:"ENABLED" json:"enabled"`
		EndpointUrl string `yaml:"endpointUrl" mapstructure:"ENDPOINT_URL" json:"endpointUrl" validate:"required_if=Enabled true"`
	} `yaml:"trace" mapstructure:"TRACE" json:"trace"`
}
