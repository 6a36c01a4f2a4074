package config

import (
	"testing"

	cErr "bitlink/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfiguration() *Configuration {
	return &Configuration{
		App: App{Name: "bitlink"},
		Bitly: Bitly{
			AccessToken: "token",
			APIURL:      "https://api-ssl.bitly.com/v4",
			Domain:      "bit.ly",
			ClickUnits:  -1,
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfiguration().Validate())

	tests := []struct {
		name  string
		edit  func(c *Configuration)
		field string
	}{
		{"missing token", func(c *Configuration) { c.Bitly.AccessToken = "" }, "BITLY__ACCESS_TOKEN"},
		{"bad api url", func(c *Configuration) { c.Bitly.APIURL = "api-ssl" }, "BITLY__API_URL"},
		{"bad domain", func(c *Configuration) { c.Bitly.Domain = "bit ly" }, "BITLY__DOMAIN"},
		{"bad units", func(c *Configuration) { c.Bitly.ClickUnits = -2 }, "BITLY__CLICK_UNITS"},
		{"trace without endpoint", func(c *Configuration) { c.Telemetry.Trace.Enabled = true }, "TELEMETRY__TRACE__ENDPOINT_URL"},
		{"bad pushgateway", func(c *Configuration) { c.Telemetry.Metric.PushGatewayUrl = "nope" }, "TELEMETRY__METRIC__PUSH_GATEWAY_URL"},
		{"bad log encoding", func(c *Configuration) { c.Log.Encoding = "xml" }, "LOG__ENCODING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := validConfiguration()
			tt.edit(conf)

			err := conf.Validate()
			require.Error(t, err)
			assert.Equal(t, cErr.BAD_REQUEST_CONFIG, cErr.From(err).ErrorCode())
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
