package command

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bitlink/config"
	commandHandler "bitlink/internal/command/handler"
	"bitlink/internal/database/client"
	"bitlink/internal/database/fluentd/repository"
	"bitlink/internal/service"
	"bitlink/internal/service/bitly"
	"bitlink/internal/telemetry"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBitlyAPI 模擬 /user、/shorten、/bitlinks/{id}/clicks/summary
func fakeBitlyAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v4/user", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"login":"jdoe","name":"J Doe","default_group_guid":"Bk1"}`))
	})
	mux.HandleFunc("/v4/shorten", func(w http.ResponseWriter, r *http.Request) {
		var payload bitly.ShortenPayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Bk1", payload.GroupGUID)
		w.Write([]byte(`{"link":"https://bit.ly/3xYz"}`))
	})
	mux.HandleFunc("/v4/bitlinks/bit.ly/3xYz/clicks/summary", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "-1", r.URL.Query().Get("units"))
		w.Write([]byte(`{"total_clicks":42,"units":-1,"unit":"day"}`))
	})
	mux.HandleFunc("/v4/bitlinks/bit.ly/gone/clicks/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"NOT_FOUND","description":"The requested bitlink does not exist."}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestRoot(t *testing.T) *cobra.Command {
	t.Helper()
	server := fakeBitlyAPI(t)
	conf := &config.Configuration{
		App: config.App{Name: "bitlink", Version: "1.0.0"},
		Bitly: config.Bitly{
			AccessToken: "test-token",
			APIURL:      server.URL + "/v4",
			Domain:      "bit.ly",
			ClickUnits:  -1,
		},
	}
	logger := zap.NewNop()
	trace, metric := &telemetry.Trace{}, &telemetry.Metric{}
	links := service.NewLinkService(logger, conf, trace, metric,
		bitly.NewBitlyService(config.NewStore(conf), trace, metric, server.Client()),
		repository.NewLogRepository(conf, &client.NoopClient{}),
	)

	root := &cobra.Command{Use: "bitlink", SilenceUsage: true, SilenceErrors: true}
	Register(root,
		func() (*Command, func(), error) {
			return NewCommand(
				commandHandler.NewConsoleHandler(logger, links),
				commandHandler.NewLinkHandler(logger, links),
			), func() {}, nil
		},
		func() *commandHandler.VersionHandler { return commandHandler.NewVersionHandler(conf) },
	)
	return root
}

func execute(root *cobra.Command, stdin string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRegister_OneShot(t *testing.T) {
	stdout, _, err := execute(newTestRoot(t), "", "shorten", "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "Bitlink: https://bit.ly/3xYz\n", stdout)

	stdout, _, err = execute(newTestRoot(t), "", "clicks", "https://bit.ly/3xYz")
	require.NoError(t, err)
	assert.Equal(t, "Number of clicks: 42\n", stdout)

	_, _, err = execute(newTestRoot(t), "", "resolve", "bit.ly/3xYz")
	require.Error(t, err, "scheme-less input is shortened and rejected")

	stdout, _, err = execute(newTestRoot(t), "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Login:       jdoe\n")
	assert.Contains(t, stdout, "Group GUID:  Bk1\n")
}

func TestRegister_OneShotFailure(t *testing.T) {
	stdout, stderr, err := execute(newTestRoot(t), "", "clicks", "https://bit.ly/gone")
	require.ErrorIs(t, err, commandHandler.ErrReported)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "HTTP error: not-found: 404 Not Found for url:")
	assert.Contains(t, stderr, "(NOT_FOUND: The requested bitlink does not exist.)")
	assert.Contains(t, stderr, "It is possible that your link contains a typo.")
}

func TestRegister_Interactive(t *testing.T) {
	stdin := "https://bit.ly/3xYz\nhttps://bit.ly/gone\nhttps://example.com\n\n"
	stdout, _, err := execute(newTestRoot(t), stdin)
	require.NoError(t, err)

	assert.Contains(t, stdout, "Number of clicks: 42\n\n")
	assert.Contains(t, stdout, "HTTP error: ")
	assert.Contains(t, stdout, "Bitlink: https://bit.ly/3xYz\n\n")
	assert.Equal(t, 4, strings.Count(stdout, `Enter a link (or just press "Enter" to quit): `))
}

func TestRegister_Version(t *testing.T) {
	stdout, _, err := execute(newTestRoot(t), "", "version", "--json")
	require.NoError(t, err)

	var info commandHandler.RuntimeInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "bitlink", info.Name)
	assert.Equal(t, "1.0.0", info.Version)

	_, _, err = execute(newTestRoot(t), "", "clicks")
	assert.Error(t, err, "clicks needs exactly one argument")
}
